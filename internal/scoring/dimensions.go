// Package scoring converts raw interview answers into calibrated competency
// scores, an overall hire-readiness verdict, and candidate-facing coaching
// offers.
package scoring

// DimensionScores holds the nine competency dimensions, each in [0,1]. A
// fixed struct rather than a map so a missing dimension is a compile error.
type DimensionScores struct {
	Communication float64 `json:"communication"`
	Coherence     float64 `json:"coherence"`
	Empathy       float64 `json:"empathy"`
	Deescalation  float64 `json:"deescalation"`
	Process       float64 `json:"process"`
	Stress        float64 `json:"stress"`
	Reliability   float64 `json:"reliability"`
	Sales         float64 `json:"sales"`
	Coachability  float64 `json:"coachability"`
}

// Weights are the per-dimension contributions to the overall score. They
// must sum to 1.0.
type Weights struct {
	Communication float64 `mapstructure:"communication"`
	Coherence     float64 `mapstructure:"coherence"`
	Empathy       float64 `mapstructure:"empathy"`
	Deescalation  float64 `mapstructure:"deescalation"`
	Process       float64 `mapstructure:"process"`
	Stress        float64 `mapstructure:"stress"`
	Reliability   float64 `mapstructure:"reliability"`
	Sales         float64 `mapstructure:"sales"`
	Coachability  float64 `mapstructure:"coachability"`
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{
		Communication: 0.20,
		Coherence:     0.10,
		Empathy:       0.15,
		Deescalation:  0.10,
		Process:       0.15,
		Stress:        0.10,
		Reliability:   0.10,
		Sales:         0.05,
		Coachability:  0.05,
	}
}

// Sum returns the total of all weights. Callers validate it against 1.0.
func (w Weights) Sum() float64 {
	return w.Communication + w.Coherence + w.Empathy + w.Deescalation +
		w.Process + w.Stress + w.Reliability + w.Sales + w.Coachability
}

// Overall computes the weighted sum of d scaled to [0,100].
func (w Weights) Overall(d DimensionScores) float64 {
	return (d.Communication*w.Communication +
		d.Coherence*w.Coherence +
		d.Empathy*w.Empathy +
		d.Deescalation*w.Deescalation +
		d.Process*w.Process +
		d.Stress*w.Stress +
		d.Reliability*w.Reliability +
		d.Sales*w.Sales +
		d.Coachability*w.Coachability) * 100
}

// Recommendation is the hire-readiness verdict for a completed interview.
type Recommendation string

const (
	HireReady            Recommendation = "HIRE_READY"
	InterviewRecommended Recommendation = "INTERVIEW_RECOMMENDED"
	NotRecommendedYet    Recommendation = "NOT_RECOMMENDED_YET"
)

// Risk flag names, derived by thresholding single dimensions.
const (
	RiskCommunication = "Communication Clarity Risk"
	RiskProcess       = "Process Compliance Risk"
	RiskReliability   = "Reliability Risk"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
