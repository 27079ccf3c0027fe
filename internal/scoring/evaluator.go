package scoring

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

// RiskCutoffs are the per-dimension thresholds below which a named risk flag
// is raised. A zero cutoff disables the check for that dimension.
type RiskCutoffs struct {
	Communication float64 `mapstructure:"communication"`
	Process       float64 `mapstructure:"process"`
	Reliability   float64 `mapstructure:"reliability"`
}

// Config carries the evaluator's calibration. All values are demo constants
// without an empirical basis, hence overridable.
type Config struct {
	Weights        Weights     `mapstructure:"weights"`
	Cutoffs        RiskCutoffs `mapstructure:"risk-cutoffs"`
	HireReadyScore float64     `mapstructure:"hire-ready-score"`
	InterviewScore float64     `mapstructure:"interview-score"`
	// FloorScore is the minimum any populated dimension normalizes to, so a
	// sparse transcript never reads as a zero candidate.
	FloorScore float64        `mapstructure:"floor-score"`
	Coaching   CoachingConfig `mapstructure:"coaching"`
}

// DefaultConfig returns the production calibration.
func DefaultConfig() Config {
	return Config{
		Weights: DefaultWeights(),
		Cutoffs: RiskCutoffs{
			Communication: 0.5,
			Process:       0.5,
			Reliability:   0.5,
		},
		HireReadyScore: 75,
		InterviewScore: 60,
		FloorScore:     0.2,
		Coaching:       DefaultCoachingConfig(),
	}
}

// Session is the evaluator's input: the answered turns of a completed
// interview plus an optional session-level audio summary.
type Session struct {
	Turns   []Turn        `json:"turns"`
	Metrics *AudioMetrics `json:"metrics,omitempty"`
}

// RoleFit is the transparent role-direction analysis shared with the
// candidate.
type RoleFit struct {
	PrimaryFit       string `json:"primary_fit"`
	StrengthsSummary string `json:"strengths_summary"`
	GrowthSummary    string `json:"growth_areas_summary"`
}

// EmployerSummary is the recruiter-facing digest of a completed interview.
type EmployerSummary struct {
	ShortOverview           string   `json:"short_overview"`
	Strengths               []string `json:"strengths"`
	Risks                   []string `json:"risks"`
	RecommendedFollowups    []string `json:"recommended_followup_questions"`
	RecommendedProgramTypes []string `json:"recommended_program_types"`
}

// CandidateFeedback is the candidate-facing digest, including coaching
// offers.
type CandidateFeedback struct {
	Positive       []string        `json:"positive"`
	Improve        []string        `json:"improve"`
	RoleFit        RoleFit         `json:"role_fit_analysis"`
	CoachingOffers []CoachingOffer `json:"coaching_offers"`
}

// Evaluation is the full result of evaluating a completed session. It is a
// pure function of the session content, reproducible and auditable.
type Evaluation struct {
	Scores            DimensionScores   `json:"scores"`
	CVAlignment       float64           `json:"cv_alignment"`
	OverallScore      int               `json:"overall_score"`
	RiskFlags         []string          `json:"risk_flags"`
	Recommendation    Recommendation    `json:"recommendation"`
	EmployerSummary   EmployerSummary   `json:"summary_for_company"`
	CandidateFeedback CandidateFeedback `json:"feedback_for_candidate"`
	QuestionScores    []QuestionScore   `json:"question_scores"`
	Confidence        float64           `json:"confidence"`
}

// Evaluator aggregates per-turn scores into a final verdict.
type Evaluator struct {
	cfg    Config
	logger *zap.Logger
}

// NewEvaluator validates the configured weights and builds an evaluator.
func NewEvaluator(cfg Config, logger *zap.Logger) (*Evaluator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sum := cfg.Weights.Sum(); math.Abs(sum-1.0) > 1e-9 {
		return nil, fmt.Errorf("dimension weights must sum to 1.0, got %.4f", sum)
	}
	return &Evaluator{cfg: cfg, logger: logger}, nil
}

// Config returns the evaluator's configuration.
func (e *Evaluator) Config() Config { return e.cfg }

// Baseline values for dimensions that only a single slot can move. Without a
// signal from that slot the candidate lands on the neutral baseline.
const (
	coherenceBaseline = 0.85
	stressBaseline    = 0.55
	salesBaseline     = 0.4

	cvDepthWords        = 40
	cvAlignmentDeep     = 0.9
	cvAlignmentShallow  = 0.55
	baseConfidence      = 0.85
	degradedConfidence  = 0.6
	minScoredTurnsFully = 6
)

// Evaluate scores every turn, aggregates the partial vectors into the nine
// dimensions, and derives the overall score, risk flags, recommendation and
// both summaries.
func (e *Evaluator) Evaluate(sess Session) *Evaluation {
	var (
		sums         Partial
		turnScores   []QuestionScore
		cvWords      int
		coherenceSum float64
		coherenceN   int
	)

	for _, t := range sess.Turns {
		qs := ScoreTurn(t.Question, t.Answer, t.Metrics)
		turnScores = append(turnScores, qs)
		accumulate(&sums, qs.Dimensions)

		if qs.Dimensions.Coherence != nil {
			coherenceSum += *qs.Dimensions.Coherence
			coherenceN++
		}
		slot := slotOf(t.Question.ID)
		if slot == "Q2" || slot == "Q3" {
			cvWords += wordCount(t.Answer)
		}
	}

	floor := e.cfg.FloorScore
	norm := func(p *float64, base float64) float64 {
		v := base
		if p != nil {
			v += *p
		}
		return clamp(v, floor, 1)
	}

	scores := DimensionScores{
		Communication: norm(sums.Communication, 0),
		Empathy:       norm(sums.Empathy, 0),
		Deescalation:  norm(sums.Deescalation, 0),
		Process:       norm(sums.Process, 0),
		Reliability:   norm(sums.Reliability, 0),
		Coachability:  norm(sums.Coachability, 0),
		Stress:        norm(sums.Stress, stressBaseline),
		Sales:         norm(sums.Sales, salesBaseline),
	}

	// Coherence comes from audio metrics when present, otherwise the
	// neutral proxy baseline.
	switch {
	case coherenceN > 0:
		scores.Coherence = clamp(coherenceSum/float64(coherenceN), floor, 1)
	case sess.Metrics != nil:
		scores.Coherence = clamp(1-sess.Metrics.PauseRatio*0.8-sess.Metrics.FillerRate*0.8, floor, 1)
	default:
		scores.Coherence = coherenceBaseline
	}

	cvAlignment := cvAlignmentShallow
	if cvWords > cvDepthWords {
		cvAlignment = cvAlignmentDeep
	}

	overall := int(math.Round(e.cfg.Weights.Overall(scores)))

	riskFlags := e.riskFlags(scores)
	rec := e.recommend(overall, riskFlags)

	confidence := baseConfidence
	if len(sess.Turns) < minScoredTurnsFully {
		confidence = degradedConfidence
	}

	ev := &Evaluation{
		Scores:         scores,
		CVAlignment:    cvAlignment,
		OverallScore:   overall,
		RiskFlags:      riskFlags,
		Recommendation: rec,
		QuestionScores: turnScores,
		Confidence:     confidence,
	}
	roleFit := e.roleFit(scores, overall, riskFlags)
	ev.EmployerSummary = e.employerSummary(scores, overall, riskFlags, roleFit)
	ev.CandidateFeedback = CandidateFeedback{
		Positive:       feedbackPositive(scores),
		Improve:        feedbackImprove(scores, cvAlignment),
		RoleFit:        roleFit,
		CoachingOffers: SynthesizeOffers(e.cfg, scores, cvAlignment, overall, riskFlags),
	}

	e.logger.Debug("session evaluated",
		zap.Int("overall", overall),
		zap.Strings("risk_flags", riskFlags),
		zap.String("recommendation", string(rec)),
	)
	return ev
}

// riskFlags runs the independent per-dimension threshold checks. Multiple
// flags can co-occur.
func (e *Evaluator) riskFlags(s DimensionScores) []string {
	var flags []string
	if c := e.cfg.Cutoffs.Communication; c > 0 && s.Communication < c {
		flags = append(flags, RiskCommunication)
	}
	if c := e.cfg.Cutoffs.Process; c > 0 && s.Process < c {
		flags = append(flags, RiskProcess)
	}
	if c := e.cfg.Cutoffs.Reliability; c > 0 && s.Reliability < c {
		flags = append(flags, RiskReliability)
	}
	return flags
}

func (e *Evaluator) recommend(overall int, riskFlags []string) Recommendation {
	switch {
	case float64(overall) >= e.cfg.HireReadyScore && len(riskFlags) == 0:
		return HireReady
	case float64(overall) >= e.cfg.InterviewScore:
		return InterviewRecommended
	default:
		return NotRecommendedYet
	}
}

// roleFit picks the candidate's most promising role direction.
func (e *Evaluator) roleFit(s DimensionScores, overall int, riskFlags []string) RoleFit {
	fit := RoleFit{
		PrimaryFit:       "General Support",
		StrengthsSummary: "You demonstrated solid professional skills suitable for many roles.",
	}
	switch {
	case s.Sales > 0.65:
		fit.PrimaryFit = "Outbound Sales"
		fit.StrengthsSummary = "Your energy and resilience suggest you would thrive in goal-oriented environments."
	case s.Process > 0.7 && s.Communication > 0.7:
		fit.PrimaryFit = "Technical Support"
		fit.StrengthsSummary = "Your logical approach and clear explanations make you a strong candidate for troubleshooting roles."
	case s.Empathy > 0.7:
		fit.PrimaryFit = "Customer Care Specialist"
		fit.StrengthsSummary = "Your natural empathy and patience are your biggest assets for handling customer inquiries."
	}

	switch {
	case float64(overall) < e.cfg.InterviewScore:
		fit.GrowthSummary = "Focusing on using the STAR method (Situation, Task, Action, Result) in your answers could significantly improve your clarity."
	case len(riskFlags) > 0:
		fit.GrowthSummary = "Paying extra attention to punctuality and policy details will help open up more senior opportunities."
	default:
		fit.GrowthSummary = "You are well-positioned. To advance further, consider highlighting your leadership or specialized technical experience."
	}
	return fit
}

var dimensionLabels = []struct {
	label string
	value func(DimensionScores) float64
}{
	{"Clear communication", func(d DimensionScores) float64 { return d.Communication }},
	{"Coherent delivery", func(d DimensionScores) float64 { return d.Coherence }},
	{"Strong empathy markers", func(d DimensionScores) float64 { return d.Empathy }},
	{"De-escalation instincts", func(d DimensionScores) float64 { return d.Deescalation }},
	{"Process awareness", func(d DimensionScores) float64 { return d.Process }},
	{"Composure under pressure", func(d DimensionScores) float64 { return d.Stress }},
	{"Schedule reliability", func(d DimensionScores) float64 { return d.Reliability }},
	{"Sales drive", func(d DimensionScores) float64 { return d.Sales }},
	{"Coachability", func(d DimensionScores) float64 { return d.Coachability }},
}

// topStrengths returns the labels of the n highest dimensions, ties broken
// by the fixed label order so output stays deterministic.
func topStrengths(s DimensionScores, n int) []string {
	idx := make([]int, len(dimensionLabels))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return dimensionLabels[idx[a]].value(s) > dimensionLabels[idx[b]].value(s)
	})
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, dimensionLabels[i].label)
	}
	return out
}

func (e *Evaluator) employerSummary(s DimensionScores, overall int, riskFlags []string, fit RoleFit) EmployerSummary {
	potential := "adequate"
	if float64(overall) > e.cfg.HireReadyScore {
		potential = "strong"
	}
	sum := EmployerSummary{
		ShortOverview: fmt.Sprintf("Candidate demonstrates %s potential for BPO roles.", potential),
		Strengths:     topStrengths(s, 3),
		Risks:         append([]string(nil), riskFlags...),
	}
	if len(riskFlags) > 0 {
		sum.RecommendedFollowups = []string{"Tell me about a time you had to follow a strict policy."}
	}
	switch fit.PrimaryFit {
	case "Outbound Sales":
		sum.RecommendedProgramTypes = []string{"OUTBOUND_SALES"}
	case "Technical Support":
		sum.RecommendedProgramTypes = []string{"TECH_SUPPORT"}
	default:
		sum.RecommendedProgramTypes = []string{"INBOUND_SUPPORT", "TECH_SUPPORT"}
	}
	return sum
}

func feedbackPositive(s DimensionScores) []string {
	var out []string
	if s.Communication >= 0.6 {
		out = append(out, "You spoke clearly and at a good pace.")
	}
	if s.Empathy >= 0.6 {
		out = append(out, "You showed empathy in scenario questions.")
	}
	if s.Process >= 0.6 {
		out = append(out, "You showed good awareness of procedures and policy.")
	}
	if len(out) == 0 {
		out = append(out, "You completed the full interview, which many candidates do not.")
	}
	return out
}

func feedbackImprove(s DimensionScores, cvAlignment float64) []string {
	var out []string
	if s.Communication < 0.7 {
		out = append(out, "Try to use more specific examples from past jobs.")
	}
	if s.Sales < 0.6 {
		out = append(out, "Focus on customer benefits when selling ideas.")
	}
	if cvAlignment < 0.7 {
		out = append(out, "Walk through your CV in more depth so your experience comes across.")
	}
	return out
}

func accumulate(sums *Partial, p Partial) {
	add := func(dst **float64, src *float64) {
		if src == nil {
			return
		}
		if *dst == nil {
			v := *src
			*dst = &v
			return
		}
		**dst += *src
	}
	add(&sums.Communication, p.Communication)
	add(&sums.Empathy, p.Empathy)
	add(&sums.Deescalation, p.Deescalation)
	add(&sums.Process, p.Process)
	add(&sums.Stress, p.Stress)
	add(&sums.Reliability, p.Reliability)
	add(&sums.Sales, p.Sales)
	add(&sums.Coachability, p.Coachability)
}

func wordCount(s string) int {
	n := 0
	inWord := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
		}
	}
	return n
}
