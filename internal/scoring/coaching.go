package scoring

// Coaching offer types, in fixed priority order.
const (
	OfferCommunicationCoaching = "COMMUNICATION_COACHING"
	OfferInterviewPrep         = "INTERVIEW_PREP"
	OfferCVRewrite             = "CV_REWRITE"
	OfferJobReadiness          = "JOB_READINESS"
)

// maxOffers bounds how many offers a candidate ever sees at once.
const maxOffers = 2

// CoachingOffer is a candidate-facing "improve your profile" suggestion.
type CoachingOffer struct {
	Type            string `json:"type"`
	Priority        string `json:"priority"`
	Reason          string `json:"reason"`
	ExpectedBenefit string `json:"expected_benefit"`
}

// CoachingConfig holds the trigger thresholds for each offer type.
type CoachingConfig struct {
	CoherenceCutoff     float64 `mapstructure:"coherence-cutoff"`
	EmpathyCutoff       float64 `mapstructure:"empathy-cutoff"`
	CommunicationCutoff float64 `mapstructure:"communication-cutoff"`
	CVAlignmentCutoff   float64 `mapstructure:"cv-alignment-cutoff"`
	ProcessCutoff       float64 `mapstructure:"process-cutoff"`
	StressCutoff        float64 `mapstructure:"stress-cutoff"`
}

// DefaultCoachingConfig returns the production trigger thresholds.
func DefaultCoachingConfig() CoachingConfig {
	return CoachingConfig{
		CoherenceCutoff:     0.7,
		EmpathyCutoff:       0.6,
		CommunicationCutoff: 0.75,
		CVAlignmentCutoff:   0.6,
		ProcessCutoff:       0.7,
		StressCutoff:        0.6,
	}
}

// SynthesizeOffers evaluates every offer trigger against the final scores and
// returns at most two offers, highest priority first.
func SynthesizeOffers(cfg Config, s DimensionScores, cvAlignment float64, overall int, riskFlags []string) []CoachingOffer {
	c := cfg.Coaching
	var offers []CoachingOffer

	if s.Coherence < c.CoherenceCutoff || s.Empathy < c.EmpathyCutoff {
		offers = append(offers, CoachingOffer{
			Type:            OfferCommunicationCoaching,
			Priority:        "high",
			Reason:          "Polishing your delivery and empathy markers can significantly boost your interview score.",
			ExpectedBenefit: "Potential +15% Score Boost",
		})
	}

	// The narrow band just below hire-ready, with communication as the
	// bottleneck.
	if float64(overall) >= cfg.InterviewScore && float64(overall) < cfg.HireReadyScore &&
		s.Communication < c.CommunicationCutoff {
		offers = append(offers, CoachingOffer{
			Type:            OfferInterviewPrep,
			Priority:        "high",
			Reason:          "You are very close to being Hire Ready. Structured practice could bridge the gap.",
			ExpectedBenefit: "Unlock 'Hire Ready' Status",
		})
	}

	if cvAlignment < c.CVAlignmentCutoff ||
		(float64(overall) < cfg.InterviewScore && s.Process > c.ProcessCutoff) {
		offers = append(offers, CoachingOffer{
			Type:            OfferCVRewrite,
			Priority:        "medium",
			Reason:          "Your experience is great, but your resume might not fully showcase your skills to recruiters.",
			ExpectedBenefit: "Better Program Matching",
		})
	}

	if contains(riskFlags, RiskReliability) || s.Stress < c.StressCutoff {
		offers = append(offers, CoachingOffer{
			Type:            OfferJobReadiness,
			Priority:        "medium",
			Reason:          "BPOs value reliability highly. Learn how to demonstrate this trait effectively.",
			ExpectedBenefit: "Remove Profile Risks",
		})
	}

	if len(offers) > maxOffers {
		offers = offers[:maxOffers]
	}
	return offers
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
