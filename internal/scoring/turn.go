package scoring

import (
	"strings"

	"github.com/serenity-hq/screener/internal/interview"
)

// AudioMetrics are optional speech-delivery measurements for a turn or a
// whole session, supplied by the capture layer.
type AudioMetrics struct {
	SpeakingRateWPM float64 `json:"speaking_rate_wpm"`
	PauseRatio      float64 `json:"pause_ratio"`
	FillerRate      float64 `json:"filler_word_rate"`
}

// Turn pairs an asked question with the candidate's answer.
type Turn struct {
	Question interview.Question `json:"question"`
	Answer   string             `json:"answer"`
	Metrics  *AudioMetrics      `json:"metrics,omitempty"`
}

// Partial is a per-turn dimension vector: only the dimensions relevant to the
// asked question are populated, the rest stay nil.
type Partial struct {
	Communication *float64 `json:"communication,omitempty"`
	Coherence     *float64 `json:"coherence,omitempty"`
	Empathy       *float64 `json:"empathy,omitempty"`
	Deescalation  *float64 `json:"deescalation,omitempty"`
	Process       *float64 `json:"process,omitempty"`
	Stress        *float64 `json:"stress,omitempty"`
	Reliability   *float64 `json:"reliability,omitempty"`
	Sales         *float64 `json:"sales,omitempty"`
	Coachability  *float64 `json:"coachability,omitempty"`
}

// QuestionScore is the scorer's verdict on one answered turn.
type QuestionScore struct {
	QuestionID     string   `json:"question_id"`
	Dimensions     Partial  `json:"dimension_scores"`
	PositiveQuotes []string `json:"positive_quotes,omitempty"`
	ConcernQuotes  []string `json:"concern_quotes,omitempty"`
	Notes          []string `json:"notes,omitempty"`
	Confidence     float64  `json:"confidence"`
}

// Keyword groups signalling each competency. Matching is a plain lowercase
// substring check; a missed signal degrades the score, it never errors.
var (
	empathyWords      = []string{"sorry", "apologize", "understand", "frustrating"}
	processWords      = []string{"policy", "verify", "check", "procedure", "first"}
	reliabilityWords  = []string{"time", "alarm", "schedule", "plan"}
	deescalationWords = []string{"calm", "listen", "solution"}
	coachabilityWords = []string{"learn", "improve", "feedback"}
	stressWords       = []string{"calm", "focus", "breath", "one customer at a time", "prioriti"}
	salesWords        = []string{"sell", "sales", "upsell", "persua", "target"}
)

// Dimension increments per keyword hit.
const (
	verboseAnswerWords = 20
	communicationBump  = 0.1
	empathyBump        = 0.2
	processBump        = 0.2
	reliabilityBump    = 0.25
	deescalationBump   = 0.2
	coachabilityBump   = 0.3
	stressBump         = 0.2
	salesBump          = 0.2

	briefAnswerWords = 8
)

// ScoreTurn scores a single question/answer pair into a partial dimension
// vector with supporting evidence. Empty or placeholder answers degrade to
// metric-driven scoring.
func ScoreTurn(q interview.Question, answer string, metrics *AudioMetrics) QuestionScore {
	s := QuestionScore{QuestionID: q.ID, Confidence: 0.85}

	text := strings.TrimSpace(answer)
	if text == "" || text == interview.PlaceholderAnswer {
		s.Confidence = 0.5
		s.Notes = append(s.Notes, "no transcript captured for this turn; scoring from audio metrics only")
		applyMetrics(&s, metrics)
		return s
	}

	lower := strings.ToLower(text)
	words := len(strings.Fields(text))
	slot := slotOf(q.ID)

	if words < briefAnswerWords {
		s.ConcernQuotes = append(s.ConcernQuotes, text)
		s.Notes = append(s.Notes, "answer unusually brief")
	}

	// Communication rewards elaboration on any slot that expects narrative.
	switch slot {
	case "Q1":
		// Warm-up turn, no competency signal.
	case "Q2", "Q3", "Q4", "Q6":
		if words > verboseAnswerWords {
			set(&s.Dimensions.Communication, communicationBump)
			quote(&s, text, "")
		}
	case "Q5":
		scoreKeywords(&s, &s.Dimensions.Process, lower, text, processWords, processBump)
	case "Q7":
		scoreKeywords(&s, &s.Dimensions.Process, lower, text, processWords, processBump)
		scoreKeywords(&s, &s.Dimensions.Empathy, lower, text, empathyWords, empathyBump)
	case "Q8":
		scoreKeywords(&s, &s.Dimensions.Empathy, lower, text, empathyWords, empathyBump)
		scoreKeywords(&s, &s.Dimensions.Deescalation, lower, text, deescalationWords, deescalationBump)
	case "Q9":
		scoreKeywords(&s, &s.Dimensions.Process, lower, text, processWords, processBump)
	case "Q10":
		scoreKeywords(&s, &s.Dimensions.Stress, lower, text, stressWords, stressBump)
	case "Q11":
		scoreKeywords(&s, &s.Dimensions.Reliability, lower, text, reliabilityWords, reliabilityBump)
	case "Q12":
		scoreKeywords(&s, &s.Dimensions.Coachability, lower, text, coachabilityWords, coachabilityBump)
		scoreKeywords(&s, &s.Dimensions.Sales, lower, text, salesWords, salesBump)
	}

	applyMetrics(&s, metrics)
	return s
}

// slotOf extracts the catalog slot prefix from a question id, e.g.
// "Q8_V2_FU" -> "Q8".
func slotOf(id string) string {
	if i := strings.IndexByte(id, '_'); i > 0 {
		return id[:i]
	}
	return id
}

// scoreKeywords bumps dim when any keyword appears and records the matching
// sentence as supporting evidence.
func scoreKeywords(s *QuestionScore, dim **float64, lower, text string, keywords []string, bump float64) {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			set(dim, bump)
			quote(s, text, k)
			return
		}
	}
}

// applyMetrics adjusts the delivery dimensions from audio measurements.
func applyMetrics(s *QuestionScore, m *AudioMetrics) {
	if m == nil {
		return
	}
	coherence := clamp(1-m.PauseRatio*0.8-m.FillerRate*0.8, 0, 1)
	s.Dimensions.Coherence = &coherence

	if m.SpeakingRateWPM > 0 {
		delta := 0.05
		if m.SpeakingRateWPM < 110 || m.SpeakingRateWPM > 170 {
			delta = -0.05
			s.Notes = append(s.Notes, "speaking rate outside the comfortable range")
		}
		set(&s.Dimensions.Communication, delta)
	}
}

// set adds delta to a partial dimension, initializing it on first use.
func set(dim **float64, delta float64) {
	if *dim == nil {
		v := delta
		*dim = &v
		return
	}
	**dim += delta
}

// quote records the first sentence containing the keyword (or the first
// sentence of the answer when keyword is empty) as a positive quote.
func quote(s *QuestionScore, text, keyword string) {
	sentence := firstSentenceWith(text, keyword)
	if sentence == "" {
		return
	}
	for _, q := range s.PositiveQuotes {
		if q == sentence {
			return
		}
	}
	s.PositiveQuotes = append(s.PositiveQuotes, sentence)
}

func firstSentenceWith(text, keyword string) string {
	for _, sentence := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if keyword == "" || strings.Contains(strings.ToLower(sentence), keyword) {
			return sentence
		}
	}
	return ""
}
