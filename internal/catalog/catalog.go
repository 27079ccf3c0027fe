// Package catalog holds the fixed interview script: the ordered sequence of
// competency slots and the question text variants for each of them.
package catalog

import (
	"strings"

	"go.uber.org/zap"

	"github.com/serenity-hq/screener/internal/candidate"
)

// Phase labels a stage of the interview conversation.
type Phase string

const (
	PhaseIntro          Phase = "intro"
	PhaseCV             Phase = "cv"
	PhaseScenario       Phase = "scenario"
	PhaseReliability    Phase = "reliability"
	PhaseClosing        Phase = "closing"
	PhaseClosingTimeout Phase = "closing_timeout"
	PhaseComplete       Phase = "complete"
)

// Valid reports whether p is one of the enumerated phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseIntro, PhaseCV, PhaseScenario, PhaseReliability,
		PhaseClosing, PhaseClosingTimeout, PhaseComplete:
		return true
	}
	return false
}

// Kind distinguishes scripted questions from follow-ups and closing lines.
type Kind string

const (
	KindMaster   Kind = "master"
	KindFollowup Kind = "followup"
	KindClosing  Kind = "closing"
)

// Question is a single prompt emitted to the candidate.
type Question struct {
	ID                    string `json:"id"`
	Text                  string `json:"text"`
	Phase                 Phase  `json:"phase"`
	Kind                  Kind   `json:"kind"`
	ExpectedAnswerSeconds int    `json:"expected_answer_length_seconds"`
}

// Slot is one step of the interview flow. Key selects the variant bank and
// AnswerSeconds tells collaborators how long to listen for an answer.
type Slot struct {
	ID            string
	Key           string
	Phase         Phase
	AnswerSeconds int
}

// Variant is one phrasing of a slot's question.
type Variant struct {
	ID   string
	Text string
}

// Rand is the injectable randomness used for variant rotation. *rand.Rand
// satisfies it; tests pin outputs with a fixed implementation.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Substitution tokens appearing in question texts.
const (
	tokenDate          = "[DATE]"
	tokenRecentCompany = "[MOST_RECENT_COMPANY]"
)

// Bank keys with special handling.
const (
	keyGapOrTransition = "GAP_OR_TRANSITION"
	keyGapQuestions    = "GAP_QUESTIONS"
	keyTransition      = "TRANSITION_QUESTIONS"
	keyRecentRole      = "RECENT_ROLE_DETAILS"
)

const fallbackText = "Could you tell me more about your experience?"

// WarmupSpeech is spoken before the recorded interview starts. It is not part
// of the scored transcript.
const WarmupSpeech = "Hi there! I'm Serenity. I'm here to help you find your next role. " +
	"Don't worry, this isn't a test, and there are no trick questions. Just relax, " +
	"take your time, and be yourself. Click the button whenever you're ready to start."

// Catalog is the immutable interview script. Safe for concurrent use.
type Catalog struct {
	flow         []Slot
	bank         map[string][]Variant
	minGapMonths int
	logger       *zap.Logger
}

// Default returns the built-in BPO screening script: twelve slots covering
// intro, CV walkthrough, scenarios, reliability and coachability, with three
// phrasing variants per slot.
func Default(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		flow:         defaultFlow,
		bank:         defaultBank,
		minGapMonths: 2,
		logger:       logger,
	}
}

// Len returns the number of slots in the flow.
func (c *Catalog) Len() int { return len(c.flow) }

// Slot returns the i-th slot of the flow.
func (c *Catalog) Slot(i int) (Slot, bool) {
	if i < 0 || i >= len(c.flow) {
		return Slot{}, false
	}
	return c.flow[i], true
}

// Pick selects a question for the slot: a random phrasing variant, the
// gap/transition conditional for the special slot, and token substitution
// from the profile. A missing bank key yields a neutral fallback question
// instead of an error.
func (c *Catalog) Pick(slot Slot, profile *candidate.Profile, rng Rand) Question {
	key := slot.Key

	var dateStr string
	if key == keyGapOrTransition {
		if gap, ok := profile.SignificantGap(c.minGapMonths); ok {
			key = keyGapQuestions
			dateStr = "in your history"
			if gap.StartDate != "" {
				dateStr = "around " + gap.StartDate
			}
		} else {
			key = keyTransition
		}
	}

	variants, ok := c.bank[key]
	if !ok || len(variants) == 0 {
		c.logger.Warn("question bank miss, using fallback",
			zap.String("slot", slot.ID),
			zap.String("key", key),
		)
		return Question{
			ID:                    slot.ID + "_ERROR",
			Text:                  fallbackText,
			Phase:                 slot.Phase,
			Kind:                  KindMaster,
			ExpectedAnswerSeconds: slot.AnswerSeconds,
		}
	}

	v := variants[rng.Intn(len(variants))]
	text := v.Text

	if dateStr != "" {
		text = strings.ReplaceAll(text, tokenDate, dateStr)
	}
	if slot.Key == keyRecentRole {
		company := "your most recent company"
		if profile != nil && profile.Totals.MostRecentCompany != "" {
			company = profile.Totals.MostRecentCompany
		}
		text = strings.ReplaceAll(text, tokenRecentCompany, company)
	}

	return Question{
		ID:                    v.ID,
		Text:                  text,
		Phase:                 slot.Phase,
		Kind:                  KindMaster,
		ExpectedAnswerSeconds: slot.AnswerSeconds,
	}
}
