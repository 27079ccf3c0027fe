package interview

import (
	"go.uber.org/zap"

	"github.com/serenity-hq/screener/internal/candidate"
	"github.com/serenity-hq/screener/internal/catalog"
)

// Closing lines. The timeout line is emitted at most once per session.
const (
	timeoutQuestionID = "Q_CLOSE_TIMEOUT"
	doneQuestionID    = "Q_CLOSE_DONE"

	timeoutClosingText = "It looks like we're out of time. Thank you for your patience and effort today. " +
		"We'll review what we've covered, and if there's a potential match, we'll reach out to you. Thank you again."
	doneClosingText = "That concludes our interview. Thank you so much for your time today. " +
		"We will now review your responses and profile. If there is a good match for one of our open roles, " +
		"a member of the team will be in touch with next steps. Have a wonderful day."
)

// Follow-up prompts by detected issue.
const (
	followupTooShortText = "That's a good start. Could you tell me a little more details about that?"
	followupVagueText    = "That's helpful context. Can you give me a specific example to help me understand better?"
)

// Config carries the controller's tunable limits. The defaults mirror the
// production script; none of the values are empirically calibrated.
type Config struct {
	HardStopMinutes  float64 `mapstructure:"hard-stop-minutes"`
	MaxFollowups     int     `mapstructure:"max-followups"`
	ShortAnswerWords int     `mapstructure:"short-answer-words"`
}

// DefaultConfig returns the production limits: a 43 minute ceiling, at most
// six follow-ups, and a 15 word short-answer threshold.
func DefaultConfig() Config {
	return Config{
		HardStopMinutes:  43,
		MaxFollowups:     6,
		ShortAnswerWords: 15,
	}
}

// Controller is the adaptive interview state machine. It holds no per-session
// state; everything it needs is threaded through State by the caller, so a
// single Controller serves any number of sessions.
type Controller struct {
	catalog *catalog.Catalog
	cfg     Config
	rng     catalog.Rand
	logger  *zap.Logger
}

// NewController builds a controller over the given script. rng drives variant
// rotation and simulated noise; pass a seeded source for reproducible runs.
func NewController(cat *catalog.Catalog, cfg Config, rng catalog.Rand, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{catalog: cat, cfg: cfg, rng: rng, logger: logger}
}

// Decide is invoked once per conversational turn. It returns the next
// question to ask (nil when the interview is over) and the successor state.
// The input state is never mutated; a nil or partial state is repaired first.
func (c *Controller) Decide(profile *candidate.Profile, transcript []TranscriptItem, prev *State) (*Question, State) {
	state := repair(prev)

	// Hard stop. Once the time budget is gone the session terminates via
	// exactly one timeout closing line, regardless of remaining slots.
	if state.ElapsedMinutes >= c.cfg.HardStopMinutes {
		if state.Phase != catalog.PhaseClosingTimeout && state.Phase != catalog.PhaseComplete {
			state.Phase = catalog.PhaseClosingTimeout
			state.LastQuestionID = timeoutQuestionID
			state.LastQuestionKind = catalog.KindClosing
			c.logger.Debug("interview hard stop reached",
				zap.Float64("elapsed_minutes", state.ElapsedMinutes),
			)
			return &Question{
				ID:                    timeoutQuestionID,
				Text:                  timeoutClosingText,
				Phase:                 catalog.PhaseClosing,
				Kind:                  catalog.KindClosing,
				ExpectedAnswerSeconds: 5,
			}, state
		}
		state.Phase = catalog.PhaseComplete
		return nil, state
	}

	// Follow-up: only directly after a master question, within budget, and
	// only when the analyzer flagged the last answer. The slot pointer does
	// not move.
	analysis := c.analyzeLastAnswer(transcript)
	if analysis.NeedsFollowup &&
		state.LastQuestionKind == catalog.KindMaster &&
		state.FollowupsUsed < c.cfg.MaxFollowups {
		state.FollowupsUsed++
		text := followupVagueText
		if len(analysis.Issues) > 0 && analysis.Issues[0] == IssueTooShort {
			text = followupTooShortText
		}
		q := Question{
			ID:                    state.LastQuestionID + "_FU",
			Text:                  text,
			Phase:                 state.Phase,
			Kind:                  catalog.KindFollowup,
			ExpectedAnswerSeconds: 45,
		}
		state.LastQuestionID = q.ID
		state.LastQuestionKind = catalog.KindFollowup
		return &q, state
	}

	// Script exhausted: one closing line, then silence.
	if state.SlotIndex >= c.catalog.Len() {
		if state.Phase != catalog.PhaseComplete {
			state.Phase = catalog.PhaseComplete
			state.LastQuestionID = doneQuestionID
			state.LastQuestionKind = catalog.KindClosing
			return &Question{
				ID:                    doneQuestionID,
				Text:                  doneClosingText,
				Phase:                 catalog.PhaseClosing,
				Kind:                  catalog.KindClosing,
				ExpectedAnswerSeconds: 0,
			}, state
		}
		return nil, state
	}

	// Next master question.
	slot, _ := c.catalog.Slot(state.SlotIndex)
	q := c.catalog.Pick(slot, profile, c.rng)

	state.SlotIndex++
	state.LastQuestionID = q.ID
	state.LastQuestionKind = catalog.KindMaster
	state.Phase = slot.Phase
	state.AskedQuestions = append(state.AskedQuestions, q.ID)

	return &q, state
}

// analyzeLastAnswer runs the turn analyzer over the most recent candidate
// answer, if the transcript ends with one.
func (c *Controller) analyzeLastAnswer(transcript []TranscriptItem) Analysis {
	if len(transcript) == 0 {
		return Analysis{}
	}
	last := transcript[len(transcript)-1]
	if last.Role != RoleUser {
		return Analysis{}
	}
	return Analyze(last.Content, c.cfg.ShortAnswerWords, c.rng)
}
