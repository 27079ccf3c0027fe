// Package interview contains the adaptive interview controller: the state
// machine that decides, once per conversational turn, whether to follow up,
// advance the script, or close the session.
package interview

import (
	"time"

	"github.com/serenity-hq/screener/internal/catalog"
)

// Aliases keep the conversation-level API in one vocabulary. The underlying
// types live in catalog because the script is the leaf dependency.
type (
	Phase    = catalog.Phase
	Kind     = catalog.Kind
	Question = catalog.Question
)

// Role identifies the speaker of a transcript item.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Timestamps marks when a transcript item started and ended, in seconds from
// the session start. Supplied by the capture layer when available.
type Timestamps struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
}

// TranscriptItem is one turn of the conversation. The transcript is an
// append-only list owned by the session.
type TranscriptItem struct {
	Role         Role        `json:"role"`
	Content      string      `json:"content"`
	QuestionID   string      `json:"question_id,omitempty"`
	Timestamps   *Timestamps `json:"timestamps,omitempty"`
	QualityFlags []string    `json:"quality_flags,omitempty"`
}

// State is the controller's per-session memory. It is owned by exactly one
// session, mutated once per turn by Decide, and threaded back in by the
// caller on the next turn.
type State struct {
	// SlotIndex points at the next catalog slot. Never decreases.
	SlotIndex int `json:"current_slot_index"`
	// AskedQuestions lists the ids of master questions already emitted.
	AskedQuestions []string `json:"asked_questions"`
	FollowupsUsed  int      `json:"followups_used"`
	// ElapsedMinutes is caller-supplied cumulative interview time; the
	// controller never reads a wall clock.
	ElapsedMinutes   float64 `json:"elapsed_minutes"`
	LastQuestionID   string  `json:"last_question_id,omitempty"`
	LastQuestionKind Kind    `json:"last_question_kind,omitempty"`
	Phase            Phase   `json:"phase"`
}

// repair returns a usable copy of s with any absent or malformed field
// defaulted. The controller must never fail on a partially-initialized
// session.
func repair(s *State) State {
	if s == nil {
		return State{Phase: catalog.PhaseIntro}
	}
	out := *s
	out.AskedQuestions = append([]string(nil), s.AskedQuestions...)
	if out.SlotIndex < 0 {
		out.SlotIndex = 0
	}
	if out.FollowupsUsed < 0 {
		out.FollowupsUsed = 0
	}
	if out.ElapsedMinutes < 0 {
		out.ElapsedMinutes = 0
	}
	if !out.Phase.Valid() {
		out.Phase = catalog.PhaseIntro
	}
	return out
}

// Mode is how the candidate takes the interview.
type Mode string

const (
	ModeText  Mode = "TEXT"
	ModeVideo Mode = "VIDEO"
)

// Status tracks a session through its lifecycle.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusComplete   Status = "COMPLETE"
)

// Session is a single candidate interview: its transcript plus controller
// state. Scores are attached by the evaluator after completion and persisted
// alongside by the store.
type Session struct {
	ID          string           `json:"id"`
	CandidateID string           `json:"candidate_id"`
	Mode        Mode             `json:"mode"`
	Status      Status           `json:"status"`
	State       *State           `json:"state,omitempty"`
	Transcript  []TranscriptItem `json:"transcript"`
	CreatedAt   time.Time        `json:"created_at"`
}
