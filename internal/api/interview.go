package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/serenity-hq/screener/internal/candidate"
	"github.com/serenity-hq/screener/internal/interview"
	"github.com/serenity-hq/screener/internal/logger"
	"github.com/serenity-hq/screener/internal/scoring"
	"github.com/serenity-hq/screener/internal/store"
)

// NextRequest is the stateless controller endpoint: callers hold the state.
type NextRequest struct {
	Profile    *candidate.Profile         `json:"profile,omitempty"`
	Transcript []interview.TranscriptItem `json:"transcript"`
	State      *interview.State           `json:"state,omitempty"`
}

type NextResponse struct {
	Question *interview.Question `json:"question"`
	State    interview.State     `json:"state"`
}

func handleInterviewNext(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NextRequest
		if !decodeBody(w, r, &req) {
			return
		}
		q, state := deps.Controller.Decide(req.Profile, req.Transcript, req.State)
		writeJSON(w, http.StatusOK, NextResponse{Question: q, State: state})
	}
}

type EvaluateRequest struct {
	Session scoring.Session `json:"session"`
}

type EvaluateResponse struct {
	Evaluation *scoring.Evaluation     `json:"evaluation"`
	Coaching   []scoring.CoachingOffer `json:"coaching_offers"`
}

func handleInterviewEvaluate(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EvaluateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if len(req.Session.Turns) == 0 {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "session has no turns")
			return
		}
		eval := deps.Evaluator.Evaluate(req.Session)
		offers := scoring.SynthesizeOffers(deps.Evaluator.Config(), eval.Scores, eval.CVAlignment, eval.OverallScore, eval.RiskFlags)
		writeJSON(w, http.StatusOK, EvaluateResponse{Evaluation: eval, Coaching: offers})
	}
}

type CreateSessionRequest struct {
	CandidateID string         `json:"candidate_id"`
	Mode        interview.Mode `json:"mode"`
}

type SessionResponse struct {
	Session  *store.Session      `json:"session"`
	Question *interview.Question `json:"question,omitempty"`
}

func handleCreateSession(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.CandidateID == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "candidate_id is required")
			return
		}
		if req.Mode == "" {
			req.Mode = interview.ModeText
		}

		cand, err := deps.Store.Candidates().Get(r.Context(), req.CandidateID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "not_found_error", "candidate %s not found", req.CandidateID)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "loading candidate: %v", err)
			return
		}

		sess := &store.Session{
			Session: interview.Session{
				ID:          uuid.NewString(),
				CandidateID: cand.ID,
				Mode:        req.Mode,
				Status:      interview.StatusInProgress,
				CreatedAt:   time.Now().UTC(),
			},
		}

		q, state := deps.Controller.Decide(cand.Profile, nil, nil)
		sess.State = &state
		if q != nil {
			sess.Transcript = append(sess.Transcript, interview.TranscriptItem{
				Role:       interview.RoleSystem,
				Content:    q.Text,
				QuestionID: q.ID,
			})
		}

		if err := deps.Store.Sessions().Put(r.Context(), sess); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving session: %v", err)
			return
		}
		writeJSON(w, http.StatusCreated, SessionResponse{Session: sess, Question: q})
	}
}

func handleGetSession(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := deps.Store.Sessions().Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "not_found_error", "session not found")
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "loading session: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{Session: sess})
	}
}

type AnswerRequest struct {
	Answer  string                `json:"answer"`
	Metrics *scoring.AudioMetrics `json:"metrics,omitempty"`
	Times   *interview.Timestamps `json:"timestamps,omitempty"`
	// ElapsedMinutes is the caller's interview clock. The hard stop lives on
	// this value; clients that omit it can still drive it via Times.EndSec.
	ElapsedMinutes float64 `json:"elapsed_minutes,omitempty"`
}

// handleSessionAnswer records the candidate's answer and advances the
// interview. When the controller signals completion the session is scored
// and auto-match runs before the response is written.
func handleSessionAnswer(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		if !decodeBody(w, r, &req) {
			return
		}

		sess, err := deps.Store.Sessions().Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "not_found_error", "session not found")
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "loading session: %v", err)
			return
		}
		if sess.Status == interview.StatusComplete {
			httpError(w, http.StatusConflict, "invalid_request_error", "session already complete")
			return
		}

		log := logger.WithSessionFields(deps.Logger, sess.ID, sess.CandidateID)
		log.Debug("answer received", zap.String("answer", logger.TruncateForLog(req.Answer, 120)))

		if sess.State == nil {
			sess.State = &interview.State{}
		}
		switch {
		case req.ElapsedMinutes > 0:
			sess.State.ElapsedMinutes = req.ElapsedMinutes
		case req.Times != nil && req.Times.EndSec > 0:
			sess.State.ElapsedMinutes = req.Times.EndSec / 60
		}

		askedID := sess.State.LastQuestionID
		sess.Transcript = append(sess.Transcript, interview.TranscriptItem{
			Role:       interview.RoleUser,
			Content:    req.Answer,
			QuestionID: askedID,
			Timestamps: req.Times,
		})

		var cand *store.Candidate
		cand, err = deps.Store.Candidates().Get(r.Context(), sess.CandidateID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			httpError(w, http.StatusInternalServerError, "api_error", "loading candidate: %v", err)
			return
		}
		var profile *candidate.Profile
		if cand != nil {
			profile = cand.Profile
		}

		q, state := deps.Controller.Decide(profile, sess.Transcript, sess.State)
		sess.State = &state

		resp := SessionResponse{Session: sess, Question: q}
		if q != nil {
			sess.Transcript = append(sess.Transcript, interview.TranscriptItem{
				Role:       interview.RoleSystem,
				Content:    q.Text,
				QuestionID: q.ID,
			})
		} else {
			sess.Status = interview.StatusComplete
			sess.Evaluation = deps.Evaluator.Evaluate(sessionTurns(sess, req.Metrics))

			if err := deps.Store.Sessions().Put(r.Context(), sess); err != nil {
				httpError(w, http.StatusInternalServerError, "api_error", "saving session: %v", err)
				return
			}
			if _, err := deps.Service.AutoMatch(r.Context(), sess.CandidateID); err != nil {
				log.Warn("auto-match after interview failed", zap.Error(err))
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}

		if err := deps.Store.Sessions().Put(r.Context(), sess); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving session: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// sessionTurns pairs each asked question with the answer that followed it.
func sessionTurns(sess *store.Session, metrics *scoring.AudioMetrics) scoring.Session {
	var turns []scoring.Turn
	var pending *interview.TranscriptItem
	for i := range sess.Transcript {
		item := &sess.Transcript[i]
		switch item.Role {
		case interview.RoleSystem:
			pending = item
		case interview.RoleUser:
			if pending == nil {
				continue
			}
			turns = append(turns, scoring.Turn{
				Question: interview.Question{ID: pending.QuestionID, Text: pending.Content},
				Answer:   item.Content,
			})
			pending = nil
		}
	}
	return scoring.Session{Turns: turns, Metrics: metrics}
}
