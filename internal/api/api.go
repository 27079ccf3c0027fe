package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/serenity-hq/screener/internal/interview"
	"github.com/serenity-hq/screener/internal/matching"
	"github.com/serenity-hq/screener/internal/scoring"
	"github.com/serenity-hq/screener/internal/store"
)

const maxBodySize = 1 << 20 // 1MB

// Deps carries everything the handlers need.
type Deps struct {
	Store      store.Store
	Service    *store.Service
	Controller *interview.Controller
	Evaluator  *scoring.Evaluator
	Matcher    *matching.Matcher
	Logger     *zap.Logger
	Token      string // optional; empty disables auth
}

// NewHandler builds the HTTP API.
func NewHandler(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := chi.NewRouter()
	if deps.Token != "" {
		r.Use(BearerAuth(deps.Token))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/interview/next", handleInterviewNext(deps))
		r.Post("/interview/evaluate", handleInterviewEvaluate(deps))
		r.Post("/match/rank", handleMatchRank(deps))
		r.Post("/match/rematch-all", handleRematchAll(deps))

		r.Post("/candidates", handleCreateCandidate(deps))
		r.Get("/candidates", handleListCandidates(deps))
		r.Get("/candidates/{id}", handleGetCandidate(deps))
		r.Get("/candidates/{id}/applications", handleCandidateApplications(deps))
		r.Post("/candidates/{id}/automatch", handleAutoMatch(deps))

		r.Post("/programs", handleCreateProgram(deps))
		r.Get("/programs", handleListPrograms(deps))
		r.Get("/programs/{id}", handleGetProgram(deps))
		r.Get("/programs/{id}/applications", handleProgramApplications(deps))

		r.Post("/sessions", handleCreateSession(deps))
		r.Get("/sessions/{id}", handleGetSession(deps))
		r.Post("/sessions/{id}/answer", handleSessionAnswer(deps))

		r.Post("/feedback", handleSubmitFeedback(deps))
		r.Get("/feedback/summary", handleFeedbackSummary(deps))
	})

	return r
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}
