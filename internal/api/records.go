package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/serenity-hq/screener/internal/candidate"
	"github.com/serenity-hq/screener/internal/matching"
	"github.com/serenity-hq/screener/internal/scoring"
	"github.com/serenity-hq/screener/internal/store"
)

type CreateCandidateRequest struct {
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	Phone   string             `json:"phone,omitempty"`
	CVText  string             `json:"cv_text,omitempty"`
	Profile *candidate.Profile `json:"profile,omitempty"`
}

func handleCreateCandidate(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCandidateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Name == "" || req.Email == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "name and email are required")
			return
		}
		c := &store.Candidate{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			CVText:    req.CVText,
			Profile:   req.Profile,
			CreatedAt: time.Now().UTC(),
		}
		if err := deps.Store.Candidates().Put(r.Context(), c); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving candidate: %v", err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

func handleListCandidates(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidates, err := deps.Store.Candidates().List(r.Context())
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing candidates: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
	}
}

func handleGetCandidate(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := deps.Store.Candidates().Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "not_found_error", "candidate not found")
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "loading candidate: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func handleCandidateApplications(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apps, err := deps.Service.CandidateApplications(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing applications: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"applications": apps})
	}
}

func handleAutoMatch(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		created, err := deps.Service.AutoMatch(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "not_found_error", "candidate not found")
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "auto-match: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"created": created})
	}
}

type CreateProgramRequest struct {
	CompanyID        string                 `json:"company_id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description,omitempty"`
	Location         string                 `json:"location,omitempty"`
	Type             matching.ProgramType   `json:"type"`
	HeadcountNeeded  int                    `json:"headcount_needed"`
	MustHaveSkills   []string               `json:"must_have_skills"`
	NiceToHaveSkills []string               `json:"nice_to_have_skills"`
	DealBreakers     []string               `json:"deal_breakers,omitempty"`
	Status           matching.ProgramStatus `json:"status,omitempty"`
}

func handleCreateProgram(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProgramRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Title == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "title is required")
			return
		}
		if _, ok := matching.Definitions[req.Type]; !ok {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "unknown program type %q", req.Type)
			return
		}
		if req.Status == "" {
			req.Status = matching.ProgramLive
		}
		p := &matching.Program{
			ID:               uuid.NewString(),
			CompanyID:        req.CompanyID,
			Title:            req.Title,
			Description:      req.Description,
			Location:         req.Location,
			Type:             req.Type,
			HeadcountNeeded:  req.HeadcountNeeded,
			MustHaveSkills:   req.MustHaveSkills,
			NiceToHaveSkills: req.NiceToHaveSkills,
			DealBreakers:     req.DealBreakers,
			Status:           req.Status,
			CreatedAt:        time.Now().UTC(),
		}
		if err := deps.Store.Programs().Put(r.Context(), p); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving program: %v", err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func handleListPrograms(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			programs []*matching.Program
			err      error
		)
		if r.URL.Query().Get("status") == "live" {
			programs, err = deps.Store.Programs().ListLive(r.Context())
		} else {
			programs, err = deps.Store.Programs().List(r.Context())
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing programs: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"programs": programs})
	}
}

func handleGetProgram(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := deps.Store.Programs().Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpError(w, http.StatusNotFound, "not_found_error", "program not found")
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "loading program: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleProgramApplications(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apps, err := deps.Store.Applications().ListByProgram(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing applications: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"applications": apps})
	}
}

// RankRequest is the stateless matcher endpoint: nothing is persisted.
type RankRequest struct {
	Profile    *candidate.Profile  `json:"profile,omitempty"`
	Evaluation *scoring.Evaluation `json:"evaluation,omitempty"`
	Programs   []*matching.Program `json:"programs"`
}

func handleMatchRank(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RankRequest
		if !decodeBody(w, r, &req) {
			return
		}
		apps := deps.Matcher.Rank(req.Profile, req.Evaluation, req.Programs)
		matching.SortByScore(apps)
		writeJSON(w, http.StatusOK, map[string]any{"applications": apps})
	}
}

func handleRematchAll(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := deps.Service.RematchAll(r.Context())
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "rematch: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"created": total})
	}
}

type FeedbackRequest struct {
	SessionID   string   `json:"session_id"`
	CandidateID string   `json:"candidate_id"`
	Clarity     int      `json:"clarity"`
	Relevance   int      `json:"relevance"`
	Fairness    int      `json:"fairness"`
	Tags        []string `json:"tags,omitempty"`
	Comment     string   `json:"comment,omitempty"`
}

func handleSubmitFeedback(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FeedbackRequest
		if !decodeBody(w, r, &req) {
			return
		}
		f := &store.InterviewFeedback{
			SessionID:   req.SessionID,
			CandidateID: req.CandidateID,
			Clarity:     req.Clarity,
			Relevance:   req.Relevance,
			Fairness:    req.Fairness,
			Tags:        req.Tags,
			Comment:     req.Comment,
		}
		if err := deps.Service.SubmitFeedback(r.Context(), f); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		writeJSON(w, http.StatusCreated, f)
	}
}

func handleFeedbackSummary(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := deps.Service.FeedbackSummary(r.Context())
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "feedback summary: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
