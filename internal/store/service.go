package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/serenity-hq/screener/internal/matching"
	"github.com/serenity-hq/screener/internal/scoring"
	"github.com/serenity-hq/screener/internal/screening"
)

// rematchConcurrency bounds the parallel candidate fan-out in RematchAll.
// The matcher is pure, so candidates can be scored concurrently; writes
// serialize on the single SQLite connection.
const rematchConcurrency = 4

// Service runs matching workflows on top of the store.
type Service struct {
	store   Store
	matcher *matching.Matcher
	logger  *zap.Logger
}

// NewService builds the matching service.
func NewService(st Store, m *matching.Matcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, matcher: m, logger: logger}
}

// AutoMatch ranks the candidate against every live program and records one
// suggested application per program. Candidates without an extracted profile,
// without a completed evaluation, or evaluated as not recommended yet are
// skipped. Programs the candidate already applied to are left untouched.
func (s *Service) AutoMatch(ctx context.Context, candidateID string) ([]*matching.Application, error) {
	cand, err := s.store.Candidates().Get(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("loading candidate: %w", err)
	}
	if cand.Profile == nil {
		s.logger.Debug("skipping auto-match, no profile", zap.String("candidate_id", candidateID))
		return nil, nil
	}

	eval, err := s.latestEvaluation(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if eval == nil {
		s.logger.Debug("skipping auto-match, no completed interview", zap.String("candidate_id", candidateID))
		return nil, nil
	}
	if eval.Recommendation == scoring.NotRecommendedYet {
		s.logger.Debug("skipping auto-match, not recommended yet", zap.String("candidate_id", candidateID))
		return nil, nil
	}

	programs, err := s.store.Programs().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}

	existing, err := s.store.Applications().ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	applied := make(map[string]bool, len(existing))
	for _, a := range existing {
		applied[a.ProgramID] = true
	}

	programs, err = screening.Run(ctx, screening.Deps{
		Logger:            s.logger,
		AppliedProgramIDs: applied,
	}, screening.DefaultSteps(), programs)
	if err != nil {
		return nil, fmt.Errorf("pre-screening programs: %w", err)
	}
	if len(programs) == 0 {
		return nil, nil
	}

	ranked := s.matcher.Rank(cand.Profile, eval, programs)
	now := time.Now().UTC()

	var created []*matching.Application
	for _, app := range ranked {
		app.ID = uuid.NewString()
		app.CandidateID = candidateID
		app.CreatedAt = now
		app.UpdatedAt = now
		if err := s.store.Applications().Put(ctx, app); err != nil {
			return created, fmt.Errorf("saving application: %w", err)
		}
		created = append(created, app)
	}

	s.logger.Info("auto-match complete",
		zap.String("candidate_id", candidateID),
		zap.Int("programs", len(programs)),
		zap.Int("created", len(created)),
	)
	return created, nil
}

// RematchAll runs AutoMatch for every candidate, typically after a new
// program goes live.
func (s *Service) RematchAll(ctx context.Context) (int, error) {
	candidates, err := s.store.Candidates().List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing candidates: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rematchConcurrency)

	counts := make([]int, len(candidates))
	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			created, err := s.AutoMatch(gctx, cand.ID)
			if err != nil {
				return fmt.Errorf("candidate %s: %w", cand.ID, err)
			}
			counts[i] = len(created)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

// CandidateApplications returns the candidate's applications best-first.
func (s *Service) CandidateApplications(ctx context.Context, candidateID string) ([]*matching.Application, error) {
	return s.store.Applications().ListByCandidate(ctx, candidateID)
}

// SubmitFeedback records one post-interview rating.
func (s *Service) SubmitFeedback(ctx context.Context, f *InterviewFeedback) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	for _, v := range []int{f.Clarity, f.Relevance, f.Fairness} {
		if v < 1 || v > 5 {
			return fmt.Errorf("feedback rating %d out of range", v)
		}
	}
	return s.store.Feedback().Add(ctx, f)
}

// FeedbackSummary aggregates all feedback submitted so far.
func (s *Service) FeedbackSummary(ctx context.Context) (FeedbackSummary, error) {
	items, err := s.store.Feedback().List(ctx)
	if err != nil {
		return FeedbackSummary{}, fmt.Errorf("listing feedback: %w", err)
	}
	return SummarizeFeedback(items), nil
}

// latestEvaluation returns the newest completed session's evaluation, or nil
// when the candidate has not finished an interview.
func (s *Service) latestEvaluation(ctx context.Context, candidateID string) (*scoring.Evaluation, error) {
	sessions, err := s.store.Sessions().ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].Evaluation != nil {
			return sessions[i].Evaluation, nil
		}
	}
	return nil, nil
}
