package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/serenity-hq/screener/internal/candidate"
	"github.com/serenity-hq/screener/internal/interview"
	"github.com/serenity-hq/screener/internal/matching"
	"github.com/serenity-hq/screener/internal/scoring"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("store: not found")

// Candidate is a registered job seeker. The profile is nil until CV
// extraction has run.
type Candidate struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone,omitempty"`
	CVText    string             `json:"cv_text,omitempty"`
	Profile   *candidate.Profile `json:"profile,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// Session is a persisted interview with its evaluation, if completed.
type Session struct {
	interview.Session
	Evaluation *scoring.Evaluation `json:"evaluation,omitempty"`
}

// InterviewFeedback is a candidate's post-interview rating, 1 to 5 per axis.
type InterviewFeedback struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	CandidateID string    `json:"candidate_id"`
	Clarity     int       `json:"clarity"`
	Relevance   int       `json:"relevance"`
	Fairness    int       `json:"fairness"`
	Tags        []string  `json:"tags,omitempty"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FeedbackSummary aggregates all submitted feedback.
type FeedbackSummary struct {
	Total        int      `json:"total"`
	AvgClarity   float64  `json:"avg_clarity"`
	AvgRelevance float64  `json:"avg_relevance"`
	AvgFairness  float64  `json:"avg_fairness"`
	TopTags      []string `json:"top_tags"`
}

// Candidates persists candidate records.
type Candidates interface {
	Put(ctx context.Context, c *Candidate) error
	Get(ctx context.Context, id string) (*Candidate, error)
	List(ctx context.Context) ([]*Candidate, error)
}

// Sessions persists interview sessions.
type Sessions interface {
	Put(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*Session, error)
}

// Programs persists employer programs.
type Programs interface {
	Put(ctx context.Context, p *matching.Program) error
	Get(ctx context.Context, id string) (*matching.Program, error)
	List(ctx context.Context) ([]*matching.Program, error)
	ListLive(ctx context.Context) ([]*matching.Program, error)
}

// Applications persists candidate-to-program applications.
type Applications interface {
	Put(ctx context.Context, a *matching.Application) error
	Get(ctx context.Context, id string) (*matching.Application, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*matching.Application, error)
	ListByProgram(ctx context.Context, programID string) ([]*matching.Application, error)
}

// Feedback persists interview feedback submissions.
type Feedback interface {
	Add(ctx context.Context, f *InterviewFeedback) error
	List(ctx context.Context) ([]*InterviewFeedback, error)
}

// Store bundles all persistence interfaces behind one handle.
type Store interface {
	Candidates() Candidates
	Sessions() Sessions
	Programs() Programs
	Applications() Applications
	Feedback() Feedback
	Close() error
}

// SummarizeFeedback averages the submitted ratings. An empty input yields the
// zero summary with Total 0 so callers can render "no data yet" directly.
func SummarizeFeedback(items []*InterviewFeedback) FeedbackSummary {
	if len(items) == 0 {
		return FeedbackSummary{TopTags: []string{}}
	}
	var clarity, relevance, fairness int
	tagCounts := make(map[string]int)
	for _, f := range items {
		clarity += f.Clarity
		relevance += f.Relevance
		fairness += f.Fairness
		for _, t := range f.Tags {
			tagCounts[t]++
		}
	}
	n := float64(len(items))

	tags := make([]string, 0, len(tagCounts))
	for t := range tagCounts {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool {
		if tagCounts[tags[i]] != tagCounts[tags[j]] {
			return tagCounts[tags[i]] > tagCounts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > 5 {
		tags = tags[:5]
	}

	return FeedbackSummary{
		Total:        len(items),
		AvgClarity:   round2(float64(clarity) / n),
		AvgRelevance: round2(float64(relevance) / n),
		AvgFairness:  round2(float64(fairness) / n),
		TopTags:      tags,
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
