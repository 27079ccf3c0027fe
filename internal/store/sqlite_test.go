package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-hq/screener/internal/candidate"
	"github.com/serenity-hq/screener/internal/interview"
	"github.com/serenity-hq/screener/internal/matching"
	"github.com/serenity-hq/screener/internal/scoring"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	st, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestCandidateRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	c := &Candidate{
		ID:     "c1",
		Name:   "Maria Santos",
		Email:  "maria@example.com",
		CVText: "5 years in customer support",
		Profile: &candidate.Profile{
			Skills: []string{"Zendesk", "English C1"},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Candidates().Put(ctx, c))

	got, err := st.Candidates().Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", got.Name)
	require.NotNil(t, got.Profile)
	assert.Equal(t, []string{"Zendesk", "English C1"}, got.Profile.Skills)

	_, err = st.Candidates().Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCandidateUpsert(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	c := &Candidate{ID: "c1", Name: "Maria", Email: "maria@example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, st.Candidates().Put(ctx, c))

	c.CVText = "updated cv"
	require.NoError(t, st.Candidates().Put(ctx, c))

	got, err := st.Candidates().Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "updated cv", got.CVText)

	all, err := st.Candidates().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSessionRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sess := &Session{
		Session: interview.Session{
			ID:          "s1",
			CandidateID: "c1",
			Mode:        interview.ModeText,
			Status:      interview.StatusComplete,
			CreatedAt:   time.Now().UTC(),
		},
		Evaluation: &scoring.Evaluation{
			OverallScore:   72,
			Recommendation: scoring.InterviewRecommended,
		},
	}
	require.NoError(t, st.Sessions().Put(ctx, sess))

	got, err := st.Sessions().Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, interview.StatusComplete, got.Status)
	require.NotNil(t, got.Evaluation)
	assert.Equal(t, 72, got.Evaluation.OverallScore)

	byCand, err := st.Sessions().ListByCandidate(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, byCand, 1)

	none, err := st.Sessions().ListByCandidate(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProgramListLive(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, p := range []*matching.Program{
		{ID: "p1", Title: "Inbound", Type: matching.InboundSupport, Status: matching.ProgramLive},
		{ID: "p2", Title: "Sales", Type: matching.OutboundSales, Status: matching.ProgramDraft},
		{ID: "p3", Title: "Tech", Type: matching.TechSupport, Status: matching.ProgramLive},
	} {
		require.NoError(t, st.Programs().Put(ctx, p))
	}

	all, err := st.Programs().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	live, err := st.Programs().ListLive(ctx)
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, "p1", live[0].ID)
	assert.Equal(t, "p3", live[1].ID)
}

func TestApplicationsOrderedByScore(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, a := range []*matching.Application{
		{ID: "a1", CandidateID: "c1", ProgramID: "p1", Status: matching.StatusSuggested, MatchScore: 40},
		{ID: "a2", CandidateID: "c1", ProgramID: "p2", Status: matching.StatusSuggested, MatchScore: 85},
		{ID: "a3", CandidateID: "c2", ProgramID: "p1", Status: matching.StatusSuggested, MatchScore: 60},
	} {
		require.NoError(t, st.Applications().Put(ctx, a))
	}

	byCand, err := st.Applications().ListByCandidate(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, byCand, 2)
	assert.Equal(t, "a2", byCand[0].ID)
	assert.Equal(t, "a1", byCand[1].ID)

	byProg, err := st.Applications().ListByProgram(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, byProg, 2)
	assert.Equal(t, "a3", byProg[0].ID)
}

func TestSummarizeFeedback(t *testing.T) {
	empty := SummarizeFeedback(nil)
	assert.Zero(t, empty.Total)
	assert.Equal(t, []string{}, empty.TopTags)

	got := SummarizeFeedback([]*InterviewFeedback{
		{Clarity: 5, Relevance: 4, Fairness: 5, Tags: []string{"fair", "clear"}},
		{Clarity: 4, Relevance: 4, Fairness: 3, Tags: []string{"fair"}},
	})
	assert.Equal(t, 2, got.Total)
	assert.InDelta(t, 4.5, got.AvgClarity, 1e-9)
	assert.InDelta(t, 4.0, got.AvgRelevance, 1e-9)
	assert.InDelta(t, 4.0, got.AvgFairness, 1e-9)
	assert.Equal(t, []string{"fair", "clear"}, got.TopTags)
}
