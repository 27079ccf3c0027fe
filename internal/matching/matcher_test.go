package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-hq/screener/internal/candidate"
	"github.com/serenity-hq/screener/internal/scoring"
)

func evalWith(scores scoring.DimensionScores, overall int, flags ...string) *scoring.Evaluation {
	return &scoring.Evaluation{
		Scores:       scores,
		OverallScore: overall,
		RiskFlags:    flags,
	}
}

func liveProgram(id string, typ ProgramType) *Program {
	return &Program{ID: id, Title: id, Type: typ, Status: ProgramLive}
}

func TestRankInboundTypeFit(t *testing.T) {
	m := New(DefaultConfig(), nil)
	eval := evalWith(scoring.DimensionScores{
		Empathy:       0.8,
		Communication: 0.8,
		Deescalation:  0.7,
	}, 0)

	apps := m.Rank(nil, eval, []*Program{liveProgram("p1", InboundSupport)})

	require.Len(t, apps, 1)
	b := apps[0].Breakdown
	assert.Equal(t, 30, b.ProgramTypeFit)
	assert.Contains(t, b.WhyThisMatch, "Matched because: High Empathy score (top 30%).")
	assert.Contains(t, b.WhyThisMatch, "Matched because: Clear communication style.")
	assert.Contains(t, b.WhyThisMatch, "Matched because: Proven de-escalation skills.")
}

func TestRankTechSupportUsesCVSkills(t *testing.T) {
	m := New(DefaultConfig(), nil)
	profile := &candidate.Profile{Skills: []string{"IT Helpdesk", "Excel"}}
	eval := evalWith(scoring.DimensionScores{Process: 0.8}, 0)

	apps := m.Rank(profile, eval, []*Program{liveProgram("p1", TechSupport)})

	b := apps[0].Breakdown
	assert.Equal(t, 30, b.ProgramTypeFit)
	assert.Contains(t, b.WhyThisMatch, "Matched because: Technical background found in CV.")
	assert.Contains(t, b.WhyThisMatch, "Matched because: Strong process adherence.")
}

func TestRankMustHaveCoverage(t *testing.T) {
	m := New(DefaultConfig(), nil)
	profile := &candidate.Profile{Skills: []string{"Zendesk Suite", "English C1"}}

	p := liveProgram("p1", InboundSupport)
	p.MustHaveSkills = []string{"zendesk", "german"}

	apps := m.Rank(profile, evalWith(scoring.DimensionScores{}, 0), []*Program{p})

	b := apps[0].Breakdown
	// One of two must-haves, bidirectional substring match.
	assert.Equal(t, 15, b.MustHavePoints)
	require.Len(t, b.Risks, 1)
	assert.Contains(t, b.Risks[0], "Missing key skills: german")
}

func TestRankMustHaveFullAndEmpty(t *testing.T) {
	m := New(DefaultConfig(), nil)
	profile := &candidate.Profile{Skills: []string{"Zendesk"}}

	full := liveProgram("full", InboundSupport)
	full.MustHaveSkills = []string{"zendesk"}
	none := liveProgram("none", InboundSupport)

	apps := m.Rank(profile, evalWith(scoring.DimensionScores{}, 0), []*Program{full, none})

	assert.Equal(t, 30, apps[0].Breakdown.MustHavePoints)
	assert.Contains(t, apps[0].Breakdown.WhyThisMatch, "Matched because: Has all required skills.")
	// No must-haves listed means full credit.
	assert.Equal(t, 30, apps[1].Breakdown.MustHavePoints)
}

func TestRankNiceToHaveCapped(t *testing.T) {
	m := New(DefaultConfig(), nil)
	profile := &candidate.Profile{Skills: []string{"excel", "sql", "typing"}}

	p := liveProgram("p1", BackOffice)
	p.NiceToHaveSkills = []string{"excel", "sql", "typing"}

	apps := m.Rank(profile, evalWith(scoring.DimensionScores{}, 0), []*Program{p})

	// Three matches at five points each, capped at ten.
	assert.Equal(t, 10, apps[0].Breakdown.NiceToHavePoints)
}

func TestRankInterviewPoints(t *testing.T) {
	m := New(DefaultConfig(), nil)

	apps := m.Rank(nil, evalWith(scoring.DimensionScores{}, 80), []*Program{liveProgram("p1", InboundSupport)})
	assert.Equal(t, 24, apps[0].Breakdown.InterviewPoints)

	apps = m.Rank(nil, nil, []*Program{liveProgram("p1", InboundSupport)})
	assert.Zero(t, apps[0].Breakdown.InterviewPoints)
}

func TestRankDealBreakerFromRiskFlags(t *testing.T) {
	m := New(DefaultConfig(), nil)

	p := liveProgram("p1", InboundSupport)
	p.DealBreakers = []string{"reliability"}

	eval := evalWith(scoring.DimensionScores{}, 80, scoring.RiskReliability)
	apps := m.Rank(nil, eval, []*Program{p})

	b := apps[0].Breakdown
	assert.Equal(t, 50, b.Penalty)
	assert.Contains(t, b.Risks, "Deal Breaker Triggered: Candidate flagged for reliability.")
	// 30 must-have (none listed) + 24 interview - 50 penalty.
	assert.Equal(t, 4, apps[0].MatchScore)
	assert.Equal(t, TierStretch, apps[0].MatchTier)
}

func TestRankJobHoppingDealBreaker(t *testing.T) {
	m := New(DefaultConfig(), nil)

	p := liveProgram("p1", InboundSupport)
	p.DealBreakers = []string{"job hopping"}

	profile := &candidate.Profile{
		GapAnalysis: candidate.GapAnalysis{JobHoppingRisk: candidate.JobHoppingHigh},
	}

	apps := m.Rank(profile, evalWith(scoring.DimensionScores{}, 0), []*Program{p})
	assert.Equal(t, 50, apps[0].Breakdown.Penalty)
	assert.Contains(t, apps[0].Breakdown.Risks, "Deal Breaker Triggered: High Job Hopping Risk detected.")

	// Low risk does not trigger.
	profile.GapAnalysis.JobHoppingRisk = candidate.JobHoppingLow
	apps = m.Rank(profile, evalWith(scoring.DimensionScores{}, 0), []*Program{p})
	assert.Zero(t, apps[0].Breakdown.Penalty)
}

func TestRankScoreClamped(t *testing.T) {
	m := New(DefaultConfig(), nil)

	// Everything maxed: 30 type fit + 30 must-have + 10 nice + 30 interview.
	profile := &candidate.Profile{Skills: []string{"excel", "sql"}}
	p := liveProgram("high", InboundSupport)
	p.NiceToHaveSkills = []string{"excel", "sql"}
	eval := evalWith(scoring.DimensionScores{
		Empathy:       0.9,
		Communication: 0.9,
		Deescalation:  0.9,
	}, 100)

	apps := m.Rank(profile, eval, []*Program{p})
	assert.Equal(t, 99, apps[0].MatchScore)
	assert.Equal(t, TierStrong, apps[0].MatchTier)

	// Everything penalized clamps at zero.
	low := liveProgram("low", InboundSupport)
	low.MustHaveSkills = []string{"german", "french"}
	low.DealBreakers = []string{"reliability", "process"}
	lowEval := evalWith(scoring.DimensionScores{}, 0, scoring.RiskReliability, scoring.RiskProcess)

	apps = m.Rank(nil, lowEval, []*Program{low})
	assert.Equal(t, 0, apps[0].MatchScore)
	assert.Equal(t, TierStretch, apps[0].MatchTier)
}

func TestRankTiers(t *testing.T) {
	m := New(DefaultConfig(), nil)

	// 30 must-have + interview points only.
	apps := m.Rank(nil, evalWith(scoring.DimensionScores{}, 100), []*Program{liveProgram("p", OutboundSales)})
	assert.Equal(t, 60, apps[0].MatchScore)
	assert.Equal(t, TierMedium, apps[0].MatchTier)

	eval := evalWith(scoring.DimensionScores{Sales: 0.7, Stress: 0.8}, 100)
	apps = m.Rank(nil, eval, []*Program{liveProgram("p", OutboundSales)})
	assert.Equal(t, 90, apps[0].MatchScore)
	assert.Equal(t, TierStrong, apps[0].MatchTier)
}

func TestRankDoesNotMutateInputs(t *testing.T) {
	m := New(DefaultConfig(), nil)

	profile := &candidate.Profile{Skills: []string{"Zendesk"}}
	eval := evalWith(scoring.DimensionScores{Empathy: 0.9}, 70)
	p := liveProgram("p1", InboundSupport)
	p.MustHaveSkills = []string{"zendesk"}

	before := *p
	a1 := m.Rank(profile, eval, []*Program{p})
	a2 := m.Rank(profile, eval, []*Program{p})

	assert.Equal(t, before, *p)
	assert.Equal(t, []string{"Zendesk"}, profile.Skills)
	require.Len(t, a1, 1)
	assert.Equal(t, a1[0].MatchScore, a2[0].MatchScore)
	assert.Equal(t, a1[0].Breakdown, a2[0].Breakdown)
}

func TestSortByScore(t *testing.T) {
	apps := []*Application{
		{ProgramID: "b", MatchScore: 50},
		{ProgramID: "a", MatchScore: 90},
		{ProgramID: "c", MatchScore: 50},
	}

	SortByScore(apps)

	assert.Equal(t, "a", apps[0].ProgramID)
	assert.Equal(t, "b", apps[1].ProgramID)
	assert.Equal(t, "c", apps[2].ProgramID)
}

func TestDefinitionsCoverAllProgramTypes(t *testing.T) {
	for _, typ := range []ProgramType{InboundSupport, OutboundSales, TechSupport, BackOffice} {
		def, ok := Definitions[typ]
		require.True(t, ok, "missing definition for %s", typ)
		assert.NotEmpty(t, def.Label)
		assert.NotEmpty(t, def.Strengths)
	}
}
