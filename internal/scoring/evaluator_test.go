package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-hq/screener/internal/interview"
)

// richTurns is a full interview with substantive answers hitting every
// competency signal the scorer looks for.
func richTurns() []Turn {
	answers := map[string]string{
		"Q1_V1":  "Sure, I am ready to begin.",
		"Q2_V1":  "I started in retail, because I enjoyed helping people, then moved into a call center where I supported billing customers for three years.",
		"Q3_V1":  "My day involved answering around forty inbound calls, because we owned the billing queue, and I also handled escalations, refunds, chat messages and account updates.",
		"Q4_V1":  "I spoke with customers constantly, mostly over the phone but also through chat and email, and I would say ninety percent of my day was customer facing.",
		"Q5_V1":  "I used a CRM daily to check and verify customer accounts.",
		"Q6_V1":  "I am looking for a role with more stability and growth, because my previous contract ended and I want to build a longer career in customer support.",
		"Q7_V1":  "First, I would apologize for the trouble and walk them through restarting the router.",
		"Q8_V1":  "I would stay calm, listen carefully, and tell them I am sorry about the charge.",
		"Q9_V1":  "I would explain our policy politely and offer the closest alternative I can.",
		"Q10_V1": "I stayed calm during our busiest season and worked through the queue one ticket after another.",
		"Q11_V1": "I set two alarms and plan my commute the night before every shift.",
		"Q12_V1": "I want to improve my upselling skills, since selling add-ons never came naturally to me.",
	}
	order := []string{"Q1_V1", "Q2_V1", "Q3_V1", "Q4_V1", "Q5_V1", "Q6_V1", "Q7_V1", "Q8_V1", "Q9_V1", "Q10_V1", "Q11_V1", "Q12_V1"}

	turns := make([]Turn, 0, len(order))
	for _, id := range order {
		turns = append(turns, Turn{Question: interview.Question{ID: id}, Answer: answers[id]})
	}
	return turns
}

func TestNewEvaluatorRejectsBadWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Communication = 0.5

	_, err := NewEvaluator(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights must sum to 1.0")
}

func TestEvaluateRichSession(t *testing.T) {
	e, err := NewEvaluator(DefaultConfig(), nil)
	require.NoError(t, err)

	ev := e.Evaluate(Session{Turns: richTurns()})

	assert.InDelta(t, 0.4, ev.Scores.Communication, 1e-9)
	assert.InDelta(t, 0.4, ev.Scores.Empathy, 1e-9)
	assert.InDelta(t, 0.2, ev.Scores.Deescalation, 1e-9)
	assert.InDelta(t, 0.6, ev.Scores.Process, 1e-9)
	assert.InDelta(t, 0.75, ev.Scores.Stress, 1e-9)
	assert.InDelta(t, 0.25, ev.Scores.Reliability, 1e-9)
	assert.InDelta(t, 0.6, ev.Scores.Sales, 1e-9)
	assert.InDelta(t, 0.3, ev.Scores.Coachability, 1e-9)
	assert.InDelta(t, 0.85, ev.Scores.Coherence, 1e-9)

	assert.Equal(t, 48, ev.OverallScore)
	assert.InDelta(t, 0.9, ev.CVAlignment, 1e-9)
	assert.InDelta(t, 0.85, ev.Confidence, 1e-9)
	assert.Len(t, ev.QuestionScores, 12)

	assert.ElementsMatch(t, []string{RiskCommunication, RiskReliability}, ev.RiskFlags)
	assert.Equal(t, NotRecommendedYet, ev.Recommendation)
}

func TestEvaluateEmptySessionUsesFloorsAndBaselines(t *testing.T) {
	e, err := NewEvaluator(DefaultConfig(), nil)
	require.NoError(t, err)

	ev := e.Evaluate(Session{})

	assert.InDelta(t, 0.2, ev.Scores.Communication, 1e-9)
	assert.InDelta(t, 0.55, ev.Scores.Stress, 1e-9)
	assert.InDelta(t, 0.4, ev.Scores.Sales, 1e-9)
	assert.InDelta(t, 0.85, ev.Scores.Coherence, 1e-9)
	assert.Equal(t, 31, ev.OverallScore)
	assert.InDelta(t, 0.55, ev.CVAlignment, 1e-9)
	assert.InDelta(t, 0.6, ev.Confidence, 1e-9)
	assert.Len(t, ev.RiskFlags, 3)
	assert.Equal(t, NotRecommendedYet, ev.Recommendation)
}

func TestHireReadyRequiresScoreAndNoFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HireReadyScore = 40
	cfg.InterviewScore = 30
	cfg.Cutoffs = RiskCutoffs{Communication: 0.2, Process: 0.2, Reliability: 0.2}

	e, err := NewEvaluator(cfg, nil)
	require.NoError(t, err)

	ev := e.Evaluate(Session{Turns: richTurns()})
	require.Empty(t, ev.RiskFlags)
	assert.Equal(t, HireReady, ev.Recommendation)

	// The same score with one flag drops to the interview band.
	cfg.Cutoffs.Reliability = 0.3
	e, err = NewEvaluator(cfg, nil)
	require.NoError(t, err)

	ev = e.Evaluate(Session{Turns: richTurns()})
	require.Equal(t, []string{RiskReliability}, ev.RiskFlags)
	assert.Equal(t, InterviewRecommended, ev.Recommendation)
}

func TestEvaluateSessionMetricsDriveCoherence(t *testing.T) {
	e, err := NewEvaluator(DefaultConfig(), nil)
	require.NoError(t, err)

	ev := e.Evaluate(Session{
		Turns:   richTurns(),
		Metrics: &AudioMetrics{PauseRatio: 0.5, FillerRate: 0.25},
	})

	assert.InDelta(t, 0.4, ev.Scores.Coherence, 1e-9)
}

func TestRoleFitGeneralSupportGrowthAdvice(t *testing.T) {
	e, err := NewEvaluator(DefaultConfig(), nil)
	require.NoError(t, err)

	ev := e.Evaluate(Session{Turns: richTurns()})

	assert.Equal(t, "General Support", ev.CandidateFeedback.RoleFit.PrimaryFit)
	assert.Contains(t, ev.CandidateFeedback.RoleFit.GrowthSummary, "STAR method")
}

func TestEmployerSummaryListsTopStrengths(t *testing.T) {
	e, err := NewEvaluator(DefaultConfig(), nil)
	require.NoError(t, err)

	ev := e.Evaluate(Session{Turns: richTurns()})

	require.Len(t, ev.EmployerSummary.Strengths, 3)
	// Coherence 0.85 and stress 0.75 dominate this session.
	assert.Equal(t, "Coherent delivery", ev.EmployerSummary.Strengths[0])
	assert.Equal(t, "Composure under pressure", ev.EmployerSummary.Strengths[1])
	assert.NotEmpty(t, ev.EmployerSummary.RecommendedFollowups)
}
