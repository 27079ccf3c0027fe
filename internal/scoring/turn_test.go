package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-hq/screener/internal/interview"
)

func q(id string) interview.Question {
	return interview.Question{ID: id, Text: "question text"}
}

func TestScoreTurnEmpathyAndDeescalation(t *testing.T) {
	s := ScoreTurn(q("Q8_V2"), "I would stay calm, listen carefully, and tell them I am sorry about the charge.", nil)

	require.NotNil(t, s.Dimensions.Empathy)
	require.NotNil(t, s.Dimensions.Deescalation)
	assert.InDelta(t, 0.2, *s.Dimensions.Empathy, 1e-9)
	assert.InDelta(t, 0.2, *s.Dimensions.Deescalation, 1e-9)
	assert.NotEmpty(t, s.PositiveQuotes)
	assert.InDelta(t, 0.85, s.Confidence, 1e-9)
}

func TestScoreTurnCommunicationNeedsElaboration(t *testing.T) {
	long := "I started in retail, then moved into a call center where I supported billing customers for three years and handled many different kinds of escalations."
	s := ScoreTurn(q("Q2_V1"), long, nil)
	require.NotNil(t, s.Dimensions.Communication)
	assert.InDelta(t, 0.1, *s.Dimensions.Communication, 1e-9)

	s = ScoreTurn(q("Q2_V1"), "I worked in retail and support jobs mostly.", nil)
	assert.Nil(t, s.Dimensions.Communication)
}

func TestScoreTurnBriefAnswerConcern(t *testing.T) {
	s := ScoreTurn(q("Q10_V1"), "Not really.", nil)

	assert.Equal(t, []string{"Not really."}, s.ConcernQuotes)
	assert.Contains(t, s.Notes, "answer unusually brief")
}

func TestScoreTurnIntroCarriesNoSignal(t *testing.T) {
	s := ScoreTurn(q("Q1_V3"), "Sure, I am ready to begin whenever you are, thank you for having me today, this is exciting and I appreciate it.", nil)

	assert.Equal(t, Partial{}, s.Dimensions)
}

func TestScoreTurnPlaceholderFallsBackToMetrics(t *testing.T) {
	m := &AudioMetrics{SpeakingRateWPM: 140, PauseRatio: 0.25, FillerRate: 0.125}
	s := ScoreTurn(q("Q4_V1"), interview.PlaceholderAnswer, m)

	assert.InDelta(t, 0.5, s.Confidence, 1e-9)
	require.NotNil(t, s.Dimensions.Coherence)
	assert.InDelta(t, 0.7, *s.Dimensions.Coherence, 1e-9)
	require.NotNil(t, s.Dimensions.Communication)
	assert.InDelta(t, 0.05, *s.Dimensions.Communication, 1e-9)
}

func TestScoreTurnExtremeSpeakingRatePenalized(t *testing.T) {
	m := &AudioMetrics{SpeakingRateWPM: 210}
	s := ScoreTurn(q("Q11_V1"), "I set two alarms and plan my commute the night before every shift.", m)

	require.NotNil(t, s.Dimensions.Communication)
	assert.InDelta(t, -0.05, *s.Dimensions.Communication, 1e-9)
	assert.Contains(t, s.Notes, "speaking rate outside the comfortable range")
}

func TestSlotOfHandlesVariantAndFollowupIDs(t *testing.T) {
	assert.Equal(t, "Q8", slotOf("Q8_V2"))
	assert.Equal(t, "Q8", slotOf("Q8_V2_FU"))
	assert.Equal(t, "Q8", slotOf("Q8"))
}
