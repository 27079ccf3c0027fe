package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidScores() DimensionScores {
	return DimensionScores{
		Communication: 0.8,
		Coherence:     0.8,
		Empathy:       0.8,
		Deescalation:  0.8,
		Process:       0.8,
		Stress:        0.8,
		Reliability:   0.8,
		Sales:         0.8,
		Coachability:  0.8,
	}
}

func TestSynthesizeOffersNoneForSolidCandidate(t *testing.T) {
	offers := SynthesizeOffers(DefaultConfig(), solidScores(), 0.9, 80, nil)
	assert.Empty(t, offers)
}

func TestSynthesizeOffersCommunicationCoaching(t *testing.T) {
	s := solidScores()
	s.Empathy = 0.5

	offers := SynthesizeOffers(DefaultConfig(), s, 0.9, 80, nil)
	require.Len(t, offers, 1)
	assert.Equal(t, OfferCommunicationCoaching, offers[0].Type)
	assert.Equal(t, "high", offers[0].Priority)
}

func TestSynthesizeOffersInterviewPrepBand(t *testing.T) {
	s := solidScores()
	s.Communication = 0.7

	// Inside the band just below hire ready.
	offers := SynthesizeOffers(DefaultConfig(), s, 0.9, 70, nil)
	require.Len(t, offers, 1)
	assert.Equal(t, OfferInterviewPrep, offers[0].Type)

	// At hire ready the offer disappears.
	offers = SynthesizeOffers(DefaultConfig(), s, 0.9, 75, nil)
	assert.Empty(t, offers)
}

func TestSynthesizeOffersCVRewrite(t *testing.T) {
	offers := SynthesizeOffers(DefaultConfig(), solidScores(), 0.5, 80, nil)
	require.Len(t, offers, 1)
	assert.Equal(t, OfferCVRewrite, offers[0].Type)

	// Low overall with strong process also reads as a CV problem.
	offers = SynthesizeOffers(DefaultConfig(), solidScores(), 0.9, 50, nil)
	require.Len(t, offers, 1)
	assert.Equal(t, OfferCVRewrite, offers[0].Type)
}

func TestSynthesizeOffersJobReadiness(t *testing.T) {
	offers := SynthesizeOffers(DefaultConfig(), solidScores(), 0.9, 80, []string{RiskReliability})
	require.Len(t, offers, 1)
	assert.Equal(t, OfferJobReadiness, offers[0].Type)

	s := solidScores()
	s.Stress = 0.5
	offers = SynthesizeOffers(DefaultConfig(), s, 0.9, 80, nil)
	require.Len(t, offers, 1)
	assert.Equal(t, OfferJobReadiness, offers[0].Type)
}

func TestSynthesizeOffersCappedAtTwoInPriorityOrder(t *testing.T) {
	s := solidScores()
	s.Empathy = 0.4
	s.Communication = 0.4
	s.Stress = 0.4

	offers := SynthesizeOffers(DefaultConfig(), s, 0.4, 50, []string{RiskReliability})

	require.Len(t, offers, 2)
	assert.Equal(t, OfferCommunicationCoaching, offers[0].Type)
	assert.Equal(t, OfferCVRewrite, offers[1].Type)
}
