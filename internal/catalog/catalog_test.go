package catalog

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-hq/screener/internal/candidate"
)

// fixedRand always picks the same variant.
type fixedRand struct{ n int }

func (r fixedRand) Intn(int) int     { return r.n }
func (r fixedRand) Float64() float64 { return 0 }

func TestDefaultFlowShape(t *testing.T) {
	c := Default(nil)

	require.Equal(t, 12, c.Len())

	first, ok := c.Slot(0)
	require.True(t, ok)
	assert.Equal(t, "Q1", first.ID)
	assert.Equal(t, PhaseIntro, first.Phase)

	last, ok := c.Slot(11)
	require.True(t, ok)
	assert.Equal(t, "Q12", last.ID)
	assert.Equal(t, PhaseClosing, last.Phase)

	_, ok = c.Slot(12)
	assert.False(t, ok)

	// Every slot except the conditional one must have a bank entry with
	// three variants.
	for i := 0; i < c.Len(); i++ {
		slot, _ := c.Slot(i)
		if slot.Key == keyGapOrTransition {
			continue
		}
		require.Len(t, c.bank[slot.Key], 3, "slot %s", slot.ID)
	}
	require.Len(t, c.bank[keyGapQuestions], 3)
	require.Len(t, c.bank[keyTransition], 3)
}

func TestPickVariantRotation(t *testing.T) {
	c := Default(nil)
	slot, _ := c.Slot(1) // CV_WALKTHROUGH

	q0 := c.Pick(slot, nil, fixedRand{0})
	q2 := c.Pick(slot, nil, fixedRand{2})

	assert.Equal(t, "Q2_V1", q0.ID)
	assert.Equal(t, "Q2_V3", q2.ID)
	assert.Equal(t, KindMaster, q0.Kind)
	assert.Equal(t, 60, q0.ExpectedAnswerSeconds)
}

func TestPickSeededDeterminism(t *testing.T) {
	c := Default(nil)
	slot, _ := c.Slot(1)

	a := c.Pick(slot, nil, rand.New(rand.NewSource(42)))
	b := c.Pick(slot, nil, rand.New(rand.NewSource(42)))

	assert.Equal(t, a, b)
}

func TestPickGapBranch(t *testing.T) {
	c := Default(nil)
	slot, _ := c.Slot(5) // GAP_OR_TRANSITION
	profile := &candidate.Profile{
		GapAnalysis: candidate.GapAnalysis{
			Gaps: []candidate.EmploymentGap{
				{StartDate: "2022-05", EndDate: "2022-11", Months: 6},
			},
		},
	}

	q := c.Pick(slot, profile, fixedRand{0})

	assert.Equal(t, "Q6_GAP_V1", q.ID)
	assert.Contains(t, q.Text, "around 2022-05")
	assert.NotContains(t, q.Text, "[DATE]")
}

func TestPickGapBranchWithoutDate(t *testing.T) {
	c := Default(nil)
	slot, _ := c.Slot(5)
	profile := &candidate.Profile{
		GapAnalysis: candidate.GapAnalysis{
			Gaps: []candidate.EmploymentGap{{Months: 4}},
		},
	}

	q := c.Pick(slot, profile, fixedRand{0})

	assert.Contains(t, q.Text, "in your history")
}

func TestPickTransitionBranch(t *testing.T) {
	c := Default(nil)
	slot, _ := c.Slot(5)

	// Nil profile and short gaps both route to the transition bank.
	q := c.Pick(slot, nil, fixedRand{0})
	assert.Equal(t, "Q6_TRANS_V1", q.ID)

	shortGap := &candidate.Profile{
		GapAnalysis: candidate.GapAnalysis{
			Gaps: []candidate.EmploymentGap{{StartDate: "2023-01", Months: 1}},
		},
	}
	q = c.Pick(slot, shortGap, fixedRand{1})
	assert.Equal(t, "Q6_TRANS_V2", q.ID)
}

func TestPickCompanySubstitution(t *testing.T) {
	c := Default(nil)
	slot, _ := c.Slot(2) // RECENT_ROLE_DETAILS

	q := c.Pick(slot, &candidate.Profile{
		Totals: candidate.Totals{MostRecentCompany: "Acme BPO"},
	}, fixedRand{0})
	assert.Contains(t, q.Text, "Acme BPO")
	assert.NotContains(t, q.Text, "[MOST_RECENT_COMPANY]")

	q = c.Pick(slot, nil, fixedRand{0})
	assert.Contains(t, q.Text, "your most recent company")
}

func TestPickBankMissFallback(t *testing.T) {
	c := Default(nil)
	bogus := Slot{ID: "Q99", Key: "NO_SUCH_KEY", Phase: PhaseCV, AnswerSeconds: 30}

	q := c.Pick(bogus, nil, fixedRand{0})

	assert.Equal(t, "Q99_ERROR", q.ID)
	assert.Equal(t, fallbackText, q.Text)
	assert.Equal(t, 30, q.ExpectedAnswerSeconds)
}

func TestNoUnresolvedTokensOutsideTemplatedBanks(t *testing.T) {
	for key, variants := range defaultBank {
		for _, v := range variants {
			if key == keyGapQuestions || key == keyRecentRole {
				continue
			}
			assert.False(t, strings.Contains(v.Text, "["), "variant %s has a token", v.ID)
		}
	}
}
