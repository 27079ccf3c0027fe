package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignificantGap(t *testing.T) {
	p := &Profile{
		GapAnalysis: GapAnalysis{
			Gaps: []EmploymentGap{
				{StartDate: "2021-01", Months: 1},
				{StartDate: "2022-05", Months: 6},
				{StartDate: "2023-09", Months: 8},
			},
		},
	}

	gap, ok := p.SignificantGap(2)
	assert.True(t, ok)
	assert.Equal(t, "2022-05", gap.StartDate)

	_, ok = p.SignificantGap(12)
	assert.False(t, ok)
}

func TestSignificantGapNilProfile(t *testing.T) {
	var p *Profile
	_, ok := p.SignificantGap(2)
	assert.False(t, ok)
}
