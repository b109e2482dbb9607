package fairness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evehartley/homebalance/pkg/core/model"
)

func loadsWithShares(shares ...float64) []model.MemberLoad {
	loads := make([]model.MemberLoad, 0, len(shares))
	for i, share := range shares {
		loads = append(loads, model.MemberLoad{
			UserID:             string(rune('a' + i)),
			Percentage:         share,
			AdjustedPercentage: share,
		})
	}
	return loads
}

func TestScore_NoMembers(t *testing.T) {
	score := Score("h1", nil, weekStart, weekEnd, DefaultThresholds())

	assert.Equal(t, 100, score.OverallScore)
	assert.Equal(t, 0.0, score.GiniCoefficient)
	assert.Equal(t, model.AlertNone, score.AlertLevel)
}

func TestScore_SingleMemberAlwaysPerfect(t *testing.T) {
	score := Score("h1", loadsWithShares(100), weekStart, weekEnd, DefaultThresholds())

	assert.Equal(t, 100, score.OverallScore)
	assert.Equal(t, model.AlertNone, score.AlertLevel)
}

func TestScore_EqualSplitIsPerfect(t *testing.T) {
	score := Score("h1", loadsWithShares(50, 50), weekStart, weekEnd, DefaultThresholds())

	assert.Equal(t, 100, score.OverallScore)
	assert.Equal(t, 0.0, score.GiniCoefficient)
	assert.Equal(t, model.AlertNone, score.AlertLevel)
}

func TestScore_SeventyThirtySplit(t *testing.T) {
	score := Score("h1", loadsWithShares(70, 30), weekStart, weekEnd, DefaultThresholds())

	assert.InDelta(t, 0.4, score.GiniCoefficient, 0.001)
	assert.Equal(t, 60, score.OverallScore)
	assert.Equal(t, model.AlertCritical, score.AlertLevel, "70 is above the critical threshold")
}

func TestScore_TotalConcentration(t *testing.T) {
	for _, shares := range [][]float64{
		{100, 0},
		{100, 0, 0},
		{100, 0, 0, 0},
	} {
		score := Score("h1", loadsWithShares(shares...), weekStart, weekEnd, DefaultThresholds())
		assert.InDelta(t, 1.0, score.GiniCoefficient, 0.001)
		assert.Equal(t, 0, score.OverallScore)
		assert.Equal(t, model.AlertCritical, score.AlertLevel)
	}
}

func TestScore_ZeroTotalLoad(t *testing.T) {
	score := Score("h1", loadsWithShares(0, 0), weekStart, weekEnd, DefaultThresholds())

	assert.Equal(t, 0.0, score.GiniCoefficient)
	assert.Equal(t, 100, score.OverallScore)
	assert.Equal(t, model.AlertNone, score.AlertLevel)
}

func TestScore_AlertThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		maxShare float64
		want     model.AlertLevel
	}{
		{"below warning", 54.9, model.AlertNone},
		{"at warning", 55, model.AlertWarning},
		{"between", 58, model.AlertWarning},
		{"at critical", 60, model.AlertWarning},
		{"above critical", 60.1, model.AlertCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score("h1", loadsWithShares(tt.maxShare, 100-tt.maxShare), weekStart, weekEnd, DefaultThresholds())
			assert.Equal(t, tt.want, score.AlertLevel)
		})
	}
}

func TestScore_AlertUsesAdjustedShare(t *testing.T) {
	// Raw shares are even; the exclusion adjustment pushes one member
	// past critical on its own
	loads := []model.MemberLoad{
		{UserID: "a", Percentage: 50, AdjustedPercentage: 50},
		{UserID: "b", Percentage: 50, AdjustedPercentage: 87.5, ExclusionDays: 3},
	}

	score := Score("h1", loads, weekStart, weekEnd, DefaultThresholds())

	assert.Equal(t, model.AlertCritical, score.AlertLevel)
}

func TestScore_CustomThresholds(t *testing.T) {
	thresholds := Thresholds{Warning: 70, Critical: 80}

	score := Score("h1", loadsWithShares(75, 25), weekStart, weekEnd, thresholds)
	assert.Equal(t, model.AlertWarning, score.AlertLevel)

	score = Score("h1", loadsWithShares(85, 15), weekStart, weekEnd, thresholds)
	assert.Equal(t, model.AlertCritical, score.AlertLevel)
}

func TestScore_ShiftingLoadTowardHighMemberNeverImprovesScore(t *testing.T) {
	// Hold total fixed, move weight from the low member to the high one
	previous := 101
	for high := 50.0; high <= 100; high += 5 {
		score := Score("h1", loadsWithShares(high, 100-high), weekStart, weekEnd, DefaultThresholds())
		assert.LessOrEqual(t, score.OverallScore, previous,
			"score must not increase as load concentrates")
		previous = score.OverallScore
	}
}

func TestScore_Deterministic(t *testing.T) {
	loads := loadsWithShares(40, 35, 25)

	first := Score("h1", loads, weekStart, weekEnd, DefaultThresholds())
	second := Score("h1", loads, weekStart, weekEnd, DefaultThresholds())

	assert.Equal(t, first, second)
}
