package fairness

import (
	"math"
	"time"

	"github.com/evehartley/homebalance/pkg/core/model"
)

// Default alert thresholds as a percentage of adjusted load carried by
// the single most-loaded member. Tuned empirically; override via config
// rather than editing these.
const (
	DefaultWarningThreshold  = 55.0
	DefaultCriticalThreshold = 60.0
)

// Thresholds holds the alert cut-offs applied to the maximum adjusted
// member share
type Thresholds struct {
	Warning  float64
	Critical float64
}

// DefaultThresholds returns the built-in 55/60 alert thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		Warning:  DefaultWarningThreshold,
		Critical: DefaultCriticalThreshold,
	}
}

// Score turns a member-load distribution into the household fairness
// score for the given period.
//
// With zero or one member fairness is trivially perfect: score 100,
// gini 0, no alert. With two or more members the Gini-style coefficient
// is the mean absolute pairwise difference of adjusted shares,
// normalized so that a perfectly equal split yields 0 and total
// concentration on one member yields 1 regardless of household size.
//
// The alert level is driven by the single most-loaded member's adjusted
// share, not by the score: the question the alert answers is "is one
// person overloaded", which dispersion alone can mask.
func Score(
	householdID string,
	loads []model.MemberLoad,
	periodStart, periodEnd time.Time,
	thresholds Thresholds,
) model.FairnessScore {
	score := model.FairnessScore{
		HouseholdID: householdID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		MemberLoads: loads,
		AlertLevel:  model.AlertNone,
	}

	if len(loads) <= 1 {
		score.OverallScore = 100
		return score
	}

	gini := giniCoefficient(loads)
	score.GiniCoefficient = gini
	score.OverallScore = int(math.Round(100 * (1 - gini)))

	maxShare := 0.0
	for _, load := range loads {
		if load.AdjustedPercentage > maxShare {
			maxShare = load.AdjustedPercentage
		}
	}
	score.AlertLevel = alertForShare(maxShare, thresholds)

	return score
}

// giniCoefficient computes the normalized mean absolute pairwise
// difference of adjusted shares: sum |p_i - p_j| over all ordered pairs
// divided by 2*(n-1)*sum(p). The (n-1) factor makes "one member does
// everything" come out as exactly 1 for any household size.
func giniCoefficient(loads []model.MemberLoad) float64 {
	n := len(loads)
	if n < 2 {
		return 0
	}

	total := 0.0
	for _, load := range loads {
		total += load.AdjustedPercentage
	}
	if total == 0 {
		return 0
	}

	sumAbsDiff := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sumAbsDiff += math.Abs(loads[i].AdjustedPercentage - loads[j].AdjustedPercentage)
		}
	}

	return sumAbsDiff / (2 * float64(n-1) * total)
}

func alertForShare(maxShare float64, thresholds Thresholds) model.AlertLevel {
	switch {
	case maxShare > thresholds.Critical:
		return model.AlertCritical
	case maxShare >= thresholds.Warning:
		return model.AlertWarning
	default:
		return model.AlertNone
	}
}
