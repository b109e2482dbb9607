// Package messages maps fairness facts to short natural-language
// observations for reports and notifications. Wording lives in the
// template constants; the selection logic is the contract.
package messages

import (
	"fmt"
	"sort"

	"github.com/evehartley/homebalance/pkg/core/fairness"
	"github.com/evehartley/homebalance/pkg/core/model"
)

// Observation templates. Tweak wording here, not in the logic below.
const (
	tmplWellBalanced   = "Great week - household tasks were shared evenly."
	tmplSlightlyOff    = "Task sharing was a little uneven this week."
	tmplUnbalanced     = "Household load was noticeably unbalanced this week."
	tmplOverloaded     = "%s carried %.0f%% of the household load - time to rebalance."
	tmplTrendImproving = "Fairness has been improving over the last few weeks."
	tmplTrendWorsening = "Fairness has been slipping - compare with earlier weeks."
	tmplMemberHigh     = "%s handled %.0f%% of the adjusted load (%d tasks)."
	tmplMemberIdle     = "%s completed no tasks this period."
)

// Score thresholds for picking an overall observation. These are
// presentation cut-offs, independent of the alert thresholds.
const (
	balancedScore = 85
	unevenScore   = 65
)

// Observations generates the ordered observation list for a report:
// score-based lines first, then trend-based lines. Returns an empty
// slice when nothing is noteworthy.
func Observations(score model.FairnessScore, trend model.FairnessTrend) []string {
	msgs := []string{}

	// Trivial households get no commentary at all
	if len(score.MemberLoads) > 1 {
		switch {
		case score.OverallScore >= balancedScore:
			msgs = append(msgs, tmplWellBalanced)
		case score.OverallScore >= unevenScore:
			msgs = append(msgs, tmplSlightlyOff)
		default:
			msgs = append(msgs, tmplUnbalanced)
		}

		if score.AlertLevel == model.AlertCritical {
			if name, share, ok := mostLoaded(score.MemberLoads); ok {
				msgs = append(msgs, fmt.Sprintf(tmplOverloaded, name, share))
			}
		}
	}

	switch trend.Trend {
	case model.TrendImproving:
		msgs = append(msgs, tmplTrendImproving)
	case model.TrendWorsening:
		msgs = append(msgs, tmplTrendWorsening)
	}

	return msgs
}

// MemberObservations generates one line per noteworthy member, sorted
// by descending adjusted share. Members are noteworthy when their share
// reaches the household's warning threshold or when they carried none
// of the load.
func MemberObservations(loads []model.MemberLoad, thresholds fairness.Thresholds) []string {
	if len(loads) < 2 {
		return []string{}
	}

	sorted := make([]model.MemberLoad, len(loads))
	copy(sorted, loads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AdjustedPercentage > sorted[j].AdjustedPercentage
	})

	msgs := []string{}
	for _, load := range sorted {
		switch {
		case load.TasksCompleted == 0 && load.ExclusionDays == 0:
			msgs = append(msgs, fmt.Sprintf(tmplMemberIdle, load.UserName))
		case load.AdjustedPercentage >= thresholds.Warning:
			msgs = append(msgs, fmt.Sprintf(tmplMemberHigh, load.UserName, load.AdjustedPercentage, load.TasksCompleted))
		}
	}
	return msgs
}

// Monthly observation templates
const (
	tmplMonthBalanced  = "Solid month - fairness averaged %.0f out of 100."
	tmplMonthUneven    = "Fairness averaged %.0f this month - room to rebalance."
	tmplMonthBestWeek  = "Best week started %s with a score of %d."
	tmplMonthWorstWeek = "Toughest week started %s with a score of %d."
)

// MonthlyObservations generates the observation lines for a monthly
// roll-up: an average-score line followed by best/worst week callouts
// when the month had more than one week.
func MonthlyObservations(rpt model.MonthlyReport) []string {
	msgs := []string{}

	if rpt.AverageScore >= balancedScore {
		msgs = append(msgs, fmt.Sprintf(tmplMonthBalanced, rpt.AverageScore))
	} else {
		msgs = append(msgs, fmt.Sprintf(tmplMonthUneven, rpt.AverageScore))
	}

	if len(rpt.WeekBreakdowns) > 1 {
		msgs = append(msgs,
			fmt.Sprintf(tmplMonthBestWeek, rpt.BestWeek.PeriodStart.Format("2006-01-02"), rpt.BestWeek.Score),
			fmt.Sprintf(tmplMonthWorstWeek, rpt.WorstWeek.PeriodStart.Format("2006-01-02"), rpt.WorstWeek.Score))
	}

	return msgs
}

func mostLoaded(loads []model.MemberLoad) (string, float64, bool) {
	name := ""
	share := 0.0
	for _, load := range loads {
		if load.AdjustedPercentage > share {
			share = load.AdjustedPercentage
			name = load.UserName
		}
	}
	return name, share, name != ""
}
