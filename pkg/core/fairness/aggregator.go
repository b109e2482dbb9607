package fairness

import (
	"time"

	"github.com/evehartley/homebalance/pkg/core/model"
)

// ComputeMemberLoads converts task completions into the per-member load
// table for [periodStart, periodEnd].
//
// Every roster member gets an entry, including members with zero
// completions, so the scorer can detect "did literally nothing". Tasks
// whose UserID does not match a roster member are skipped rather than
// treated as an error; stale task references are common after a member
// leaves the household.
//
// AdjustedPercentage scales a partially-available member's share up by
// periodDays/activeDays. Members with no exclusion, or excluded for the
// whole period, keep their raw percentage unchanged.
func ComputeMemberLoads(
	tasks []model.TaskCompletion,
	members []model.Member,
	exclusions []model.MemberExclusion,
	periodStart, periodEnd time.Time,
) []model.MemberLoad {
	loads := make([]model.MemberLoad, 0, len(members))
	indexByID := make(map[string]int, len(members))

	for _, m := range members {
		indexByID[m.ID] = len(loads)
		loads = append(loads, model.MemberLoad{
			UserID:   m.ID,
			UserName: m.Name,
		})
	}

	totalWeight := 0
	for _, task := range tasks {
		idx, ok := indexByID[task.UserID]
		if !ok {
			continue
		}
		loads[idx].TasksCompleted++
		loads[idx].TotalWeight += task.Weight
		totalWeight += task.Weight
	}

	exclusionsByMember := make(map[string][]model.MemberExclusion)
	for _, ex := range exclusions {
		exclusionsByMember[ex.UserID] = append(exclusionsByMember[ex.UserID], ex)
	}

	periodDays := PeriodDays(periodStart, periodEnd)

	for i := range loads {
		if totalWeight > 0 {
			loads[i].Percentage = float64(loads[i].TotalWeight) / float64(totalWeight) * 100
		}

		loads[i].ExclusionDays = ExcludedDays(exclusionsByMember[loads[i].UserID], periodStart, periodEnd)

		activeDays := periodDays - loads[i].ExclusionDays
		if activeDays > 0 && activeDays < periodDays {
			loads[i].AdjustedPercentage = loads[i].Percentage * float64(periodDays) / float64(activeDays)
		} else {
			// No exclusion, or excluded the whole period: leave the share as measured
			loads[i].AdjustedPercentage = loads[i].Percentage
		}
	}

	return loads
}
