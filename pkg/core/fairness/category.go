package fairness

import (
	"math"
	"sort"

	"github.com/evehartley/homebalance/pkg/core/model"
)

// CategoryBreakdown scores each task category independently to surface
// localized imbalances, e.g. every "social" task landing on one member
// even when overall load is balanced.
//
// Category splits are task-count based rather than weight based; the
// breakdown answers "who does the laundry", not "how heavy was it".
// Every roster member appears in a category's contributions, but
// categories with zero tasks are omitted entirely. Output is sorted by
// category name so identical inputs produce identical output.
func CategoryBreakdown(tasks []model.TaskCompletion, members []model.Member) []model.CategoryFairness {
	tasksByCategory := make(map[string][]model.TaskCompletion)
	for _, task := range tasks {
		tasksByCategory[task.Category] = append(tasksByCategory[task.Category], task)
	}

	categories := make([]string, 0, len(tasksByCategory))
	for category := range tasksByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	result := make([]model.CategoryFairness, 0, len(categories))
	for _, category := range categories {
		cf := scoreCategory(category, tasksByCategory[category], members)
		if cf.TotalTasks == 0 {
			continue
		}
		result = append(result, cf)
	}
	return result
}

func scoreCategory(category string, tasks []model.TaskCompletion, members []model.Member) model.CategoryFairness {
	countByMember := make(map[string]int, len(members))
	totalTasks := 0
	for _, task := range tasks {
		if _, known := memberIndex(members, task.UserID); !known {
			continue
		}
		countByMember[task.UserID]++
		totalTasks++
	}

	contributions := make([]model.CategoryContribution, 0, len(members))
	shares := make([]model.MemberLoad, 0, len(members))
	for _, m := range members {
		count := countByMember[m.ID]
		percentage := 0.0
		if totalTasks > 0 {
			percentage = float64(count) / float64(totalTasks) * 100
		}
		contributions = append(contributions, model.CategoryContribution{
			UserID:     m.ID,
			UserName:   m.Name,
			TaskCount:  count,
			Percentage: percentage,
		})
		shares = append(shares, model.MemberLoad{AdjustedPercentage: percentage})
	}

	fairnessScore := 100
	if len(members) > 1 {
		fairnessScore = int(math.Round(100 * (1 - giniCoefficient(shares))))
	}

	return model.CategoryFairness{
		Category:            category,
		FairnessScore:       fairnessScore,
		TotalTasks:          totalTasks,
		MemberContributions: contributions,
	}
}

func memberIndex(members []model.Member, id string) (int, bool) {
	for i, m := range members {
		if m.ID == id {
			return i, true
		}
	}
	return 0, false
}
