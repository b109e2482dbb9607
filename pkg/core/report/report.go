// Package report composes engine output into weekly and monthly report
// records. Reports are plain data; email text, push bodies and PDFs are
// rendered by downstream formatters.
package report

import (
	"errors"
	"sort"
	"time"

	"github.com/evehartley/homebalance/pkg/core/fairness"
	"github.com/evehartley/homebalance/pkg/core/messages"
	"github.com/evehartley/homebalance/pkg/core/model"
)

// ErrNoWeeklyScores is returned when a monthly report is requested
// without any weekly score bundles to aggregate.
var ErrNoWeeklyScores = errors.New("weeklyScores required for monthly report")

// WeeklyScoreData is one already-computed weekly score bundle, the
// input unit for monthly aggregation.
type WeeklyScoreData struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Score       model.FairnessScore
}

// WeeklyInput carries everything needed to build one weekly report
type WeeklyInput struct {
	HouseholdID string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Tasks       []model.TaskCompletion
	Members     []model.Member
	Exclusions  []model.MemberExclusion
	// Historical scores for trend context; the current period's score
	// is appended automatically.
	Historical []model.PeriodScore
	Thresholds fairness.Thresholds
	TrendDelta float64
}

// BuildWeekly runs the full fairness pipeline for one period and
// assembles the result into a weekly report record.
//
// Degenerate inputs (no tasks, single member, no history) produce a
// well-formed report with neutral values, never an error.
func BuildWeekly(in WeeklyInput) model.WeeklyReport {
	loads := fairness.ComputeMemberLoads(in.Tasks, in.Members, in.Exclusions, in.PeriodStart, in.PeriodEnd)
	score := fairness.Score(in.HouseholdID, loads, in.PeriodStart, in.PeriodEnd, in.Thresholds)

	series := make([]model.PeriodScore, 0, len(in.Historical)+1)
	series = append(series, in.Historical...)
	series = append(series, model.PeriodScore{
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		Score:       score.OverallScore,
		Gini:        score.GiniCoefficient,
	})
	trend := fairness.Trend(in.HouseholdID, series, in.TrendDelta)

	observations := messages.Observations(score, trend)
	observations = append(observations, messages.MemberObservations(loads, in.Thresholds)...)

	return model.WeeklyReport{
		HouseholdID:  in.HouseholdID,
		PeriodStart:  in.PeriodStart,
		PeriodEnd:    in.PeriodEnd,
		Score:        score,
		Trend:        trend,
		Categories:   fairness.CategoryBreakdown(in.Tasks, in.Members),
		Observations: observations,
	}
}

// BuildMonthly aggregates already-computed weekly score bundles into a
// monthly report. It reports totals, per-member roll-ups and a
// week-by-week breakdown; it never recomputes loads from raw tasks.
//
// An empty weeklyScores slice is the one caller-visible validation
// error in the engine.
func BuildMonthly(householdID string, weeklyScores []WeeklyScoreData) (model.MonthlyReport, error) {
	if len(weeklyScores) == 0 {
		return model.MonthlyReport{}, ErrNoWeeklyScores
	}

	weeks := make([]WeeklyScoreData, len(weeklyScores))
	copy(weeks, weeklyScores)
	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].PeriodStart.Before(weeks[j].PeriodStart)
	})

	rpt := model.MonthlyReport{
		HouseholdID: householdID,
		PeriodStart: weeks[0].PeriodStart,
		PeriodEnd:   weeks[len(weeks)-1].PeriodEnd,
	}

	type memberTotals struct {
		name      string
		tasks     int
		weight    int
		pctSum    float64
		weekCount int
	}
	totalsByID := make(map[string]*memberTotals)
	var memberOrder []string

	scoreSum := 0
	for _, week := range weeks {
		scoreSum += week.Score.OverallScore

		weekTasks := 0
		for _, load := range week.Score.MemberLoads {
			weekTasks += load.TasksCompleted
			rpt.TotalWeight += load.TotalWeight

			totals, ok := totalsByID[load.UserID]
			if !ok {
				totals = &memberTotals{name: load.UserName}
				totalsByID[load.UserID] = totals
				memberOrder = append(memberOrder, load.UserID)
			}
			totals.tasks += load.TasksCompleted
			totals.weight += load.TotalWeight
			totals.pctSum += load.Percentage
			totals.weekCount++
		}
		rpt.TotalTasks += weekTasks

		breakdown := model.WeekBreakdown{
			PeriodStart: week.PeriodStart,
			PeriodEnd:   week.PeriodEnd,
			Score:       week.Score.OverallScore,
			AlertLevel:  week.Score.AlertLevel,
			TotalTasks:  weekTasks,
		}
		rpt.WeekBreakdowns = append(rpt.WeekBreakdowns, breakdown)

		// Most recent week wins ties
		if len(rpt.WeekBreakdowns) == 1 || breakdown.Score >= rpt.BestWeek.Score {
			rpt.BestWeek = breakdown
		}
		if len(rpt.WeekBreakdowns) == 1 || breakdown.Score <= rpt.WorstWeek.Score {
			rpt.WorstWeek = breakdown
		}
	}

	rpt.AverageScore = float64(scoreSum) / float64(len(weeks))

	for _, id := range memberOrder {
		totals := totalsByID[id]
		rpt.MemberSummary = append(rpt.MemberSummary, model.MemberSummary{
			UserID:            id,
			UserName:          totals.name,
			TasksCompleted:    totals.tasks,
			TotalWeight:       totals.weight,
			AveragePercentage: totals.pctSum / float64(totals.weekCount),
		})
	}
	sort.SliceStable(rpt.MemberSummary, func(i, j int) bool {
		return rpt.MemberSummary[i].TotalWeight > rpt.MemberSummary[j].TotalWeight
	})

	rpt.Observations = messages.MonthlyObservations(rpt)

	return rpt, nil
}
