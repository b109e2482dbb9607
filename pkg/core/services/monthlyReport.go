package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/evehartley/homebalance/internal/config"
	"github.com/evehartley/homebalance/pkg/core/fairness"
	"github.com/evehartley/homebalance/pkg/core/model"
	"github.com/evehartley/homebalance/pkg/core/report"
)

// BuildMonthlyReport assembles the monthly roll-up for the month
// containing monthOf and optionally emails it.
//
// The month is split into the weeks whose Monday falls inside it; one
// weekly score bundle is computed per week and handed to the report
// builder, which aggregates without going back to raw tasks. A month
// with no computable weeks surfaces the builder's validation error.
func BuildMonthlyReport(
	ctx context.Context,
	database WeeklyReportStore,
	email EmailSender,
	cfg *config.Config,
	logger *zap.Logger,
	monthOf time.Time,
	sendEmail bool,
) (*model.MonthlyReport, error) {
	monthStart, monthEnd := MonthBounds(monthOf)

	logger.Debug("Starting monthlyReport",
		zap.Time("month_start", monthStart),
		zap.Time("month_end", monthEnd),
		zap.Bool("send_email", sendEmail))

	memberRecords, err := database.GetMembers(ctx, cfg.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	taskRecords, err := database.GetTaskCompletions(ctx, cfg.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task completions: %w", err)
	}

	exclusionRecords, err := database.GetExclusions(ctx, cfg.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exclusions: %w", err)
	}

	members := convertMembers(memberRecords)
	thresholds := Thresholds(cfg)

	var weeklyScores []report.WeeklyScoreData
	weekStart, _ := WeekBounds(monthStart)
	if weekStart.Before(monthStart) {
		weekStart = weekStart.AddDate(0, 0, 7)
	}
	for ; !weekStart.After(monthEnd); weekStart = weekStart.AddDate(0, 0, 7) {
		weekEnd := weekStart.AddDate(0, 0, 6)

		exclusions := convertExclusions(exclusionRecords)
		recurring, err := expandRecurringExclusions(cfg.RecurringExclusions, weekStart, weekEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to expand recurring exclusions: %w", err)
		}
		exclusions = append(exclusions, recurring...)

		tasks := filterTasksInPeriod(taskRecords, weekStart, weekEnd)
		loads := fairness.ComputeMemberLoads(tasks, members, exclusions, weekStart, weekEnd)
		score := fairness.Score(cfg.HouseholdID, loads, weekStart, weekEnd, thresholds)

		weeklyScores = append(weeklyScores, report.WeeklyScoreData{
			PeriodStart: weekStart,
			PeriodEnd:   weekEnd,
			Score:       score,
		})
	}
	logger.Debug("Computed weekly bundles", zap.Int("count", len(weeklyScores)))

	monthly, err := report.BuildMonthly(cfg.HouseholdID, weeklyScores)
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly report: %w", err)
	}

	logger.Info("Built monthly report",
		zap.Float64("average_score", monthly.AverageScore),
		zap.Int("weeks", len(monthly.WeekBreakdowns)),
		zap.Int("total_tasks", monthly.TotalTasks))

	if sendEmail {
		subject := fmt.Sprintf("Household fairness report for %s", monthStart.Format("January 2006"))
		if err := deliverReport(email, cfg, logger, subject, FormatMonthlyEmail(monthly)); err != nil {
			return nil, err
		}
	}

	return &monthly, nil
}

// FormatMonthlyEmail renders a monthly report record as plain email text
func FormatMonthlyEmail(monthly model.MonthlyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Month %s to %s\n\n",
		monthly.PeriodStart.Format("2006-01-02"), monthly.PeriodEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "Average fairness score: %.1f/100 over %d weeks\n",
		monthly.AverageScore, len(monthly.WeekBreakdowns))
	fmt.Fprintf(&b, "Total: %d tasks, weight %d\n\n", monthly.TotalTasks, monthly.TotalWeight)

	fmt.Fprintf(&b, "Members:\n")
	for _, m := range monthly.MemberSummary {
		fmt.Fprintf(&b, "  %-20s %3d tasks  weight %3d  avg share %5.1f%%\n",
			m.UserName, m.TasksCompleted, m.TotalWeight, m.AveragePercentage)
	}

	fmt.Fprintf(&b, "\nWeek by week:\n")
	for _, w := range monthly.WeekBreakdowns {
		fmt.Fprintf(&b, "  %s  score %3d  alert %-8s  %d tasks\n",
			w.PeriodStart.Format("2006-01-02"), w.Score, w.AlertLevel, w.TotalTasks)
	}

	if len(monthly.Observations) > 0 {
		fmt.Fprintf(&b, "\n")
		for _, obs := range monthly.Observations {
			fmt.Fprintf(&b, "- %s\n", obs)
		}
	}

	return b.String()
}
