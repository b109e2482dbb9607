package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evehartley/homebalance/internal/config"
	"github.com/evehartley/homebalance/pkg/core/model"
	"github.com/evehartley/homebalance/pkg/core/report"
	"github.com/evehartley/homebalance/pkg/db"
)

// WeeklyReportStore defines the database operations needed to build a
// weekly report
type WeeklyReportStore interface {
	ComputeScoreStore
	GetFairnessScores(ctx context.Context, householdID string) ([]db.FairnessScoreRecord, error)
}

// EmailSender delivers rendered report text
type EmailSender interface {
	SendEmail(to, subject, body string) error
}

// BuildWeeklyReport assembles the weekly fairness report for the week
// containing weekOf, persists the week's score, and optionally emails
// the rendered report to the configured recipients.
func BuildWeeklyReport(
	ctx context.Context,
	database WeeklyReportStore,
	email EmailSender,
	cfg *config.Config,
	logger *zap.Logger,
	weekOf time.Time,
	sendEmail bool,
) (*model.WeeklyReport, error) {
	periodStart, periodEnd := WeekBounds(weekOf)

	logger.Debug("Starting weeklyReport",
		zap.Time("period_start", periodStart),
		zap.Time("period_end", periodEnd),
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

	scoreRecords, err := database.GetFairnessScores(ctx, cfg.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch score history: %w", err)
	}

	exclusions := convertExclusions(exclusionRecords)
	recurring, err := expandRecurringExclusions(cfg.RecurringExclusions, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to expand recurring exclusions: %w", err)
	}
	exclusions = append(exclusions, recurring...)

	// Drop any already-persisted score for this same week so the trend
	// series does not contain the current period twice
	historical := make([]model.PeriodScore, 0, len(scoreRecords))
	for _, p := range convertScoreHistory(scoreRecords) {
		if p.PeriodStart.Equal(periodStart) {
			continue
		}
		historical = append(historical, p)
	}

	weekly := report.BuildWeekly(report.WeeklyInput{
		HouseholdID: cfg.HouseholdID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Tasks:       filterTasksInPeriod(taskRecords, periodStart, periodEnd),
		Members:     convertMembers(memberRecords),
		Exclusions:  exclusions,
		Historical:  historical,
		Thresholds:  Thresholds(cfg),
		TrendDelta:  TrendDelta(cfg),
	})

	logger.Info("Built weekly report",
		zap.Int("score", weekly.Score.OverallScore),
		zap.String("alert_level", string(weekly.Score.AlertLevel)),
		zap.String("trend", string(weekly.Trend.Trend)),
		zap.Int("categories", len(weekly.Categories)))

	record := db.FairnessScoreRecord{
		ID:          uuid.NewString(),
		HouseholdID: cfg.HouseholdID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Score:       weekly.Score.OverallScore,
		Gini:        weekly.Score.GiniCoefficient,
		AlertLevel:  string(weekly.Score.AlertLevel),
	}
	if err := database.InsertFairnessScore(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist weekly score: %w", err)
	}

	if sendEmail {
		if err := deliverReport(email, cfg, logger, weeklyEmailSubject(weekly), FormatWeeklyEmail(weekly)); err != nil {
			return nil, err
		}
	}

	return &weekly, nil
}

func deliverReport(email EmailSender, cfg *config.Config, logger *zap.Logger, subject, body string) error {
	if email == nil {
		return fmt.Errorf("email delivery requested but no email client configured")
	}
	if len(cfg.ReportRecipients) == 0 {
		return fmt.Errorf("email delivery requested but no reportRecipients configured")
	}

	for _, recipient := range cfg.ReportRecipients {
		if err := email.SendEmail(recipient, subject, body); err != nil {
			return fmt.Errorf("failed to send report to %s: %w", recipient, err)
		}
		logger.Info("Sent report email", zap.String("to", recipient))
	}
	return nil
}

func weeklyEmailSubject(weekly model.WeeklyReport) string {
	return fmt.Sprintf("Household fairness report for week of %s", weekly.PeriodStart.Format("Jan 2"))
}

// FormatWeeklyEmail renders a weekly report record as plain email text
func FormatWeeklyEmail(weekly model.WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Week %s to %s\n\n",
		weekly.PeriodStart.Format("2006-01-02"), weekly.PeriodEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "Fairness score: %d/100 (alert: %s)\n\n",
		weekly.Score.OverallScore, weekly.Score.AlertLevel)

	fmt.Fprintf(&b, "Member loads:\n")
	for _, load := range weekly.Score.MemberLoads {
		fmt.Fprintf(&b, "  %-20s %3d tasks  weight %3d  share %5.1f%%  adjusted %5.1f%%\n",
			load.UserName, load.TasksCompleted, load.TotalWeight, load.Percentage, load.AdjustedPercentage)
	}

	if len(weekly.Categories) > 0 {
		fmt.Fprintf(&b, "\nBy category:\n")
		for _, cat := range weekly.Categories {
			fmt.Fprintf(&b, "  %-15s score %3d  (%d tasks)\n", cat.Category, cat.FairnessScore, cat.TotalTasks)
		}
	}

	if len(weekly.Observations) > 0 {
		fmt.Fprintf(&b, "\n")
		for _, obs := range weekly.Observations {
			fmt.Fprintf(&b, "- %s\n", obs)
		}
	}

	return b.String()
}
