package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evehartley/homebalance/internal/config"
	"github.com/evehartley/homebalance/pkg/core/fairness"
	"github.com/evehartley/homebalance/pkg/core/model"
	"github.com/evehartley/homebalance/pkg/db"
)

// ComputeScoreStore defines the database operations needed to compute
// a fairness score
type ComputeScoreStore interface {
	GetMembers(ctx context.Context, householdID string) ([]db.Member, error)
	GetTaskCompletions(ctx context.Context, householdID string) ([]db.TaskCompletion, error)
	GetExclusions(ctx context.Context, householdID string) ([]db.Exclusion, error)
	InsertFairnessScore(ctx context.Context, record db.FairnessScoreRecord) error
}

// ComputeScoreResult contains the score and category breakdown for one period
type ComputeScoreResult struct {
	Score      model.FairnessScore
	Categories []model.CategoryFairness
	TaskCount  int
}

// ComputeScore runs the fairness pipeline for one period: fetch the
// roster, completions and exclusions, expand recurring exclusion rules,
// aggregate loads, and score the distribution.
// If persist is true the resulting score is stored for later trend and
// monthly lookups.
func ComputeScore(
	ctx context.Context,
	database ComputeScoreStore,
	cfg *config.Config,
	logger *zap.Logger,
	periodStart, periodEnd time.Time,
	persist bool,
) (*ComputeScoreResult, error) {
	if err := validatePeriod(periodStart, periodEnd); err != nil {
		return nil, fmt.Errorf("invalid period: %w", err)
	}

	logger.Debug("Starting computeScore",
		zap.String("household_id", cfg.HouseholdID),
		zap.Time("period_start", periodStart),
		zap.Time("period_end", periodEnd),
		zap.Bool("persist", persist))

	memberRecords, err := database.GetMembers(ctx, cfg.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	logger.Debug("Found members", zap.Int("count", len(memberRecords)))

	taskRecords, err := database.GetTaskCompletions(ctx, cfg.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task completions: %w", err)
	}

	exclusionRecords, err := database.GetExclusions(ctx, cfg.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exclusions: %w", err)
	}

	members := convertMembers(memberRecords)
	tasks := filterTasksInPeriod(taskRecords, periodStart, periodEnd)
	logger.Debug("Tasks in period", zap.Int("count", len(tasks)))

	exclusions := convertExclusions(exclusionRecords)
	recurring, err := expandRecurringExclusions(cfg.RecurringExclusions, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to expand recurring exclusions: %w", err)
	}
	exclusions = append(exclusions, recurring...)
	logger.Debug("Exclusions in scope",
		zap.Int("stored", len(exclusionRecords)),
		zap.Int("recurring", len(recurring)))

	loads := fairness.ComputeMemberLoads(tasks, members, exclusions, periodStart, periodEnd)
	score := fairness.Score(cfg.HouseholdID, loads, periodStart, periodEnd, Thresholds(cfg))

	logger.Info("Computed fairness score",
		zap.Int("score", score.OverallScore),
		zap.Float64("gini", score.GiniCoefficient),
		zap.String("alert_level", string(score.AlertLevel)))

	if persist {
		record := db.FairnessScoreRecord{
			ID:          uuid.NewString(),
			HouseholdID: cfg.HouseholdID,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Score:       score.OverallScore,
			Gini:        score.GiniCoefficient,
			AlertLevel:  string(score.AlertLevel),
		}
		if err := database.InsertFairnessScore(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to persist fairness score: %w", err)
		}
		logger.Debug("Persisted fairness score", zap.String("id", record.ID))
	}

	return &ComputeScoreResult{
		Score:      score,
		Categories: fairness.CategoryBreakdown(tasks, members),
		TaskCount:  len(tasks),
	}, nil
}

// Thresholds resolves the alert thresholds from config, falling back to
// the built-in 55/60 defaults
func Thresholds(cfg *config.Config) fairness.Thresholds {
	thresholds := fairness.DefaultThresholds()
	if cfg.WarningThreshold > 0 {
		thresholds.Warning = cfg.WarningThreshold
	}
	if cfg.CriticalThreshold > 0 {
		thresholds.Critical = cfg.CriticalThreshold
	}
	return thresholds
}

// TrendDelta resolves the trend classification delta from config
func TrendDelta(cfg *config.Config) float64 {
	if cfg.TrendDelta > 0 {
		return cfg.TrendDelta
	}
	return fairness.DefaultTrendDelta
}
