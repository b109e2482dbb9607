package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/evehartley/homebalance/internal/config"
	"github.com/evehartley/homebalance/pkg/core/fairness"
	"github.com/evehartley/homebalance/pkg/core/model"
	"github.com/evehartley/homebalance/pkg/db"
)

// TrendStore defines the database operations needed to view the trend
type TrendStore interface {
	GetFairnessScores(ctx context.Context, householdID string) ([]db.FairnessScoreRecord, error)
}

// GetTrend classifies the household's fairness trajectory from the
// persisted weekly score history
func GetTrend(
	ctx context.Context,
	database TrendStore,
	cfg *config.Config,
	logger *zap.Logger,
) (*model.FairnessTrend, error) {
	records, err := database.GetFairnessScores(ctx, cfg.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch score history: %w", err)
	}
	logger.Debug("Found score history", zap.Int("count", len(records)))

	trend := fairness.Trend(cfg.HouseholdID, convertScoreHistory(records), TrendDelta(cfg))

	logger.Info("Computed trend",
		zap.String("trend", string(trend.Trend)),
		zap.Float64("average_score", trend.AverageScore),
		zap.Int("periods", len(trend.Periods)))

	return &trend, nil
}
