package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evehartley/homebalance/internal/config"
	"github.com/evehartley/homebalance/pkg/db"
)

// AddExclusionStore defines the database operations needed to record an
// exclusion
type AddExclusionStore interface {
	GetMembers(ctx context.Context, householdID string) ([]db.Member, error)
	InsertExclusion(ctx context.Context, exclusion db.Exclusion) error
}

// AddExclusion records a one-off unavailability interval for a member
// after validating the date range and membership
func AddExclusion(
	ctx context.Context,
	database AddExclusionStore,
	cfg *config.Config,
	logger *zap.Logger,
	userID string,
	startDate, endDate time.Time,
	reason string,
) (*db.Exclusion, error) {
	if err := validatePeriod(startDate, endDate); err != nil {
		return nil, fmt.Errorf("invalid exclusion range: %w", err)
	}

	members, err := database.GetMembers(ctx, cfg.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	known := false
	for _, m := range members {
		if m.ID == userID {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("member %s not found in household %s", userID, cfg.HouseholdID)
	}

	exclusion := db.Exclusion{
		ID:          uuid.NewString(),
		HouseholdID: cfg.HouseholdID,
		UserID:      userID,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      reason,
	}
	if err := database.InsertExclusion(ctx, exclusion); err != nil {
		return nil, fmt.Errorf("failed to insert exclusion: %w", err)
	}

	logger.Info("Recorded exclusion",
		zap.String("user_id", userID),
		zap.Time("start", startDate),
		zap.Time("end", endDate))

	return &exclusion, nil
}
