package postgres

import (
	"context"
	"fmt"

	"github.com/evehartley/homebalance/pkg/db"
)

// GetExclusions retrieves all exclusion records for a household
func (d *DB) GetExclusions(ctx context.Context, householdID string) ([]db.Exclusion, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, household_id, user_id, start_date, end_date, reason
		FROM exclusion
		WHERE household_id = $1
		ORDER BY start_date
	`, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exclusions: %w", err)
	}
	defer rows.Close()

	var exclusions []db.Exclusion
	for rows.Next() {
		var e db.Exclusion
		var reason *string
		if err := rows.Scan(&e.ID, &e.HouseholdID, &e.UserID, &e.StartDate, &e.EndDate, &reason); err != nil {
			return nil, fmt.Errorf("failed to scan exclusion: %w", err)
		}
		if reason != nil {
			e.Reason = *reason
		}
		exclusions = append(exclusions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exclusions: %w", err)
	}

	return exclusions, nil
}

// InsertExclusion inserts a new exclusion record
func (d *DB) InsertExclusion(ctx context.Context, exclusion db.Exclusion) error {
	var reason *string
	if exclusion.Reason != "" {
		reason = &exclusion.Reason
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO exclusion (id, household_id, user_id, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, exclusion.ID, exclusion.HouseholdID, exclusion.UserID, exclusion.StartDate, exclusion.EndDate, reason)
	if err != nil {
		return fmt.Errorf("failed to insert exclusion: %w", err)
	}

	return nil
}
