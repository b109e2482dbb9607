package postgres

import (
	"context"
	"fmt"

	"github.com/evehartley/homebalance/pkg/db"
)

// GetFairnessScores retrieves the persisted fairness score history for
// a household, oldest first
func (d *DB) GetFairnessScores(ctx context.Context, householdID string) ([]db.FairnessScoreRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, household_id, period_start, period_end, score, gini, alert_level, created_at
		FROM fairness_score
		WHERE household_id = $1
		ORDER BY period_start
	`, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fairness scores: %w", err)
	}
	defer rows.Close()

	var records []db.FairnessScoreRecord
	for rows.Next() {
		var r db.FairnessScoreRecord
		if err := rows.Scan(&r.ID, &r.HouseholdID, &r.PeriodStart, &r.PeriodEnd, &r.Score, &r.Gini, &r.AlertLevel, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fairness score: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fairness scores: %w", err)
	}

	return records, nil
}

// InsertFairnessScore persists one weekly fairness score record.
// Rerunning a week replaces the stored row rather than adding a
// duplicate period to the history.
func (d *DB) InsertFairnessScore(ctx context.Context, record db.FairnessScoreRecord) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO fairness_score (id, household_id, period_start, period_end, score, gini, alert_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (household_id, period_start) DO UPDATE
		SET period_end = EXCLUDED.period_end,
		    score = EXCLUDED.score,
		    gini = EXCLUDED.gini,
		    alert_level = EXCLUDED.alert_level,
		    created_at = NOW()
	`, record.ID, record.HouseholdID, record.PeriodStart, record.PeriodEnd, record.Score, record.Gini, record.AlertLevel)
	if err != nil {
		return fmt.Errorf("failed to insert fairness score: %w", err)
	}

	return nil
}
