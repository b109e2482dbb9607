package postgres

import (
	"context"
	"fmt"

	"github.com/evehartley/homebalance/pkg/db"
)

// GetTaskCompletions retrieves all task completion records for a household
func (d *DB) GetTaskCompletions(ctx context.Context, householdID string) ([]db.TaskCompletion, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, household_id, user_id, category, weight, completed_at
		FROM task_completion
		WHERE household_id = $1
		ORDER BY completed_at
	`, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query task completions: %w", err)
	}
	defer rows.Close()

	var tasks []db.TaskCompletion
	for rows.Next() {
		var t db.TaskCompletion
		if err := rows.Scan(&t.ID, &t.HouseholdID, &t.UserID, &t.Category, &t.Weight, &t.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task completion: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task completions: %w", err)
	}

	return tasks, nil
}
