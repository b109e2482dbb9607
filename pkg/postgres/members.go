package postgres

import (
	"context"
	"fmt"

	"github.com/evehartley/homebalance/pkg/db"
)

// GetMembers retrieves all active members of a household
func (d *DB) GetMembers(ctx context.Context, householdID string) ([]db.Member, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, household_id, name, active
		FROM member
		WHERE household_id = $1 AND active
		ORDER BY name
	`, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []db.Member
	for rows.Next() {
		var m db.Member
		if err := rows.Scan(&m.ID, &m.HouseholdID, &m.Name, &m.Active); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}
