package db

import "time"

// Member represents a household member record
type Member struct {
	ID          string
	HouseholdID string
	Name        string
	Active      bool
}

// TaskCompletion represents one completed chore record
type TaskCompletion struct {
	ID          string
	HouseholdID string
	UserID      string
	Category    string
	Weight      int
	CompletedAt time.Time
}

// Exclusion represents a stored member unavailability interval
type Exclusion struct {
	ID          string
	HouseholdID string
	UserID      string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string // nullable
}

// FairnessScoreRecord is a persisted weekly fairness score, kept so
// trend and monthly aggregation can read a historical series
type FairnessScoreRecord struct {
	ID          string
	HouseholdID string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Score       int
	Gini        float64
	AlertLevel  string
	CreatedAt   time.Time
}
