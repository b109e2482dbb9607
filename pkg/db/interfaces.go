package db

import "context"

// MemberStore defines member roster database operations
type MemberStore interface {
	GetMembers(ctx context.Context, householdID string) ([]Member, error)
}

// TaskStore defines task completion database operations
type TaskStore interface {
	GetTaskCompletions(ctx context.Context, householdID string) ([]TaskCompletion, error)
}

// ExclusionStore defines exclusion database operations
type ExclusionStore interface {
	GetExclusions(ctx context.Context, householdID string) ([]Exclusion, error)
	InsertExclusion(ctx context.Context, exclusion Exclusion) error
}

// ScoreStore defines fairness score persistence operations.
// InsertFairnessScore is an upsert keyed by (householdID, periodStart):
// re-persisting a period replaces its stored score so the history never
// holds the same period twice.
type ScoreStore interface {
	GetFairnessScores(ctx context.Context, householdID string) ([]FairnessScoreRecord, error)
	InsertFairnessScore(ctx context.Context, record FairnessScoreRecord) error
}
