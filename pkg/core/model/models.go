package model

import "time"

// AlertLevel flags how concentrated the household load is on a single member
type AlertLevel string

const (
	AlertNone     AlertLevel = "none"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

func (a AlertLevel) IsValid() bool {
	return a == AlertNone || a == AlertWarning || a == AlertCritical
}

// TrendDirection classifies the trajectory of fairness scores over time
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendWorsening TrendDirection = "worsening"
	TrendStable    TrendDirection = "stable"
)

// Member represents a household member
type Member struct {
	ID   string
	Name string
}

// TaskCompletion represents one completed chore, weighted by effort (1-10)
type TaskCompletion struct {
	TaskID      string
	UserID      string
	Category    string
	Weight      int
	CompletedAt time.Time
}

// MemberExclusion represents a period a member could not participate
// (illness, travel, alternating custody). Intervals may overlap.
type MemberExclusion struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Reason    string // optional
}

// MemberLoad is the per-member load table derived from task completions.
//
// Percentage is the member's share of total weight across all members
// (0-100). AdjustedPercentage scales that share up in proportion to the
// days the member was excluded, so partial availability does not read
// as slacking.
type MemberLoad struct {
	UserID             string
	UserName           string
	TasksCompleted     int
	TotalWeight        int
	Percentage         float64
	AdjustedPercentage float64
	ExclusionDays      int
}

// FairnessScore is the household-level scoring result for one period
type FairnessScore struct {
	HouseholdID     string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	OverallScore    int     // 0-100, 100 = perfectly equal adjusted split
	GiniCoefficient float64 // 0-1 dispersion of adjusted shares
	MemberLoads     []MemberLoad
	AlertLevel      AlertLevel
}

// CategoryContribution is one member's share of a single task category
type CategoryContribution struct {
	UserID     string
	UserName   string
	TaskCount  int
	Percentage float64
}

// CategoryFairness is the task-count based fairness breakdown for one category
type CategoryFairness struct {
	Category            string
	FairnessScore       int
	TotalTasks          int
	MemberContributions []CategoryContribution
}

// PeriodScore is one historical fairness score entry.
// Single-date entries are normalized to zero-length ranges at ingestion.
type PeriodScore struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Score       int
	Gini        float64
}

// FairnessTrend classifies how the household's fairness evolved across periods
type FairnessTrend struct {
	HouseholdID  string
	Periods      []PeriodScore
	Trend        TrendDirection
	AverageScore float64
	BestPeriod   PeriodScore
	WorstPeriod  PeriodScore
}

// WeeklyReport composes one period's score, trend, category breakdown
// and generated observations. It has no identity beyond
// (householdID, period bounds, type); formatters render it downstream.
type WeeklyReport struct {
	HouseholdID  string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Score        FairnessScore
	Trend        FairnessTrend
	Categories   []CategoryFairness
	Observations []string
}

// MemberSummary is a per-member roll-up across several weeks
type MemberSummary struct {
	UserID            string
	UserName          string
	TasksCompleted    int
	TotalWeight       int
	AveragePercentage float64
}

// WeekBreakdown is one row of the monthly week-by-week table
type WeekBreakdown struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Score       int
	AlertLevel  AlertLevel
	TotalTasks  int
}

// MonthlyReport aggregates already-computed weekly scores; it never
// recomputes loads from raw tasks.
type MonthlyReport struct {
	HouseholdID    string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	AverageScore   float64
	TotalTasks     int
	TotalWeight    int
	MemberSummary  []MemberSummary
	WeekBreakdowns []WeekBreakdown
	BestWeek       WeekBreakdown
	WorstWeek      WeekBreakdown
	Observations   []string
}
