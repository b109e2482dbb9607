package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/evehartley/homebalance/pkg/core/model"
	"github.com/evehartley/homebalance/pkg/db"
)

// mockWeeklyReportStore implements WeeklyReportStore for testing
type mockWeeklyReportStore struct {
	mockComputeScoreStore
	scores       []db.FairnessScoreRecord
	getScoresErr error
}

func (m *mockWeeklyReportStore) GetFairnessScores(ctx context.Context, householdID string) ([]db.FairnessScoreRecord, error) {
	if m.getScoresErr != nil {
		return nil, m.getScoresErr
	}
	return m.scores, nil
}

// mockEmailSender implements EmailSender for testing
type mockEmailSender struct {
	sent    []sentEmail
	sendErr error
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

func (m *mockEmailSender) SendEmail(to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func scoreRecord(id string, periodStart time.Time, score int) db.FairnessScoreRecord {
	return db.FairnessScoreRecord{
		ID:          id,
		HouseholdID: "hh-1",
		PeriodStart: periodStart,
		PeriodEnd:   periodStart.AddDate(0, 0, 6),
		Score:       score,
		AlertLevel:  string(model.AlertNone),
	}
}

func TestBuildWeeklyReport_PersistsScoreAndReturnsReport(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{
			members: testRoster(),
			tasks: []db.TaskCompletion{
				taskRecord("t1", "a", 5, date(2025, 3, 4)),
				taskRecord("t2", "b", 5, date(2025, 3, 5)),
			},
		},
	}
	logger := zap.NewNop()

	weekly, err := BuildWeeklyReport(context.Background(), store, nil, testConfig(), logger,
		date(2025, 3, 5), false)

	require.NoError(t, err)
	assert.Equal(t, date(2025, 3, 3), weekly.PeriodStart)
	assert.Equal(t, date(2025, 3, 9), weekly.PeriodEnd)
	assert.Equal(t, 100, weekly.Score.OverallScore)
	assert.NotEmpty(t, weekly.Observations)

	require.Len(t, store.insertedScores, 1)
	assert.Equal(t, 100, store.insertedScores[0].Score)
}

func TestBuildWeeklyReport_TrendUsesPersistedHistory(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{
			members: testRoster(),
			tasks: []db.TaskCompletion{
				taskRecord("t1", "a", 5, date(2025, 3, 4)),
				taskRecord("t2", "b", 5, date(2025, 3, 5)),
			},
		},
		scores: []db.FairnessScoreRecord{
			scoreRecord("s1", date(2025, 2, 10), 40),
			scoreRecord("s2", date(2025, 2, 17), 45),
			scoreRecord("s3", date(2025, 2, 24), 50),
		},
	}
	logger := zap.NewNop()

	weekly, err := BuildWeeklyReport(context.Background(), store, nil, testConfig(), logger,
		date(2025, 3, 5), false)

	require.NoError(t, err)
	// History [40 45 50] plus the current week's 100
	assert.Equal(t, model.TrendImproving, weekly.Trend.Trend)
	assert.Equal(t, date(2025, 3, 3), weekly.Trend.BestPeriod.PeriodStart)
}

func TestBuildWeeklyReport_SameWeekHistoryNotDoubleCounted(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{
			members: testRoster(),
			tasks: []db.TaskCompletion{
				taskRecord("t1", "a", 5, date(2025, 3, 4)),
				taskRecord("t2", "b", 5, date(2025, 3, 5)),
			},
		},
		scores: []db.FairnessScoreRecord{
			// A previous run already stored this week
			scoreRecord("s1", date(2025, 3, 3), 80),
		},
	}
	logger := zap.NewNop()

	weekly, err := BuildWeeklyReport(context.Background(), store, nil, testConfig(), logger,
		date(2025, 3, 5), false)

	require.NoError(t, err)
	require.Len(t, weekly.Trend.Periods, 1)
	assert.Equal(t, 100, weekly.Trend.Periods[0].Score)
}

func TestBuildWeeklyReport_RerunKeepsOneScorePerWeek(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{
			members: testRoster(),
			tasks: []db.TaskCompletion{
				taskRecord("t1", "a", 5, date(2025, 3, 4)),
				taskRecord("t2", "b", 5, date(2025, 3, 5)),
			},
		},
	}
	logger := zap.NewNop()

	_, err := BuildWeeklyReport(context.Background(), store, nil, testConfig(), logger,
		date(2025, 3, 5), false)
	require.NoError(t, err)

	// The persisted score is now visible history for the rerun
	store.scores = store.insertedScores

	weekly, err := BuildWeeklyReport(context.Background(), store, nil, testConfig(), logger,
		date(2025, 3, 5), false)
	require.NoError(t, err)

	require.Len(t, store.insertedScores, 1, "rerun must replace the stored score")

	occurrences := 0
	for _, p := range weekly.Trend.Periods {
		if p.PeriodStart.Equal(date(2025, 3, 3)) {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences, "week must appear once in the trend series")
}

func TestGetTrend_RerunHistoryHasNoDuplicatePeriods(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{
			members: testRoster(),
			tasks: []db.TaskCompletion{
				taskRecord("t1", "a", 5, date(2025, 3, 4)),
				taskRecord("t2", "b", 5, date(2025, 3, 5)),
			},
		},
	}
	logger := zap.NewNop()

	for range [2]struct{}{} {
		_, err := BuildWeeklyReport(context.Background(), store, nil, testConfig(), logger,
			date(2025, 3, 5), false)
		require.NoError(t, err)
		store.scores = store.insertedScores
	}

	trend, err := GetTrend(context.Background(), store, testConfig(), logger)

	require.NoError(t, err)
	require.Len(t, trend.Periods, 1)
	assert.InDelta(t, 100.0, trend.AverageScore, 0.001)
}

func TestBuildWeeklyReport_SendsEmailToAllRecipients(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{
			members: testRoster(),
			tasks: []db.TaskCompletion{
				taskRecord("t1", "a", 7, date(2025, 3, 4)),
				taskRecord("t2", "b", 3, date(2025, 3, 5)),
			},
		},
	}
	email := &mockEmailSender{}
	cfg := testConfig()
	cfg.ReportRecipients = []string{"eve@example.com", "sam@example.com"}
	logger := zap.NewNop()

	_, err := BuildWeeklyReport(context.Background(), store, email, cfg, logger,
		date(2025, 3, 5), true)

	require.NoError(t, err)
	require.Len(t, email.sent, 2)
	assert.Equal(t, "eve@example.com", email.sent[0].to)
	assert.Contains(t, email.sent[0].subject, "week of Mar 3")
	assert.Contains(t, email.sent[0].body, "Fairness score: 60/100")
	assert.Contains(t, email.sent[0].body, "Alice")
}

func TestBuildWeeklyReport_EmailWithoutClientFails(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{members: testRoster()},
	}
	cfg := testConfig()
	cfg.ReportRecipients = []string{"eve@example.com"}
	logger := zap.NewNop()

	_, err := BuildWeeklyReport(context.Background(), store, nil, cfg, logger,
		date(2025, 3, 5), true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no email client configured")
}

func TestBuildWeeklyReport_EmailWithoutRecipientsFails(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{members: testRoster()},
	}
	logger := zap.NewNop()

	_, err := BuildWeeklyReport(context.Background(), store, &mockEmailSender{}, testConfig(), logger,
		date(2025, 3, 5), true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reportRecipients configured")
}

func TestBuildWeeklyReport_ScoreHistoryErrorPropagates(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{members: testRoster()},
		getScoresErr:          errors.New("relation does not exist"),
	}
	logger := zap.NewNop()

	_, err := BuildWeeklyReport(context.Background(), store, nil, testConfig(), logger,
		date(2025, 3, 5), false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch score history")
}

func TestBuildMonthlyReport_AggregatesWeeksInsideMonth(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{
			members: testRoster(),
			tasks: []db.TaskCompletion{
				// Week of Jun 2: balanced
				taskRecord("t1", "a", 5, date(2025, 6, 3)),
				taskRecord("t2", "b", 5, date(2025, 6, 4)),
				// Week of Jun 9: everything on Alice
				taskRecord("t3", "a", 5, date(2025, 6, 10)),
				taskRecord("t4", "a", 5, date(2025, 6, 11)),
			},
		},
	}
	logger := zap.NewNop()

	monthly, err := BuildMonthlyReport(context.Background(), store, nil, testConfig(), logger,
		date(2025, 6, 15), false)

	require.NoError(t, err)
	// June 2025 has five Mondays: Jun 2, 9, 16, 23, 30
	assert.Len(t, monthly.WeekBreakdowns, 5)
	assert.Equal(t, 4, monthly.TotalTasks)
	assert.Equal(t, 20, monthly.TotalWeight)
	// Empty weeks also score 100; ties resolve to the most recent week
	assert.Equal(t, 100, monthly.BestWeek.Score)
	assert.Equal(t, date(2025, 6, 9), monthly.WorstWeek.PeriodStart)
}

func TestBuildMonthlyReport_FirstWeekStartsOnFirstMondayInMonth(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{members: testRoster()},
	}
	logger := zap.NewNop()

	// May 2025 starts on a Thursday; the week of Apr 28 belongs to April
	monthly, err := BuildMonthlyReport(context.Background(), store, nil, testConfig(), logger,
		date(2025, 5, 10), false)

	require.NoError(t, err)
	require.NotEmpty(t, monthly.WeekBreakdowns)
	assert.Equal(t, date(2025, 5, 5), monthly.WeekBreakdowns[0].PeriodStart)
}

func TestBuildMonthlyReport_SendsEmail(t *testing.T) {
	store := &mockWeeklyReportStore{
		mockComputeScoreStore: mockComputeScoreStore{
			members: testRoster(),
			tasks: []db.TaskCompletion{
				taskRecord("t1", "a", 5, date(2025, 6, 3)),
				taskRecord("t2", "b", 5, date(2025, 6, 4)),
			},
		},
	}
	email := &mockEmailSender{}
	cfg := testConfig()
	cfg.ReportRecipients = []string{"eve@example.com"}
	logger := zap.NewNop()

	_, err := BuildMonthlyReport(context.Background(), store, email, cfg, logger,
		date(2025, 6, 15), true)

	require.NoError(t, err)
	require.Len(t, email.sent, 1)
	assert.Contains(t, email.sent[0].subject, "June 2025")
	assert.Contains(t, email.sent[0].body, "Week by week:")
}
