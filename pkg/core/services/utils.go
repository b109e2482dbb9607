package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/evehartley/homebalance/internal/config"
	"github.com/evehartley/homebalance/pkg/core/model"
	"github.com/evehartley/homebalance/pkg/db"
)

// WeekBounds returns the Monday-to-Sunday week containing ref, at day
// granularity in UTC
func WeekBounds(ref time.Time) (time.Time, time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// MonthBounds returns the first and last day of the month containing ref
func MonthBounds(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// validatePeriod rejects malformed period bounds before they reach the
// engine, which assumes validated input
func validatePeriod(periodStart, periodEnd time.Time) error {
	if periodStart.IsZero() || periodEnd.IsZero() {
		return fmt.Errorf("period bounds must be set")
	}
	if periodEnd.Before(periodStart) {
		return fmt.Errorf("period end %s is before period start %s",
			periodEnd.Format("2006-01-02"), periodStart.Format("2006-01-02"))
	}
	return nil
}

// filterTasksInPeriod keeps completions inside [periodStart, periodEnd]
// and drops records with non-positive weights, which the engine is not
// required to handle
func filterTasksInPeriod(tasks []db.TaskCompletion, periodStart, periodEnd time.Time) []model.TaskCompletion {
	end := periodEnd.AddDate(0, 0, 1)

	var filtered []model.TaskCompletion
	for _, t := range tasks {
		if t.Weight <= 0 {
			continue
		}
		if t.CompletedAt.Before(periodStart) || !t.CompletedAt.Before(end) {
			continue
		}
		filtered = append(filtered, model.TaskCompletion{
			TaskID:      t.ID,
			UserID:      t.UserID,
			Category:    t.Category,
			Weight:      t.Weight,
			CompletedAt: t.CompletedAt,
		})
	}
	return filtered
}

func convertMembers(members []db.Member) []model.Member {
	result := make([]model.Member, 0, len(members))
	for _, m := range members {
		result = append(result, model.Member{ID: m.ID, Name: m.Name})
	}
	return result
}

func convertExclusions(exclusions []db.Exclusion) []model.MemberExclusion {
	result := make([]model.MemberExclusion, 0, len(exclusions))
	for _, e := range exclusions {
		result = append(result, model.MemberExclusion{
			UserID:    e.UserID,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			Reason:    e.Reason,
		})
	}
	return result
}

// expandRecurringExclusions materializes the config-declared recurring
// unavailability rules into concrete exclusion intervals overlapping
// [periodStart, periodEnd]. Each rrule occurrence opens an exclusion of
// durationDays days starting on the occurrence date.
func expandRecurringExclusions(rules []config.RecurringExclusion, periodStart, periodEnd time.Time) ([]model.MemberExclusion, error) {
	var exclusions []model.MemberExclusion

	for i, rule := range rules {
		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in recurringExclusions[%d]: %w", i, err)
		}

		// Widen the query window so occurrences starting before the
		// period but running into it are still picked up
		windowStart := periodStart.AddDate(0, 0, -rule.DurationDays)

		// Rules without an explicit DTSTART would otherwise anchor at
		// parse time and miss past periods entirely
		if !strings.Contains(rule.RRule, "DTSTART") {
			r.DTStart(windowStart)
		}
		for _, occurrence := range r.Between(windowStart, periodEnd, true) {
			start := time.Date(occurrence.Year(), occurrence.Month(), occurrence.Day(), 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 0, rule.DurationDays-1)
			if end.Before(periodStart) {
				continue
			}
			exclusions = append(exclusions, model.MemberExclusion{
				UserID:    rule.UserID,
				StartDate: start,
				EndDate:   end,
				Reason:    rule.Reason,
			})
		}
	}

	return exclusions, nil
}

// convertScoreHistory turns persisted score records into the canonical
// range-based period series. Legacy single-date records (no period end)
// are normalized to zero-length ranges.
func convertScoreHistory(records []db.FairnessScoreRecord) []model.PeriodScore {
	series := make([]model.PeriodScore, 0, len(records))
	for _, r := range records {
		end := r.PeriodEnd
		if end.IsZero() {
			end = r.PeriodStart
		}
		series = append(series, model.PeriodScore{
			PeriodStart: r.PeriodStart,
			PeriodEnd:   end,
			Score:       r.Score,
			Gini:        r.Gini,
		})
	}
	return series
}
