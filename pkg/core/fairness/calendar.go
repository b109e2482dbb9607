package fairness

import (
	"sort"
	"time"

	"github.com/evehartley/homebalance/pkg/core/model"
)

// ExcludedDays counts the calendar days within [periodStart, periodEnd]
// covered by the given exclusion intervals.
//
// Intervals are clipped to the period bounds; an exclusion entirely
// outside the period contributes 0. Overlapping intervals are merged
// first so two overlapping illness entries do not inflate the count
// beyond the real calendar days missed. Counting is inclusive of both
// endpoints at day granularity.
//
// The result is never negative and never exceeds the period length.
func ExcludedDays(exclusions []model.MemberExclusion, periodStart, periodEnd time.Time) int {
	if len(exclusions) == 0 {
		return 0
	}

	periodStart = truncateToDay(periodStart)
	periodEnd = truncateToDay(periodEnd)

	// Clip each interval to the period
	type interval struct {
		start, end time.Time
	}
	var clipped []interval
	for _, ex := range exclusions {
		start := truncateToDay(ex.StartDate)
		end := truncateToDay(ex.EndDate)
		if start.Before(periodStart) {
			start = periodStart
		}
		if end.After(periodEnd) {
			end = periodEnd
		}
		if end.Before(start) {
			continue
		}
		clipped = append(clipped, interval{start: start, end: end})
	}

	if len(clipped) == 0 {
		return 0
	}

	// Merge overlapping or adjacent intervals
	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].start.Before(clipped[j].start)
	})

	merged := []interval{clipped[0]}
	for _, iv := range clipped[1:] {
		last := &merged[len(merged)-1]
		if !iv.start.After(last.end) {
			if iv.end.After(last.end) {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}

	days := 0
	for _, iv := range merged {
		days += daysInclusive(iv.start, iv.end)
	}

	periodDays := daysInclusive(periodStart, periodEnd)
	if days > periodDays {
		days = periodDays
	}
	return days
}

// PeriodDays returns the inclusive day count of [periodStart, periodEnd]
func PeriodDays(periodStart, periodEnd time.Time) int {
	return daysInclusive(truncateToDay(periodStart), truncateToDay(periodEnd))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysInclusive(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
