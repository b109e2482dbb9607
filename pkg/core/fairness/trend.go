package fairness

import (
	"sort"

	"github.com/evehartley/homebalance/pkg/core/model"
)

// DefaultTrendDelta is the score-point difference between the earliest
// and most recent third of periods needed before a series is classified
// as improving or worsening rather than stable.
const DefaultTrendDelta = 5.0

// Trend classifies the trajectory of a household's fairness scores.
//
// The series is sorted by period start ascending regardless of input
// order. The mean of the most recent third of periods is compared to
// the mean of the earliest third; a difference beyond delta yields
// improving/worsening, anything else is stable. Fewer than two data
// points is always stable. Best and worst period ties resolve to the
// most recent period.
//
// An empty series returns a stable trend with a zero average. Callers
// that hold a freshly computed score include its period in historical
// so the average reflects it; the report builder does exactly that by
// appending the current period before calling here.
func Trend(householdID string, historical []model.PeriodScore, delta float64) model.FairnessTrend {
	trend := model.FairnessTrend{
		HouseholdID: householdID,
		Trend:       model.TrendStable,
	}

	if len(historical) == 0 {
		return trend
	}

	periods := make([]model.PeriodScore, len(historical))
	copy(periods, historical)
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].PeriodStart.Before(periods[j].PeriodStart)
	})
	trend.Periods = periods

	sum := 0
	for _, p := range periods {
		sum += p.Score
	}
	trend.AverageScore = float64(sum) / float64(len(periods))

	// Most recent wins ties, so scan oldest to newest with >= / <=
	trend.BestPeriod = periods[0]
	trend.WorstPeriod = periods[0]
	for _, p := range periods[1:] {
		if p.Score >= trend.BestPeriod.Score {
			trend.BestPeriod = p
		}
		if p.Score <= trend.WorstPeriod.Score {
			trend.WorstPeriod = p
		}
	}

	if len(periods) < 2 {
		return trend
	}

	third := len(periods) / 3
	if third < 1 {
		third = 1
	}

	earliest := meanScore(periods[:third])
	recent := meanScore(periods[len(periods)-third:])

	switch {
	case recent-earliest > delta:
		trend.Trend = model.TrendImproving
	case earliest-recent > delta:
		trend.Trend = model.TrendWorsening
	}

	return trend
}

func meanScore(periods []model.PeriodScore) float64 {
	sum := 0
	for _, p := range periods {
		sum += p.Score
	}
	return float64(sum) / float64(len(periods))
}
