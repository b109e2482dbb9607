package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evehartley/homebalance/pkg/core/services"
)

// TrendCmd creates the trend command
func TrendCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Show the fairness trend from stored weekly scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trend, err := services.GetTrend(app.Ctx, app.Database, app.Cfg, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to compute trend: %w", err)
			}

			fmt.Printf("\nFairness trend: %s\n", trend.Trend)
			fmt.Printf("Average score:  %.1f over %d periods\n", trend.AverageScore, len(trend.Periods))

			if len(trend.Periods) > 0 {
				fmt.Printf("Best period:    %s (score %d)\n",
					trend.BestPeriod.PeriodStart.Format("2006-01-02"), trend.BestPeriod.Score)
				fmt.Printf("Worst period:   %s (score %d)\n",
					trend.WorstPeriod.PeriodStart.Format("2006-01-02"), trend.WorstPeriod.Score)

				fmt.Printf("\nHistory:\n")
				for _, p := range trend.Periods {
					fmt.Printf("  %s to %s  score %3d  gini %.3f\n",
						p.PeriodStart.Format("2006-01-02"), p.PeriodEnd.Format("2006-01-02"), p.Score, p.Gini)
				}
			}

			return nil
		},
	}
}
