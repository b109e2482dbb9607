package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evehartley/homebalance/pkg/core/services"
)

// ComputeScoreCmd creates the computeScore command
func ComputeScoreCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "computeScore",
		Short: "Compute the fairness score for one week",
		Long:  "Aggregate task completions into member loads and compute the household fairness score and category breakdown for the week containing the given date",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekOf, err := parseDateFlag(cmd, "week-of")
			if err != nil {
				return err
			}
			persist, _ := cmd.Flags().GetBool("persist")

			app.Logger.Debug("computeScore command",
				zap.Time("week_of", weekOf),
				zap.Bool("persist", persist))

			periodStart, periodEnd := services.WeekBounds(weekOf)

			result, err := services.ComputeScore(
				app.Ctx,
				app.Database,
				app.Cfg,
				app.Logger,
				periodStart,
				periodEnd,
				persist,
			)
			if err != nil {
				return fmt.Errorf("failed to compute score: %w", err)
			}

			fmt.Printf("\nFairness score for %s to %s\n\n",
				periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02"))
			fmt.Printf("Score:       %d/100\n", result.Score.OverallScore)
			fmt.Printf("Gini:        %.3f\n", result.Score.GiniCoefficient)
			fmt.Printf("Alert level: %s\n", result.Score.AlertLevel)
			fmt.Printf("Tasks:       %d\n\n", result.TaskCount)

			fmt.Printf("Member loads:\n")
			for _, load := range result.Score.MemberLoads {
				fmt.Printf("  %-20s %3d tasks  weight %3d  share %5.1f%%  adjusted %5.1f%%  excluded %d days\n",
					load.UserName, load.TasksCompleted, load.TotalWeight,
					load.Percentage, load.AdjustedPercentage, load.ExclusionDays)
			}

			if len(result.Categories) > 0 {
				fmt.Printf("\nCategories:\n")
				for _, cat := range result.Categories {
					fmt.Printf("  %-15s score %3d  (%d tasks)\n", cat.Category, cat.FairnessScore, cat.TotalTasks)
				}
			}

			return nil
		},
	}

	cmd.Flags().String("week-of", "", "Any date inside the target week (YYYY-MM-DD, default today)")
	cmd.Flags().Bool("persist", false, "Store the computed score for trend and monthly lookups")

	return cmd
}

// parseDateFlag reads a YYYY-MM-DD flag, defaulting to today when unset
func parseDateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	value, _ := cmd.Flags().GetString(name)
	if value == "" {
		return time.Now().UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q: %w", name, value, err)
	}
	return parsed, nil
}
