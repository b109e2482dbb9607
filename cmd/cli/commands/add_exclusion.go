package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evehartley/homebalance/pkg/core/services"
)

// AddExclusionCmd creates the addExclusion command
func AddExclusionCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addExclusion",
		Short: "Record a period a member cannot participate",
		Long:  "Record a one-off unavailability interval (illness, travel) so that week's load share is pro-rated for the member",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("member")
			startStr, _ := cmd.Flags().GetString("start")
			endStr, _ := cmd.Flags().GetString("end")
			reason, _ := cmd.Flags().GetString("reason")

			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("invalid --start date %q: %w", startStr, err)
			}
			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fmt.Errorf("invalid --end date %q: %w", endStr, err)
			}

			app.Logger.Debug("addExclusion command",
				zap.String("member", userID),
				zap.Time("start", start),
				zap.Time("end", end))

			exclusion, err := services.AddExclusion(
				app.Ctx,
				app.Database,
				app.Cfg,
				app.Logger,
				userID,
				start,
				end,
				reason,
			)
			if err != nil {
				return fmt.Errorf("failed to add exclusion: %w", err)
			}

			fmt.Printf("\nRecorded exclusion %s for member %s: %s to %s\n",
				exclusion.ID, exclusion.UserID,
				exclusion.StartDate.Format("2006-01-02"), exclusion.EndDate.Format("2006-01-02"))

			return nil
		},
	}

	cmd.Flags().String("member", "", "Member ID (required)")
	cmd.Flags().String("start", "", "First excluded day, YYYY-MM-DD (required)")
	cmd.Flags().String("end", "", "Last excluded day, YYYY-MM-DD (required)")
	cmd.Flags().String("reason", "", "Optional reason (illness, travel, custody)")
	cmd.MarkFlagRequired("member")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}
