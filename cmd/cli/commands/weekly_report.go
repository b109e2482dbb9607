package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evehartley/homebalance/pkg/core/services"
)

// WeeklyReportCmd creates the weeklyReport command
func WeeklyReportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weeklyReport",
		Short: "Build the weekly fairness report",
		Long:  "Build the full weekly fairness report (score, trend, categories, observations), persist the score, and optionally email it to the configured recipients",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekOf, err := parseDateFlag(cmd, "week-of")
			if err != nil {
				return err
			}
			sendEmail, _ := cmd.Flags().GetBool("email")

			app.Logger.Debug("weeklyReport command",
				zap.Time("week_of", weekOf),
				zap.Bool("email", sendEmail))

			var email services.EmailSender
			if sendEmail {
				client, err := app.EnsureGmailClient()
				if err != nil {
					return err
				}
				email = client
			}

			weekly, err := services.BuildWeeklyReport(
				app.Ctx,
				app.Database,
				email,
				app.Cfg,
				app.Logger,
				weekOf,
				sendEmail,
			)
			if err != nil {
				return fmt.Errorf("failed to build weekly report: %w", err)
			}

			fmt.Println()
			fmt.Print(services.FormatWeeklyEmail(*weekly))
			if sendEmail {
				fmt.Printf("\nReport emailed to %d recipient(s)\n", len(app.Cfg.ReportRecipients))
			}

			return nil
		},
	}

	cmd.Flags().String("week-of", "", "Any date inside the target week (YYYY-MM-DD, default today)")
	cmd.Flags().Bool("email", false, "Email the report to the configured recipients")

	return cmd
}
