package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evehartley/homebalance/pkg/core/services"
)

// MonthlyReportCmd creates the monthlyReport command
func MonthlyReportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monthlyReport",
		Short: "Build the monthly fairness roll-up",
		Long:  "Aggregate the month's weekly score bundles into a monthly report with totals, per-member roll-ups and a week-by-week breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			monthOf, err := parseDateFlag(cmd, "month-of")
			if err != nil {
				return err
			}
			sendEmail, _ := cmd.Flags().GetBool("email")

			app.Logger.Debug("monthlyReport command",
				zap.Time("month_of", monthOf),
				zap.Bool("email", sendEmail))

			var email services.EmailSender
			if sendEmail {
				client, err := app.EnsureGmailClient()
				if err != nil {
					return err
				}
				email = client
			}

			monthly, err := services.BuildMonthlyReport(
				app.Ctx,
				app.Database,
				email,
				app.Cfg,
				app.Logger,
				monthOf,
				sendEmail,
			)
			if err != nil {
				return fmt.Errorf("failed to build monthly report: %w", err)
			}

			fmt.Println()
			fmt.Print(services.FormatMonthlyEmail(*monthly))
			if sendEmail {
				fmt.Printf("\nReport emailed to %d recipient(s)\n", len(app.Cfg.ReportRecipients))
			}

			return nil
		},
	}

	cmd.Flags().String("month-of", "", "Any date inside the target month (YYYY-MM-DD, default today)")
	cmd.Flags().Bool("email", false, "Email the report to the configured recipients")

	return cmd
}
