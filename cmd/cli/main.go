package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evehartley/homebalance/cmd/cli/commands"
	"github.com/evehartley/homebalance/internal/config"
	"github.com/evehartley/homebalance/pkg/postgres"
	"github.com/evehartley/homebalance/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "homebalance",
		Short: "Homebalance CLI - Household load fairness reports",
		Long:  `A CLI tool for scoring how fairly household chores are shared, tracking the trend over time, and sending weekly and monthly fairness reports.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Database != nil {
					app.Database.Close()
				}
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.ComputeScoreCmd(appRef()))
	rootCmd.AddCommand(commands.WeeklyReportCmd(appRef()))
	rootCmd.AddCommand(commands.MonthlyReportCmd(appRef()))
	rootCmd.AddCommand(commands.TrendCmd(appRef()))
	rootCmd.AddCommand(commands.ListMembersCmd(appRef()))
	rootCmd.AddCommand(commands.AddExclusionCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext; commands capture the pointer
// before initApp populates it in PersistentPreRunE
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, database, and oauth configuration
func initApp() error {
	var err error
	appRef()
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	// OAuth client config is optional; only email delivery needs it
	app.OAuthCfg, err = config.LoadOAuthClientWithEnv(env)
	if err != nil {
		app.Logger.Debug("No OAuth client configuration", zap.Error(err))
		app.OAuthCfg = nil
	}

	// Connect to the database and apply pending migrations
	app.Logger.Info("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.Database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Debug("Database ready")

	return nil
}
