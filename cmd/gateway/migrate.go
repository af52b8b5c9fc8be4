package main

import (
	"fmt"

	"github.com/DanielPopoola/payments-gateway/internal/config"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/persistence"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/persistence/postgres"
	"github.com/spf13/cobra"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres schema",
		Long: `Apply the embedded postgres migrations to the configured database.

Examples:
  gateway migrate --config gateway.yaml
  PAYMENTS_DATABASE__HOST=localhost gateway migrate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger := cfg.Logger.NewLogger()

			db, err := persistence.Connect(ctx, &cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer db.Close()

			if err := postgres.Migrate(ctx, db.Pool); err != nil {
				return err
			}

			logger.Info("migrations applied", "database", cfg.Database.Name)
			return nil
		},
	}
}
