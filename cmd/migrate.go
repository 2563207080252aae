package cmd

import (
	"fmt"

	"github.com/SAP-F-2025/readiness-assessment/internal/config"
	"github.com/SAP-F-2025/readiness-assessment/internal/repositories/postgres"
	"github.com/SAP-F-2025/readiness-assessment/internal/utils"
	"github.com/SAP-F-2025/readiness-assessment/pkg"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the postgres blob table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger := utils.NewLogger(cfg.Environment, cmd.ErrOrStderr())

		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db, logger.Slog())

		if err := postgres.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database migrated")
		return nil
	},
}
