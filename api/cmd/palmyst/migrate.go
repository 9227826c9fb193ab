package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"palmyst/api/internal/config"
	"palmyst/api/internal/logger"
	"palmyst/api/internal/store"
)

// migrateCmd creates the readings table and exits.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	d := store.Dialect(cfg.DatabaseType)
	db, err := store.Open(ctx, d, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(ctx, db, d); err != nil {
		return err
	}
	log.Info("schema ready", zap.String("db", config.SafeDSNSummary(cfg.DatabaseURL)))
	return nil
}
