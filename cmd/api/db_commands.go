package main

import (
	"context"

	"github.com/justsurfingit/engineer-marketplace/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		db, err := openDatabase(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDatabase(db, logger)

		logger.Info("schema is up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the placeholder catalog (jobs, companies, engineers, ratings)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		db, err := openDatabase(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDatabase(db, logger)

		return seedDatabase(cmd.Context(), db, logger)
	},
}

func seedDatabase(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	fixtures, err := seed.Load()
	if err != nil {
		return err
	}
	if err := seed.Apply(ctx, db, fixtures, logger); err != nil {
		return err
	}
	logger.Info("seed data loaded",
		zap.Int("jobs", len(fixtures.Jobs)),
		zap.Int("engineers", len(fixtures.Engineers)))
	return nil
}
