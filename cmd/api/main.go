package main

import (
	"os"

	"github.com/justsurfingit/engineer-marketplace/internal/config"
	"github.com/justsurfingit/engineer-marketplace/internal/database"
	"github.com/justsurfingit/engineer-marketplace/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	verbose bool
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "marketplace",
	Short: "Engineer and company matching marketplace API",
	Long: `marketplace serves the engineer/company matching API: job search and
applications, the engineer onboarding wizard, company projects, matching and ratings.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "env file to load before reading the environment")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// bootstrap loads the configuration and builds the logger every command shares.
func bootstrap() (cfg config.Config, logger *zap.Logger, err error) {
	cfg, err = config.Load(envFile)
	if err != nil {
		return cfg, nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logger, err = logging.New(cfg.LogLevel)
	return cfg, logger, err
}

// openDatabase connects and migrates.
func openDatabase(cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func closeDatabase(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("failed to close database", zap.Error(err))
	}
}
