package database

import (
	"github.com/justsurfingit/engineer-marketplace/internal/config"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the configured database. It does not migrate; call Migrate for that.
func Connect(cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	logger.Info("database connection established", zap.String("driver", cfg.DatabaseDriver))
	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Company{},
		&models.Job{},
		&models.Engineer{},
		&models.Application{},
		&models.Rating{},
		&models.CompanyRating{},
		&models.Offer{},
		&models.SessionEntry{},
	)
	return errors.Wrap(err, "auto-migrate failed")
}
