package database

import (
	"fmt"

	"skladets/internal/config"
	"skladets/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the relational database named by cfg and migrates the
// schema. It must not be called with the memory driver.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("driver %q has no SQL backend", cfg.DatabaseDriver)
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("База данных подключена, миграция выполнена",
		zap.String("driver", cfg.DatabaseDriver))
	return db, nil
}

// Migrate creates or updates the four inventory tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Supplier{},
		&models.Product{},
		&models.Stock{},
		&models.Operation{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
