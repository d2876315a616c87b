package database

import (
	"fmt"
	"time"

	"url-shortener-api/internal/config"
	"url-shortener-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxOpenAttempts = 5
	initialBackoff  = 2 * time.Second
)

// Open connects to the database selected by cfg.DBDriver and runs migrations.
// Postgres connections are retried with exponential backoff; SQLite uses
// glebarez/sqlite, a pure Go implementation (no CGO required).
func Open(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	entry := log.WithFields(logrus.Fields{
		"component": "database",
		"driver":    cfg.DBDriver,
	})

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger: logger.New(entry, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var db *gorm.DB
	backoff := initialBackoff
	attempts := 1
	if cfg.DBDriver == config.DriverPostgres {
		attempts = maxOpenAttempts
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}
		entry.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err,
		}).Warn("Database connection failed")
		if attempt < attempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	entry.Info("Database connected and migrated")
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Link{}); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	return nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.DBDSN), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DBDSN), nil
	default:
		return nil, fmt.Errorf("driver %q is not backed by a database", cfg.DBDriver)
	}
}
