package db

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bossbitch/backend/config"
)

// LocalDatabase wraps the GORM connection to the on-device SQLite store.
type LocalDatabase struct {
	db *gorm.DB
}

// NewSQLiteConnection opens the on-device SQLite store, creating the
// file when absent. Use ":memory:" for an ephemeral store in tests.
func NewSQLiteConnection(cfg *config.LocalConfig) (*LocalDatabase, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	// The daemon is the only writer, and SQLite serializes writers
	// anyway. A single connection avoids SQLITE_BUSY churn.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	slog.Info("Local database opened", "path", cfg.Path)

	return &LocalDatabase{db: db}, nil
}

// DB returns the underlying GORM database instance.
func (d *LocalDatabase) DB() *gorm.DB {
	return d.db
}

// HealthCheck performs a health check on the local database.
func (d *LocalDatabase) HealthCheck() bool {
	sqlDB, err := d.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}

// Close closes the local database.
func (d *LocalDatabase) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close local database: %w", err)
	}

	slog.Info("Local database closed")
	return nil
}

// AutoMigrate runs GORM auto-migration for the given models.
func (d *LocalDatabase) AutoMigrate(models ...interface{}) error {
	if err := d.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}
