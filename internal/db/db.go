// Package db owns the persistence store for review records, metrics and
// feedback items, backed by a local sqlite database through GORM.
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/reviewkit/reviewkit/models"
)

// DefaultDir returns the default database directory.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cache", "reviewkit"), nil
}

// Open opens (creating if needed) the review database in the given
// directory and migrates the schema. An empty dir selects the default
// location.
func Open(dir string) (*gorm.DB, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbPath := filepath.Join(dir, "reviews.db")

	config := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent), // Reduce log noise
	}

	// DriverName selects the cgo-free modernc driver registered above.
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dbPath}, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := db.AutoMigrate(&models.ReviewRecord{}, &models.Metrics{}, &models.FeedbackItem{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
