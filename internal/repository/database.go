package repository

import (
	"fmt"

	"github.com/promptgate/console/internal/models"
	"github.com/promptgate/console/pkg/config"
	"github.com/promptgate/console/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection and runs migrations
func InitDB(cfg *config.Config) error {
	var err error

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.Debug {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"url": maskPassword(cfg.DatabaseURL),
	})
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	logger.Info("Database initialized", nil)
	return nil
}

// Migrate runs schema auto-migration for all owned tables.
// metric_records and event_attendees are owned by the metering and
// registration subsystems; they are migrated here only so a fresh
// deployment has a readable schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventOwner{},
		&models.Catalog{},
		&models.Attendee{},
		&models.MetricRecord{},
		&models.AuditRecord{},
	)
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// Ping checks database connectivity for health endpoints
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// maskPassword masks the password in a connection string for logging
func maskPassword(url string) string {
	if len(url) < 20 {
		return "****"
	}

	start := -1
	end := -1
	for i := 0; i < len(url); i++ {
		if url[i] == ':' && start == -1 && i > 10 {
			start = i + 1
		}
		if url[i] == '@' && start != -1 {
			end = i
			break
		}
	}

	if start == -1 || end == -1 || start >= end {
		return "****"
	}

	return url[:start] + "****" + url[end:]
}
