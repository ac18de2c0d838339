package config

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/podhost/podhost-backend/models"
)

const (
	connectAttempts = 5
	connectDelay    = 10 * time.Second
	statementTimout = 60 * time.Second
)

// InitDB opens the postgres connection, tunes the pool and migrates the
// catalog schema. Transient connect failures are retried a bounded number of
// times before giving up.
func InitDB(cfg Settings) (*gorm.DB, error) {
	port := cfg.DBPort
	if port == "" {
		port = "5432"
	}
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable options='-c statement_timeout=%d'",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, port,
		statementTimout.Milliseconds(),
	)

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		slog.Warn("database connect failed", "attempt", attempt, "error", err)
		if attempt < connectAttempts {
			time.Sleep(connectDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	slog.Info("postgres connected and migrated")
	return db, nil
}

// Migrate creates or updates the catalog tables. Split out so tests can run
// it against their own database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Podcast{},
		&models.Episode{},
		&models.Subscription{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
