package database

import (
	"log"
	"time"

	"github.com/bgaal/passhub/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	// AutoMigrate adds new columns with their defaults, which is the whole
	// schema-upgrade path: older databases pick up later columns on boot.
	if err := db.AutoMigrate(
		&models.User{},
		&models.Pass{},
		&models.PassUsage{},
		&models.Event{},
		&models.EventRegistration{},
		&models.EmailSettings{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Backstop for the application-level duplicate check on signups.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_registration_event_user
		ON event_registrations (event_id, user_id)
	`)

	return db
}
