package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"paywall-backend/models"
	"paywall-backend/utils"
)

// Open ouvre la connexion postgres avec le logger GORM harmonisé.
// Aucune connexion globale n'est conservée dans le package.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database URL not configured")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         utils.GetGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to the database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting the sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	utils.LogSuccess("Database connection successful")
	return conn, nil
}

// Migrate crée ou met à jour les tables creators et content_items
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.Creator{}, &models.ContentItem{}); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	utils.LogSuccess("Database migrated")
	return nil
}
