package config

import (
	"time"

	"github.com/yoockh/bikeparts/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgres opens the audit database and migrates its single table.
func NewPostgres(s *Settings) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(s.PostgresURI), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.AutoMigrate(&models.AuditEntry{}); err != nil {
		return nil, err
	}
	return db, nil
}
