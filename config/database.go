package config

import (
	"fmt"
	"time"

	"allure-backend/models"

	"github.com/romana/rlog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	rlog.Info("Database connected")
	return db, nil
}

// Migrate creates the tables and the order number sequence.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.DesignImage{},
		&models.BoutiqueSettings{},
		&models.PushSubscription{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS order_number_seq START 1").Error; err != nil {
		return fmt.Errorf("create order number sequence: %w", err)
	}
	return nil
}
