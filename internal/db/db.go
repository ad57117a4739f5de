package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"airrental-backend/config"
	"airrental-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	if cfg.SeedCatalog {
		if err := SeedCatalog(db); err != nil {
			return nil, fmt.Errorf("catalog seed failed: %w", err)
		}
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// Migrate runs AutoMigrate for every entity. Shared with tests so the schema
// has a single source of truth.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Room{},
		&model.DeviceType{},
		&model.DeviceInstance{},
		&model.CustomerOrder{},
		&model.OrderRoom{},
		&model.OrderRoomDeviceType{},
		&model.OrderDevice{},
		&model.DeviceMetric{},
		&model.PaymentCard{},
		&model.Payment{},
		&model.Subscription{},
		&model.Investment{},
		&model.InvestmentStatSnapshot{},
	)
}
