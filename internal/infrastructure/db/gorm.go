package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lookman/internal/config"
	"lookman/internal/domain/borrower"
	"lookman/internal/domain/loan"
	"lookman/internal/domain/payment"
	"lookman/internal/domain/profile"
	"lookman/internal/domain/user"
)

// OpenGorm connects to the configured database and applies pool settings.
func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var dial gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dial = mysql.Open(cfg.MySQLDSN())
	case "sqlite":
		dial = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown DB driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dial, gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Printf("gorm: connected (%s)", cfg.DBDriver)
	return db, nil
}

// Migrate creates or updates the schema for every domain model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&borrower.Borrower{},
		&loan.Loan{},
		&payment.Payment{},
		&profile.BorrowerProfile{},
		&profile.Document{},
		&profile.LoanApplication{},
	)
}
