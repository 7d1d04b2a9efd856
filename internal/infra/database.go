package infra

import (
	"fmt"

	"dukaledger/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for the ledger schema.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates or updates all tables. gen_random_uuid needs pgcrypto
// on Postgres < 13, so the extension is ensured first.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	if err := db.AutoMigrate(
		&model.Item{},
		&model.Batch{},
		&model.Movement{},
		&model.LossRecord{},
		&model.Shift{},
		&model.CompanyProfile{},
	); err != nil {
		return err
	}
	// One open shift per (date, type): the application checks before creating,
	// but the partial unique index closes the check-then-create race.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_open_slot
		ON shifts (shift_date, shift_type) WHERE status = 'open'`).Error
}
