package infra

import (
	"fmt"

	"github.com/LeZelote01/stock-manager/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for the full schema. The per-material decrement relies on
// PostgreSQL row-level atomicity of single UPDATE statements, so no custom
// DDL is needed beyond what AutoMigrate produces.
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

// RunMigrations creates / updates all tables. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Materiel{},
		&model.Agent{},
		&model.Superviseur{},
		&model.ChefSection{},
		&model.DemandeSortie{},
		&model.LigneDemande{},
		&model.MouvementStock{},
	)
}
