package repository

import (
	"fmt"

	"auction-marketplace/internal/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the configured database. SQLite in-memory databases are
// pinned to a single connection so every query sees the same data.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("open %s database: %w", driver, err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate brings the schema up to date
func Migrate(db *gorm.DB) error {
	migration := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202410010001_create_profiles",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Profile{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("profiles")
			},
		},
		{
			ID: "202410010002_create_auctions",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Auction{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("auctions")
			},
		},
		{
			ID: "202410010003_create_bids",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Bid{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("bids")
			},
		},
	})

	if err := migration.Migrate(); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
