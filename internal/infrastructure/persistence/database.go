package persistence

import (
	"fmt"
	"time"

	"github.com/rentops/backend/internal/domain/crm"
	"github.com/rentops/backend/internal/domain/finance"
	"github.com/rentops/backend/internal/domain/fleet"
	"github.com/rentops/backend/internal/domain/integration"
	"github.com/rentops/backend/internal/domain/org"
	"github.com/rentops/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database wraps a GORM connection. Repositories receive the handle
// through their constructors rather than reaching for a global.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a Postgres connection with the given configuration
func NewDatabase(cfg *config.DatabaseConfig, gl gormlogger.Interface) (*Database, error) {
	if gl == nil {
		gl = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gl,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// NewSQLiteDatabase opens an in-memory SQLite database. Used by tests
// and local tooling.
func NewSQLiteDatabase() (*Database, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return &Database{DB: db}, nil
}

// AutoMigrate creates or updates the schema for every aggregate
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&org.Organization{},
		&org.OrganizationSettings{},
		&org.Branch{},
		&org.User{},
		&crm.CustomerProfile{},
		&crm.Contract{},
		&crm.CommunicationLog{},
		&fleet.Vehicle{},
		&finance.Invoice{},
		&finance.Expense{},
		&finance.Revenue{},
		&finance.FinancialTransaction{},
		&finance.PaymentMethod{},
		&finance.TaxRate{},
		&integration.IntegrationConfig{},
		&integration.FieldMapping{},
		&integration.ImportJob{},
	)
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Transaction executes a function within a database transaction
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}
