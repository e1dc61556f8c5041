package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationResult reports what Migrate did.
type MigrationResult struct {
	Applied bool `json:"applied"` // false when the schema was already current
	Version uint `json:"version"`
}

// Migrate applies every pending up migration of the ledger schema.
// It opens its own database/sql connection through the pgx stdlib driver.
func Migrate(databaseURL string) (MigrationResult, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return MigrationResult{}, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return MigrationResult{}, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return MigrationResult{}, fmt.Errorf("could not read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	version, dirty, verErr := m.Version()

	// Check for source and database errors after running Up.
	sourceErr, dbErr := m.Close()
	switch {
	case upErr != nil && !errors.Is(upErr, migrate.ErrNoChange):
		return MigrationResult{}, fmt.Errorf("failed to apply migrations: %w", upErr)
	case sourceErr != nil:
		return MigrationResult{}, fmt.Errorf("migration source error: %w", sourceErr)
	case dbErr != nil:
		return MigrationResult{}, fmt.Errorf("migration database error: %w", dbErr)
	case verErr != nil && !errors.Is(verErr, migrate.ErrNilVersion):
		return MigrationResult{}, fmt.Errorf("failed to read migration version: %w", verErr)
	case dirty:
		return MigrationResult{}, fmt.Errorf("database schema is dirty at version %d", version)
	}

	return MigrationResult{Applied: upErr == nil, Version: version}, nil
}
