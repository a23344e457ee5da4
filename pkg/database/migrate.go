package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

//go:embed migrations
var migrationFiles embed.FS

// Dialect selects the migration set and migrate driver.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// OpenMigrationDB opens a database/sql handle suitable for RunMigrations on PostgreSQL,
// using the pgx stdlib driver so it matches the application pool.
func OpenMigrationDB(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database for migrations: %w", err)
	}
	return db, nil
}

// RunMigrations applies every pending "up" migration embedded for dialect. The caller keeps
// ownership of db. It reports whether anything was applied.
func RunMigrations(db *sql.DB, dialect Dialect, logger *slog.Logger) (bool, error) {
	var (
		driver database.Driver
		dir    string
		err    error
	)
	switch dialect {
	case DialectPostgres:
		dir = "migrations/postgres"
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case DialectSQLite:
		dir = "migrations/sqlite"
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		return false, fmt.Errorf("unsupported migration dialect %q", dialect)
	}
	if err != nil {
		return false, fmt.Errorf("could not create %s driver instance for migrations: %w", dialect, err)
	}

	source, err := iofs.New(migrationFiles, dir)
	if err != nil {
		return false, fmt.Errorf("could not load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, string(dialect), driver)
	if err != nil {
		return false, fmt.Errorf("could not create migrate instance: %w", err)
	}

	logger.Info("Running database migrations...", slog.String("dialect", string(dialect)))
	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return false, fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	// Closing the source only; the database handle belongs to the caller.
	if srcErr := source.Close(); srcErr != nil {
		return false, fmt.Errorf("migration source error: %w", srcErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
		return false, nil
	}
	logger.Info("Database migrations applied successfully.")
	return true, nil
}
