// Package repositories selects and opens the configured key-value backend.
package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/finance_dashboard/internal/platform/config"
	"github.com/SscSPs/finance_dashboard/internal/repositories/database/pgsql"
	"github.com/SscSPs/finance_dashboard/internal/repositories/database/sqlite"
	"github.com/SscSPs/finance_dashboard/internal/repositories/kv"
	"github.com/SscSPs/finance_dashboard/pkg/database"
)

// OpenStore opens the backend named by cfg.StorageDriver, applies SQL migrations where
// relevant and wraps it so that it publishes change events. It returns a nil store for
// config.StorageNone. The returned close function is always safe to call.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.NotifyingStore, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.StorageNone:
		logger.Warn("Storage disabled; ledger and users will not be persisted")
		return nil, noop, nil

	case config.StorageMemory:
		return kv.NewNotifyingStore(kv.NewMemoryStore()), noop, nil

	case config.StorageSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		if _, err := database.RunMigrations(db, database.DialectSQLite, logger); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		logger.Info("SQLite store opened", slog.String("path", cfg.SQLitePath))
		closeFn := func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		}
		return kv.NewNotifyingStore(sqlite.NewKeyValueStore(db)), closeFn, nil

	case config.StoragePostgres:
		if err := migratePostgres(cfg.DatabaseURL, logger); err != nil {
			return nil, noop, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Database connection pool established.")
		return kv.NewNotifyingStore(pgsql.NewPgxKeyValueStore(pool)), func() { database.ClosePgxPool(pool) }, nil

	default:
		return nil, noop, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func migratePostgres(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := database.OpenMigrationDB(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	_, err = database.RunMigrations(migrationDB, database.DialectPostgres, logger)
	return err
}
