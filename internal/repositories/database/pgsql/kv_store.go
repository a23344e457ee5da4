package pgsql

import (
	"context"
	"errors"
	"fmt"

	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxKeyValueStore keeps key-value documents in the kv_store table.
type PgxKeyValueStore struct {
	db *pgxpool.Pool
}

// Ensure PgxKeyValueStore implements portsrepo.KeyValueStore
var _ portsrepo.KeyValueStore = (*PgxKeyValueStore)(nil)

func NewPgxKeyValueStore(db *pgxpool.Pool) *PgxKeyValueStore {
	return &PgxKeyValueStore{db: db}
}

func (r *PgxKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM kv_store WHERE key = $1;`

	var value string
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, true, nil
}

func (r *PgxKeyValueStore) Set(ctx context.Context, key string, value string) error {
	query := `
        INSERT INTO kv_store (key, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET
            value = EXCLUDED.value,
            updated_at = EXCLUDED.updated_at;
    `
	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (r *PgxKeyValueStore) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM kv_store WHERE key = $1;`
	if _, err := r.db.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}
