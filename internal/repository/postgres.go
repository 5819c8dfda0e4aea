// Package repository provides database-backed implementations of the
// durable key-value store used by the account service.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// PostgresKVRepository stores key-value pairs in the kv_store table of a
// PostgreSQL database.
type PostgresKVRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
	// now is replaceable in tests.
	now func() time.Time
}

// NewPostgresKVRepository creates a repository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance with the kv_store
// table in place (see db.InitPostgres).
func NewPostgresKVRepository(db *sql.DB) *PostgresKVRepository {
	return &PostgresKVRepository{DB: db, now: time.Now}
}

// Get fetches the value stored under key.
//
//	ctx: context for cancellation and deadlines
//	key: storage key
//
// Returns ok=false when no row exists for key.
func (r *PostgresKVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, `
		SELECT value FROM kv_store WHERE key = $1
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, describe(err))
	}
	return value, true, nil
}

// Set inserts the value for key, replacing any previous value.
func (r *PostgresKVRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value, r.now().Unix())
	if err != nil {
		return fmt.Errorf("set %q: %w", key, describe(err))
	}
	return nil
}

// describe adds the PostgreSQL error code to server-side errors.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (%s): %w", pqErr.Code.Name(), pqErr.Code, err)
	}
	return err
}
