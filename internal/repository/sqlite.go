package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/accountkeeper/internal/db"
)

// SQLiteKVRepository stores key-value pairs in a local SQLite database.
type SQLiteKVRepository struct {
	db *db.SQLite
}

// NewSQLiteKVRepository creates a repository on an opened, migrated database.
func NewSQLiteKVRepository(sqlite *db.SQLite) *SQLiteKVRepository {
	return &SQLiteKVRepository{db: sqlite}
}

// Get fetches the value stored under key; ok is false when none exists.
func (r *SQLiteKVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM kv_store WHERE key = ?`
	var value string
	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores or replaces the value for key.
func (r *SQLiteKVRepository) Set(ctx context.Context, key, value string) error {
	const query = `INSERT OR REPLACE INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`
	if _, err := r.db.Writer.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
