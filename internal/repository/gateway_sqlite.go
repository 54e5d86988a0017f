package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GatewaySQLite stores each key as one row of the kv_store table.
type GatewaySQLite struct {
	db *sql.DB
}

func NewGatewaySQLite(db *sql.DB) *GatewaySQLite {
	return &GatewaySQLite{db: db}
}

var _ Gateway = (*GatewaySQLite)(nil)

const (
	upsertValueSQL = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`

	selectValueSQL = `SELECT value FROM kv_store WHERE key=?`

	deleteValueSQL = `DELETE FROM kv_store WHERE key=?`
)

// Load fetches the value stored under key.
func (g *GatewaySQLite) Load(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	var value string
	if err := g.db.QueryRowContext(ctx, selectValueSQL, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select %q: %w", key, err)
	}
	return value, true, nil
}

// Save inserts or replaces the value under key.
func (g *GatewaySQLite) Save(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if _, err := g.db.ExecContext(ctx, upsertValueSQL, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

// Remove deletes the key. Removing a missing key is not an error.
func (g *GatewaySQLite) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if _, err := g.db.ExecContext(ctx, deleteValueSQL, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
