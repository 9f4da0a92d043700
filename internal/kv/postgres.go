package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxConn is the subset of *pgxpool.Pool the postgres storage needs
type pgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresStorage struct {
	db pgxConn
}

// NewPostgresStorage keeps slots as rows of the kv_slots table
func NewPostgresStorage(db pgxConn) Storage {
	return &postgresStorage{
		db: db,
	}
}

// EnsureSchema creates the kv_slots table when it does not exist yet
func EnsureSchema(ctx context.Context, db pgxConn) error {
	query := `
	CREATE TABLE IF NOT EXISTS kv_slots (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create kv_slots table: %w", err)
	}
	return nil
}

func (r *postgresStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM kv_slots WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get slot %s: %w", key, err)
	}

	return value, true, nil
}

func (r *postgresStorage) Set(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO kv_slots (key, value, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (key)
	DO UPDATE SET value = $2, updated_at = now()`
	_, err := r.db.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", key, err)
	}

	return nil
}

func (r *postgresStorage) Delete(ctx context.Context, key string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM kv_slots WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}

	return nil
}
