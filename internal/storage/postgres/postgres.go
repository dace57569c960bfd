package postgres

import (
	"context"
	"errors"
	"fmt"
	"moviehub/proj/internal/storage"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresDB struct {
	Conn *pgxpool.Pool
}

const ErrUndefinedTableCode = "42P01"

func New(ctx context.Context, dsn string, maxConns int, maxConnIdleTime time.Duration) (*PostgresDB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MaxConnIdleTime = maxConnIdleTime
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresDB{Conn: pool}, nil
}

// Migrate creates the key-value table if it does not exist yet.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	_, err := db.Conn.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        text PRIMARY KEY,
		value      text NOT NULL,
		updated_at timestamptz NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("%w: migrate: %w", storage.ErrStorage, err)
	}
	return nil
}

func (db *PostgresDB) Get(ctx context.Context, key string) (string, error) {
	rows, _ := db.Conn.Query(ctx, "SELECT value FROM kv_store WHERE key = $1", key)
	value, err := pgx.CollectOneRow(rows, pgx.RowTo[string])
	if err != nil {
		var pgxErr *pgconn.PgError
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return "", storage.ErrNotFound
		case errors.As(err, &pgxErr) && pgxErr.Code == ErrUndefinedTableCode:
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}
	return value, nil
}

func (db *PostgresDB) Set(ctx context.Context, key, value string) error {
	_, err := db.Conn.Exec(
		ctx,
		`INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}
	return nil
}

func (db *PostgresDB) Close() {
	db.Conn.Close()
}
