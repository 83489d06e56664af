package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores entries in the kv_entries table created by migrations/0001_kv_entries.sql.
type Postgres struct {
	DB *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{DB: pool}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.DB.QueryRow(ctx, "SELECT value FROM kv_entries WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.DB.Exec(ctx, `
    INSERT INTO kv_entries (key, value)
    VALUES ($1, $2)
    ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
  `, key, value)
	return err
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.DB.Ping(ctx)
}

func (p *Postgres) Close() error {
	p.DB.Close()
	return nil
}

// Lock takes a session-level advisory lock on a dedicated connection. The
// connection goes back to the pool when unlock runs.
func (p *Postgres) Lock(ctx context.Context, name string) (func(), error) {
	conn, err := p.DB.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock(hashtext($1))", name); err != nil {
		conn.Release()
		return nil, fmt.Errorf("%w: %v", ErrLockNotAcquired, err)
	}
	return func() {
		_, _ = conn.Exec(context.Background(), "SELECT pg_advisory_unlock(hashtext($1))", name)
		conn.Release()
	}, nil
}
