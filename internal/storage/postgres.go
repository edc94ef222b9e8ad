package storage

import (
	"context"
	"fmt"

	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresClient struct {
	pool *pgxpool.Pool
}

func NewPostgresClient(ctx context.Context, cfg config.DatabaseConfig) (*PostgresClient, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	// Connection testen
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{pool: pool}, nil
}

func (p *PostgresClient) Close() {
	p.pool.Close()
}

func (p *PostgresClient) Pool() *pgxpool.Pool {
	return p.pool
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id          UUID PRIMARY KEY,
		serial_id   TEXT NOT NULL,
		address     TEXT NOT NULL,
		driver      TEXT NOT NULL,
		phase       TEXT NOT NULL,
		family      TEXT NOT NULL,
		has_addon   BOOLEAN NOT NULL DEFAULT FALSE,
		obfuscated  BOOLEAN NOT NULL DEFAULT FALSE,
		inventory   JSONB NOT NULL,
		started_at  TIMESTAMPTZ NOT NULL,
		ended_at    TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS readings (
		id          BIGSERIAL PRIMARY KEY,
		session_id  UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		node        TEXT NOT NULL,
		register    TEXT NOT NULL,
		port        INTEGER,
		value       DOUBLE PRECISION,
		text        TEXT NOT NULL,
		read_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS readings_register_read_at_idx ON readings (register, read_at DESC)`,
	`CREATE INDEX IF NOT EXISTS readings_session_idx ON readings (session_id, read_at DESC)`,
}

// Migrate creates the tables when missing.
func (p *PostgresClient) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
