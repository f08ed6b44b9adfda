// Package database provides PostgreSQL connection management using pgx.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/config"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/logger"
)

const connectAttempts = 5

// NewPool creates and validates a pgxpool connection pool.
// It retries a few times to accommodate containers starting up.
func NewPool(ctx context.Context, cfg config.Database, log *logger.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		log.Warn("db connect attempt failed", "attempt", attempt, "of", connectAttempts, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return nil, fmt.Errorf("connect to postgres: %w", err)
}

const schema = `
CREATE TABLE IF NOT EXISTS phases (
	id          TEXT PRIMARY KEY,
	number      TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	date        TEXT NOT NULL,
	tag         TEXT NOT NULL,
	reward      TEXT NOT NULL,
	position    INT  NOT NULL
);

CREATE TABLE IF NOT EXISTS registrations (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL UNIQUE,
	quest_class TEXT NOT NULL,
	innovation  DOUBLE PRECISION NOT NULL CHECK (innovation BETWEEN 0 AND 100),
	resilience  DOUBLE PRECISION NOT NULL CHECK (resilience BETWEEN 0 AND 100),
	leadership  DOUBLE PRECISION NOT NULL CHECK (leadership BETWEEN 0 AND 100),
	risk_taking DOUBLE PRECISION NOT NULL CHECK (risk_taking BETWEEN 0 AND 100),
	bio         TEXT NOT NULL,
	avatar_url  TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
`

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
