package database

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"carreramedico/pkg/logger"
)

// NewPool creates a pgx connection pool for PostgreSQL. The first ping is
// retried so the service can start alongside its database container.
func NewPool(ctx context.Context, dsn string, lggr logger.Logger) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	err = retry.Do(
		func() error { return pool.Ping(ctx) },
		retry.Context(ctx),
		retry.Attempts(10),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(10*time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			lggr.Warnw("database not ready", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	lggr.Infow("✅ PostgreSQL connected", "host", cfg.ConnConfig.Host, "database", cfg.ConnConfig.Database)
	return pool, nil
}

// Open connects to dsn, waiting for the database to accept connections, and
// then applies pending migrations.
func Open(ctx context.Context, dsn string, lggr logger.Logger) (*pgxpool.Pool, error) {
	pool, err := NewPool(ctx, dsn, lggr)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(dsn, lggr.Named("migrate")); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
