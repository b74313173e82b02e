// Package postgres probes the relational store that sits next to the graph database.
// Nothing in the read path queries it; it only takes part in readiness.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const serverVersionQuery = `SHOW server_version`

// DBPool is the subset of *pgxpool.Pool the readiness probe uses
type DBPool interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// NewPool opens a small pool for probing
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres url: %w", err)
	}
	cfg.MaxConns = 2
	cfg.MinConns = 0
	cfg.MaxConnIdleTime = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	return pool, nil
}

// Readiness checks that Postgres accepts queries
type Readiness struct {
	pool    DBPool
	timeout time.Duration
	logger  *zap.Logger
}

// NewReadiness creates a readiness probe; a zero timeout defaults to two seconds
func NewReadiness(pool DBPool, timeout time.Duration, logger *zap.Logger) *Readiness {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Readiness{
		pool:    pool,
		timeout: timeout,
		logger:  logger.Named("postgres"),
	}
}

// Ping checks the pool within the probe timeout
func (r *Readiness) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.pool.Ping(ctx); err != nil {
		r.logger.Warn("Postgres ping failed", zap.Error(err))
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

// ServerVersion reports the server version string
func (r *Readiness) ServerVersion(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var version string
	if err := r.pool.QueryRow(ctx, serverVersionQuery).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to read server version: %w", err)
	}
	return version, nil
}

// Close releases the pool
func (r *Readiness) Close() {
	r.pool.Close()
}
