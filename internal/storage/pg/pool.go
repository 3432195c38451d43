// Package pg owns the database connection pool. The pool is the sole gateway
// to the database and, because nothing else bounds fan-out, the de facto
// concurrency limiter for the whole engine.
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultMaxConns       = 10
	DefaultAcquireTimeout = 30 * time.Second
	DefaultIdleTimeout    = 5 * time.Minute
)

type PoolConfig struct {
	ConnStr        string
	MaxConns       int32
	AcquireTimeout time.Duration
	IdleTimeout    time.Duration
}

type ConnectionPool struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

func NewConnectionPool(ctx context.Context, cfg PoolConfig) (*ConnectionPool, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	pc.MaxConns = cfg.MaxConns
	if pc.MaxConns <= 0 {
		pc.MaxConns = DefaultMaxConns
	}
	pc.MaxConnIdleTime = cfg.IdleTimeout
	if pc.MaxConnIdleTime <= 0 {
		pc.MaxConnIdleTime = DefaultIdleTimeout
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	acquireTimeout := cfg.AcquireTimeout
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}

	return &ConnectionPool{pool: dbpool, acquireTimeout: acquireTimeout}, nil
}

// Acquire checks a connection out of the pool, waiting at most the configured
// acquire timeout for one to become available. Callers beyond MaxConns block
// until a connection is released or the timeout elapses.
func (p *ConnectionPool) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	conn, err := p.pool.Acquire(acquireCtx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return conn, nil
}

func (p *ConnectionPool) Ping(ctx context.Context) error {
	c, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer c.Release()
	return c.Ping(ctx)
}

// Stat exposes the underlying pool counters, used to verify that executions
// return their connections.
func (p *ConnectionPool) Stat() *pgxpool.Stat {
	return p.pool.Stat()
}

// Exec runs a single statement on a pooled connection outside any benchmark
// transaction. Intended for setup done by callers that must persist.
func (p *ConnectionPool) Exec(ctx context.Context, sql string, args ...any) error {
	c, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer c.Release()

	if _, err := c.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}

func (p *ConnectionPool) Close() {
	p.pool.Close()
}
