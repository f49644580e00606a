// Package postgres persists combatant snapshots in PostgreSQL via pgx v5.
// The game keeps every entity in memory during play; this layer only has to
// absorb the write-behind saves after tactics changes, deaths, and respawns,
// and to rehydrate entities on login.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ethereal-veil/mud/internal/config"
)

// pingTimeout bounds the connectivity check at construction. A snapshot
// store that cannot answer in five seconds is not going to keep up with
// combat saves either.
const pingTimeout = 5 * time.Second

// Pool owns the pgx connection pool shared by the snapshot repositories.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the database described by cfg and verifies it is
// reachable before handing the pool out.
//
// Postcondition: on nil error the pool has served at least one round trip.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Pool{pool: pool}, nil
}

// Health reports whether the database answers within the given timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close releases all pool resources. The pool is unusable afterwards.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB exposes the underlying pool to the repositories in this package.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
