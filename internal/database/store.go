// Package database owns the pooled Postgres connection and every
// parameterized statement issued against it.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fittrack-backend/internal/config"
)

var (
	// ErrNotFound is returned when a requested row does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on a unique-constraint conflict
	ErrDuplicate = errors.New("already exists")
)

// Store wraps the bounded connection pool. It is constructed once in main
// and handed to each repository explicitly; there is no ambient handle.
type Store struct {
	pool *pgxpool.Pool
}

// Open builds the pool from the configured connection parameters and
// verifies the database is reachable. Pool capacity is fixed at
// cfg.PoolSize; statements check a connection out only for their own
// duration.
func Open(ctx context.Context, cfg config.DB) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.PoolSize)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the pool
func (s *Store) Close() {
	s.pool.Close()
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// failure (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
