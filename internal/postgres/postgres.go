// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package postgres is the PostgreSQL store for the menu catalog and order
// history, built on a pgx connection pool.
//
// Store implements the same views as the DuckDB store and is chosen with
// database.driver=postgres. List columns use native text[] arrays and bulk
// order loads go through COPY.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomtom215/platewise/internal/config"
	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/metrics"
)

// Backend is the metrics label of this store.
const Backend = "postgres"

const (
	connectRetries = 10
	retryDelay     = 2 * time.Second
	pingTimeout    = 5 * time.Second
)

// Store wraps a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pool for cfg.PostgresDSN, retrying until the server
// answers a ping or ctx ends, then applies the schema.
func Connect(ctx context.Context, cfg *config.DatabaseConfig) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}
	if cfg.PostgresMaxConns > 0 {
		poolCfg.MaxConns = cfg.PostgresMaxConns
	}

	log := logging.Component("postgres")
	var lastErr error
	for attempt := 1; attempt <= connectRetries; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err = pool.Ping(pctx)
			cancel()
			if err == nil {
				s := &Store{pool: pool}
				if err := s.EnsureSchema(ctx); err != nil {
					pool.Close()
					return nil, err
				}
				log.Info().Int32("max_conns", poolCfg.MaxConns).Msg("Postgres store connected")
				return s, nil
			}
			pool.Close()
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("Postgres not reachable, retrying")

		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("postgres connect canceled: %w", ctx.Err())
		}
	}
	return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", connectRetries, lastErr)
}

// NewWithPool wraps an existing pool without touching the schema.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Ping checks a pooled connection.
func (s *Store) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.pool.Ping(ctx)
	metrics.RecordStoreQuery(Backend, "ping", time.Since(start), err)
	return err
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

var schemaQueries = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		id TEXT PRIMARY KEY,
		position BIGSERIAL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		sub_category TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		spice_level TEXT NOT NULL DEFAULT '',
		ingredients TEXT[] NOT NULL DEFAULT '{}',
		allergens TEXT[] NOT NULL DEFAULT '{}',
		rating_average DOUBLE PRECISION NOT NULL DEFAULT 0,
		rating_count INTEGER NOT NULL DEFAULT 0,
		available BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_menu_items_rating
		ON menu_items (rating_average DESC, rating_count DESC, position) WHERE available`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer_created ON orders (customer_id, created_at DESC, id DESC)`,
	`CREATE TABLE IF NOT EXISTS order_lines (
		order_id TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		line_no INTEGER NOT NULL,
		menu_item_id TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		item_name TEXT NOT NULL DEFAULT '',
		item_category TEXT NOT NULL DEFAULT '',
		item_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (order_id, line_no)
	)`,
}

// EnsureSchema creates the tables and indexes if they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, q := range schemaQueries {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
