// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/platewise/internal/config"
	"github.com/tomtom215/platewise/internal/database"
	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/postgres"
	"github.com/tomtom215/platewise/internal/recommend"
	"github.com/tomtom215/platewise/internal/resilience"
	"github.com/tomtom215/platewise/internal/seed"
	"github.com/tomtom215/platewise/internal/supervisor/services"
)

// menuStore is what the commands need from a backend. Both the DuckDB and
// the PostgreSQL stores implement it.
type menuStore interface {
	recommend.RatedCatalogView
	recommend.OrderHistoryView
	seed.Writer
	services.ProbedStore
	Close() error
}

var (
	_ menuStore = (*database.DB)(nil)
	_ menuStore = (*postgres.Store)(nil)
)

// openStore opens the configured backend and returns it with its metrics label.
func openStore(ctx context.Context, cfg *config.DatabaseConfig) (menuStore, string, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		s, err := postgres.Connect(ctx, cfg)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to postgres: %w", err)
		}
		logging.Info().Msg("Connected to PostgreSQL")
		return s, postgres.Backend, nil
	default:
		db, err := database.New(cfg)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open duckdb: %w", err)
		}
		logging.Info().Str("path", cfg.Path).Msg("DuckDB opened")
		return db, database.Backend, nil
	}
}

func closeStore(s menuStore) {
	if err := s.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing store")
	}
}

// newEngine builds the engine over store, behind circuit breakers when
// they are enabled.
func newEngine(cfg *config.Config, store menuStore, opts ...recommend.Option) (*recommend.Engine, error) {
	engineCfg, err := cfg.ToEngineConfig()
	if err != nil {
		return nil, err
	}
	catalog := resilience.WrapCatalog(store, cfg.Recommend.Breaker)
	history := resilience.WrapHistory(store, cfg.Recommend.Breaker)
	return recommend.NewEngine(catalog, history, engineCfg, logging.Logger(), opts...)
}
