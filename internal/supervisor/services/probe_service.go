// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package services

import (
	"context"
	"time"

	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/metrics"
)

// ProbedStore is the part of a menu store the probe needs. Both the DuckDB
// and the PostgreSQL stores satisfy it.
type ProbedStore interface {
	Ping(ctx context.Context) error
	CountAvailable(ctx context.Context) (int, error)
}

// StoreProbeService periodically checks the store and publishes its
// health as metrics.
type StoreProbeService struct {
	store    ProbedStore
	backend  string
	interval time.Duration
	timeout  time.Duration
}

// NewStoreProbeService creates a probe for store. backend is the metrics
// label. A non-positive interval means 30s.
func NewStoreProbeService(store ProbedStore, backend string, interval time.Duration) *StoreProbeService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	timeout := interval / 2
	if timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &StoreProbeService{
		store:    store,
		backend:  backend,
		interval: interval,
		timeout:  timeout,
	}
}

// Serve probes once immediately and then on every tick until ctx is done.
func (p *StoreProbeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Probe(ctx)
		}
	}
}

// Probe runs one check and reports whether the store answered.
func (p *StoreProbeService) Probe(ctx context.Context) bool {
	log := logging.Component("store-probe")

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.store.Ping(ctx)
	metrics.RecordStorePing(p.backend, err)
	if err != nil {
		log.Warn().Err(err).Str("backend", p.backend).Msg("store ping failed")
		return false
	}

	n, err := p.store.CountAvailable(ctx)
	if err != nil {
		log.Warn().Err(err).Str("backend", p.backend).Msg("counting available items failed")
		return false
	}
	metrics.CatalogAvailableItems.Set(float64(n))
	log.Debug().Int("available_items", n).Msg("store probe ok")
	return true
}

func (p *StoreProbeService) String() string {
	return "store-probe"
}
