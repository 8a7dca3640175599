// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/platewise/internal/metrics"
)

type fakeStore struct {
	pingErr  error
	countErr error
	count    int
	pings    atomic.Int32
}

func (f *fakeStore) Ping(context.Context) error {
	f.pings.Add(1)
	return f.pingErr
}

func (f *fakeStore) CountAvailable(context.Context) (int, error) {
	return f.count, f.countErr
}

func TestStoreProbe_Probe(t *testing.T) {
	tests := []struct {
		name     string
		store    *fakeStore
		wantOK   bool
		wantUp   float64
		wantSeen float64
	}{
		{"healthy", &fakeStore{count: 42}, true, 1, 42},
		{"ping fails", &fakeStore{pingErr: errors.New("conn refused"), count: 7}, false, 0, 42},
		{"count fails", &fakeStore{countErr: errors.New("timeout"), count: 7}, false, 1, 42},
	}
	// Cases run in order: the gauge keeps the last successful count.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := NewStoreProbeService(tt.store, "probe-test", time.Minute)
			if ok := probe.Probe(context.Background()); ok != tt.wantOK {
				t.Errorf("Probe = %v, want %v", ok, tt.wantOK)
			}
			if got := testutil.ToFloat64(metrics.StoreUp.WithLabelValues("probe-test")); got != tt.wantUp {
				t.Errorf("store_up = %v, want %v", got, tt.wantUp)
			}
			if got := testutil.ToFloat64(metrics.CatalogAvailableItems); got != tt.wantSeen {
				t.Errorf("available items = %v, want %v", got, tt.wantSeen)
			}
		})
	}
}

func TestStoreProbe_ServeTicks(t *testing.T) {
	store := &fakeStore{count: 3}
	probe := NewStoreProbeService(store, "probe-tick", 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- probe.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for store.pings.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("only %d probes ran", store.pings.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve = %v, want context.Canceled", err)
	}
}

func TestNewStoreProbeService_Defaults(t *testing.T) {
	p := NewStoreProbeService(&fakeStore{}, "x", 0)
	if p.interval != 30*time.Second || p.timeout != 5*time.Second {
		t.Errorf("interval %v timeout %v", p.interval, p.timeout)
	}
	if p.String() != "store-probe" {
		t.Errorf("String = %q", p.String())
	}
}
