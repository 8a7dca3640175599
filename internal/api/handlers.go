// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package api

import (
	"context"
	"time"

	"github.com/tomtom215/platewise/internal/config"
	"github.com/tomtom215/platewise/internal/recommend"
)

// requestTimeout bounds the store work of one request.
const requestTimeout = 10 * time.Second

// Pinger is the readiness check of the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the dependencies of every HTTP handler.
type Handler struct {
	engine       *recommend.Engine
	store        Pinger
	defaultLimit int
	maxLimit     int
	startTime    time.Time
}

// NewHandler creates the handler set. store may be nil, in which case the
// service never reports ready.
func NewHandler(engine *recommend.Engine, store Pinger, cfg *config.RecommendConfig) *Handler {
	return &Handler{
		engine:       engine,
		store:        store,
		defaultLimit: cfg.DefaultLimit,
		maxLimit:     cfg.MaxLimit,
		startTime:    time.Now(),
	}
}
