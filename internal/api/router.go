// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route and middleware.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5, "application/json"))
	r.Use(mw.CORS())

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1/recommendations", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(PrometheusMetrics)

		r.Get("/personalized/{userID}", h.Personalized)
		r.Get("/similar/{itemID}", h.Similar)
		r.Get("/category/{category}", h.Category)
		r.Get("/time-slot", h.TimeSlot)
		r.Get("/popular", h.Popular)
		r.Get("/mixed/{userID}", h.Mixed)
		r.Get("/guest", h.Guest)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
