// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package metrics defines the Prometheus collectors exported at /metrics.
//
// Collectors are registered on the default registry through promauto. Callers
// use the Record* helpers rather than the vectors directly so label sets stay
// consistent.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/platewise/internal/models"
)

var (
	// Recommendation metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platewise_recommendations_total",
			Help: "Recommendation queries by operation and outcome",
		},
		[]string{"operation", "outcome"}, // outcome: personalized, cold_start, fallback, success, error
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "platewise_recommendation_duration_seconds",
			Help:    "Time to compute one recommendation query",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	RecommendationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platewise_recommendation_fallbacks_total",
			Help: "Read failures absorbed by the popularity fallback or a degraded section",
		},
		[]string{"operation", "reason"},
	)

	CatalogAvailableItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "platewise_catalog_available_items",
			Help: "Available menu items seen by the last store probe",
		},
	)

	// Store metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "platewise_store_query_duration_seconds",
			Help:    "Duration of catalog and order history queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platewise_store_query_errors_total",
			Help: "Failed catalog and order history queries",
		},
		[]string{"backend", "operation", "error_type"},
	)

	StoreUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "platewise_store_up",
			Help: "1 when the last store ping succeeded",
		},
		[]string{"backend"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "In-flight HTTP requests",
		},
	)

	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordStoreQuery records one catalog or history query.
func RecordStoreQuery(backend, operation string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(backend, operation, ErrorType(err)).Inc()
	}
}

// RecordStorePing sets the store_up gauge.
func RecordStorePing(backend string, err error) {
	if err != nil {
		StoreUp.WithLabelValues(backend).Set(0)
		return
	}
	StoreUp.WithLabelValues(backend).Set(1)
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// ErrorType buckets an error into a low-cardinality label value.
func ErrorType(err error) string {
	var typed interface{ ErrorType() string }
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &typed):
		return typed.ErrorType()
	default:
		return "other"
	}
}

// EngineRecorder feeds recommendation engine observations into the
// recommendation collectors.
type EngineRecorder struct{}

// ObserveRecommendation records one completed query.
func (EngineRecorder) ObserveRecommendation(operation, outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(operation, outcome).Inc()
	RecommendationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveFallback records a read failure absorbed by the engine.
func (EngineRecorder) ObserveFallback(operation string, cause error) {
	RecommendationFallbacks.WithLabelValues(operation, ErrorType(cause)).Inc()
}
