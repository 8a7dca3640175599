// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package resilience wraps the store views in circuit breakers.
//
// When the catalog or history store keeps failing, the breaker opens and
// calls fail fast with a *OpenError instead of waiting on a sick database.
// The engine treats that like any other read failure and serves its
// fallback. A missing dish (models.ErrNotFound) and a caller that gave up
// (context.Canceled) count as successes so they never trip a breaker.
//
// Breakers use real time for their interval and timeout. Tests drive them
// through failures rather than a fake clock.
package resilience

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/platewise/internal/config"
	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/metrics"
	"github.com/tomtom215/platewise/internal/models"
)

// OpenError is returned when a breaker rejects a call.
type OpenError struct {
	Name string
	Err  error // gobreaker.ErrOpenState or gobreaker.ErrTooManyRequests
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("circuit breaker %s: %v", e.Name, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// ErrorType labels rejected calls in the store and fallback metrics.
func (e *OpenError) ErrorType() string {
	return "circuit_open"
}

// Breaker is a named circuit breaker with metrics and logging.
type Breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[any]
}

// NewBreaker builds a breaker from cfg. It opens once MinRequests calls
// have been seen in the current interval and the failure ratio reaches
// FailureRatio.
func NewBreaker(name string, cfg config.BreakerConfig) *Breaker {
	log := logging.Component("resilience")

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.FailureRatio {
				log.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("Opening circuit")
				return true
			}
			return false
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &Breaker{name: name, cb: cb}
}

// Name returns the breaker name.
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func isSuccessful(err error) bool {
	return err == nil || errors.Is(err, models.ErrNotFound) || errors.Is(err, context.Canceled)
}

// run executes fn through b.
func run[T any](b *Breaker, fn func() (T, error)) (T, error) {
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})

	var zero T
	switch {
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		return zero, &OpenError{Name: b.name, Err: err}
	case err != nil && !isSuccessful(err):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).
			Set(float64(b.cb.Counts().ConsecutiveFailures))
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	}

	typed, ok := result.(T)
	if !ok {
		return zero, err
	}
	return typed, err
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
