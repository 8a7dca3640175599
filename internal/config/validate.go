// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks the configuration for errors. The recommend section is
// validated again by the engine once converted.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateSeed()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server read and write timeouts must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverDuckDB:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the duckdb driver")
		}
		if c.Database.Threads < 0 {
			return fmt.Errorf("database.threads must be non-negative, got %d", c.Database.Threads)
		}
	case DriverPostgres:
		if c.Database.PostgresDSN == "" {
			return fmt.Errorf("database.postgres_dsn is required for the postgres driver")
		}
		if c.Database.PostgresMaxConns < 1 {
			return fmt.Errorf("database.postgres_max_conns must be positive, got %d", c.Database.PostgresMaxConns)
		}
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverDuckDB, DriverPostgres, c.Database.Driver)
	}
	if c.Database.ProbeInterval < time.Second {
		return fmt.Errorf("database.probe_interval must be at least 1s, got %s", c.Database.ProbeInterval)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultLimit < 1 {
		return fmt.Errorf("recommend.default_limit must be positive, got %d", r.DefaultLimit)
	}
	if r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("recommend.max_limit (%d) must be at least default_limit (%d)", r.MaxLimit, r.DefaultLimit)
	}
	if _, err := time.LoadLocation(r.TimeZone); err != nil {
		return fmt.Errorf("recommend.time_zone %q is not a known zone: %w", r.TimeZone, err)
	}
	if _, err := c.ToEngineConfig(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return c.validateBreaker()
}

func (c *Config) validateBreaker() error {
	b := c.Recommend.Breaker
	if !b.Enabled {
		return nil
	}
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("recommend.breaker.failure_ratio must be in (0, 1], got %f", b.FailureRatio)
	}
	if b.MaxRequests < 1 {
		return fmt.Errorf("recommend.breaker.max_requests must be positive")
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("recommend.breaker.timeout must be positive, got %s", b.Timeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled", "off":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateSeed() error {
	s := c.Seed
	if s.MenuItems < 1 || s.Customers < 0 || s.OrdersPerCustomer < 0 {
		return fmt.Errorf("seed sizes must be non-negative with at least one menu item")
	}
	if s.Days < 1 {
		return fmt.Errorf("seed.days must be positive, got %d", s.Days)
	}
	return nil
}
