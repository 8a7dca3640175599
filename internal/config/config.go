// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package config loads Platewise configuration.
//
// Values are layered with koanf: struct defaults, then an optional YAML file
// (CONFIG_PATH or config.yaml in the working directory or /etc/platewise),
// then environment variables. Only the variables listed in envTransformFunc
// are read, so unrelated environment never leaks into the config.
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	database:
//	  driver: postgres
//	  postgres_dsn: postgres://platewise@db/platewise
//	recommend:
//	  time_zone: Asia/Kolkata
//	  mixed_shares:
//	    personalized: 50
//	    time_based: 25
//	    popular: 25
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/platewise/internal/recommend"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Seed      SeedConfig      `koanf:"seed"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Supported database drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects and tunes the catalog and order history store.
type DatabaseConfig struct {
	// Driver is duckdb (embedded, default) or postgres.
	Driver string `koanf:"driver"`

	// DuckDB settings. Path ":memory:" keeps everything in RAM.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`

	// Postgres settings.
	PostgresDSN      string `koanf:"postgres_dsn"`
	PostgresMaxConns int32  `koanf:"postgres_max_conns"`

	// ProbeInterval is how often the supervised probe pings the store.
	ProbeInterval time.Duration `koanf:"probe_interval"`
}

// RecommendConfig tunes the recommendation engine and its HTTP surface.
type RecommendConfig struct {
	HistoryLimit int    `koanf:"history_limit"`
	DefaultLimit int    `koanf:"default_limit"`
	MaxLimit     int    `koanf:"max_limit"`
	TimeZone     string `koanf:"time_zone"`

	Weights     WeightsConfig     `koanf:"weights"`
	MixedShares MixedSharesConfig `koanf:"mixed_shares"`
	GuestShares GuestSharesConfig `koanf:"guest_shares"`
	Similar     SimilarConfig     `koanf:"similar"`
	Breaker     BreakerConfig     `koanf:"breaker"`
}

// WeightsConfig are the seven scoring weights. They must sum to 1.
type WeightsConfig struct {
	Category    float64 `koanf:"category"`
	SubCategory float64 `koanf:"sub_category"`
	Price       float64 `koanf:"price"`
	Spice       float64 `koanf:"spice"`
	Rating      float64 `koanf:"rating"`
	Ingredient  float64 `koanf:"ingredient"`
	Allergen    float64 `koanf:"allergen"`
}

// MixedSharesConfig are percentages of a mixed response.
type MixedSharesConfig struct {
	Personalized int `koanf:"personalized"`
	TimeBased    int `koanf:"time_based"`
	Popular      int `koanf:"popular"`
}

// GuestSharesConfig are percentages of a guest response.
type GuestSharesConfig struct {
	Popular   int `koanf:"popular"`
	TimeBased int `koanf:"time_based"`
}

// SimilarConfig seeds the synthetic profile of similar-item queries.
type SimilarConfig struct {
	AttributeWeight  int     `koanf:"attribute_weight"`
	IngredientWeight int     `koanf:"ingredient_weight"`
	PriceBandLow     float64 `koanf:"price_band_low"`
	PriceBandHigh    float64 `koanf:"price_band_high"`
}

// BreakerConfig configures the circuit breakers around the store views.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SeedConfig sizes the generated demo data set.
type SeedConfig struct {
	MenuItems         int   `koanf:"menu_items"`
	Customers         int   `koanf:"customers"`
	OrdersPerCustomer int   `koanf:"orders_per_customer"`
	Days              int   `koanf:"days"`
	RandomSeed        int64 `koanf:"random_seed"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ToEngineConfig converts the recommend section into an engine config,
// keeping the engine's default time-slot table.
func (c *Config) ToEngineConfig() (*recommend.Config, error) {
	loc, err := time.LoadLocation(c.Recommend.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", c.Recommend.TimeZone, err)
	}

	r := c.Recommend
	cfg := recommend.DefaultConfig()
	cfg.Weights = recommend.ScoreWeights{
		Category:    r.Weights.Category,
		SubCategory: r.Weights.SubCategory,
		Price:       r.Weights.Price,
		Spice:       r.Weights.Spice,
		Rating:      r.Weights.Rating,
		Ingredient:  r.Weights.Ingredient,
		Allergen:    r.Weights.Allergen,
	}
	cfg.HistoryLimit = r.HistoryLimit
	cfg.Similar = recommend.SimilarConfig{
		AttributeWeight:  r.Similar.AttributeWeight,
		IngredientWeight: r.Similar.IngredientWeight,
		PriceBandLow:     r.Similar.PriceBandLow,
		PriceBandHigh:    r.Similar.PriceBandHigh,
	}
	cfg.MixedShares = recommend.MixedShares{
		Personalized: r.MixedShares.Personalized,
		TimeBased:    r.MixedShares.TimeBased,
		Popular:      r.MixedShares.Popular,
	}
	cfg.GuestShares = recommend.GuestShares{
		Popular:   r.GuestShares.Popular,
		TimeBased: r.GuestShares.TimeBased,
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
