// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is not set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/platewise/config.yaml",
	"/etc/platewise/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Driver:           DriverDuckDB,
			Path:             "/data/platewise.duckdb",
			MaxMemory:        "1GB",
			Threads:          0, // 0 = DuckDB default
			PostgresMaxConns: 10,
			ProbeInterval:    30 * time.Second,
		},
		Recommend: RecommendConfig{
			HistoryLimit: 50,
			DefaultLimit: 10,
			MaxLimit:     100,
			TimeZone:     "Local",
			Weights: WeightsConfig{
				Category:    0.25,
				SubCategory: 0.20,
				Price:       0.15,
				Spice:       0.10,
				Rating:      0.15,
				Ingredient:  0.10,
				Allergen:    0.05,
			},
			MixedShares: MixedSharesConfig{Personalized: 40, TimeBased: 30, Popular: 30},
			GuestShares: GuestSharesConfig{Popular: 50, TimeBased: 50},
			Similar: SimilarConfig{
				AttributeWeight:  10,
				IngredientWeight: 5,
				PriceBandLow:     0.8,
				PriceBandHigh:    1.2,
			},
			Breaker: BreakerConfig{
				Enabled:      true,
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Seed: SeedConfig{
			MenuItems:         60,
			Customers:         25,
			OrdersPerCustomer: 12,
			Days:              90,
			RandomSeed:        42,
		},
	}
}

// Load reads configuration from defaults, the optional YAML file and the
// environment, in that order of increasing priority, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths arrive from the environment as comma-separated strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config paths.
var envMappings = map[string]string{
	// Server
	"http_host":          "server.host",
	"http_port":          "server.port",
	"http_read_timeout":  "server.read_timeout",
	"http_write_timeout": "server.write_timeout",
	"shutdown_timeout":   "server.shutdown_timeout",
	"environment":        "server.environment",

	// Database
	"db_driver":          "database.driver",
	"duckdb_path":        "database.path",
	"duckdb_max_memory":  "database.max_memory",
	"duckdb_threads":     "database.threads",
	"postgres_dsn":       "database.postgres_dsn",
	"postgres_max_conns": "database.postgres_max_conns",
	"db_probe_interval":  "database.probe_interval",

	// Recommendation engine
	"recommend_history_limit":      "recommend.history_limit",
	"recommend_default_limit":      "recommend.default_limit",
	"recommend_max_limit":          "recommend.max_limit",
	"recommend_time_zone":          "recommend.time_zone",
	"recommend_weight_category":    "recommend.weights.category",
	"recommend_weight_subcategory": "recommend.weights.sub_category",
	"recommend_weight_price":       "recommend.weights.price",
	"recommend_weight_spice":       "recommend.weights.spice",
	"recommend_weight_rating":      "recommend.weights.rating",
	"recommend_weight_ingredient":  "recommend.weights.ingredient",
	"recommend_weight_allergen":    "recommend.weights.allergen",
	"recommend_mixed_personalized": "recommend.mixed_shares.personalized",
	"recommend_mixed_time_based":   "recommend.mixed_shares.time_based",
	"recommend_mixed_popular":      "recommend.mixed_shares.popular",
	"recommend_guest_popular":      "recommend.guest_shares.popular",
	"recommend_guest_time_based":   "recommend.guest_shares.time_based",
	"recommend_breaker_enabled":    "recommend.breaker.enabled",
	"recommend_breaker_timeout":    "recommend.breaker.timeout",
	"recommend_breaker_ratio":      "recommend.breaker.failure_ratio",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Seed data
	"seed_menu_items":          "seed.menu_items",
	"seed_customers":           "seed.customers",
	"seed_orders_per_customer": "seed.orders_per_customer",
	"seed_days":                "seed.days",
	"seed_random_seed":         "seed.random_seed",
}

// envTransformFunc maps an environment variable name to its config path.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
