// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package main is the platewise command.
//
// Platewise recommends dishes from a restaurant menu using each customer's
// order history. It serves a JSON HTTP API and offers a few operator
// commands around it:
//
//	platewise serve                    run the HTTP API under the supervisor tree
//	platewise seed                     load a synthetic menu and order history
//	platewise recommend --mode popular print recommendations without the API
//
// # Configuration
//
// Every command loads configuration through koanf (defaults, then
// config.yaml, then environment variables). --config overrides the file
// location, the same as CONFIG_PATH.
//
//	DB_DRIVER=postgres POSTGRES_DSN=postgres://... platewise serve
//	DUCKDB_PATH=/tmp/menu.duckdb platewise seed --customers 5
//
// # Signal Handling
//
// serve stops on SIGINT or SIGTERM. The HTTP server drains in-flight
// requests for up to server.shutdown_timeout before the store is closed.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
