// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package database

import (
	"context"
	"fmt"
)

// tableCreationQueries define the schema.
//
// menu_items.position records insertion order and breaks rating ties so
// SQL ordering matches recommend.SortByRating over AvailableItems.
// Order lines carry a snapshot of the dish at order time.
var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		id VARCHAR PRIMARY KEY,
		position INTEGER NOT NULL,
		name VARCHAR NOT NULL,
		category VARCHAR NOT NULL,
		sub_category VARCHAR NOT NULL DEFAULT '',
		price DOUBLE NOT NULL DEFAULT 0,
		spice_level VARCHAR NOT NULL DEFAULT '',
		ingredients VARCHAR NOT NULL DEFAULT '[]',
		allergens VARCHAR NOT NULL DEFAULT '[]',
		rating_average DOUBLE NOT NULL DEFAULT 0,
		rating_count INTEGER NOT NULL DEFAULT 0,
		available BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR PRIMARY KEY,
		customer_id VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_lines (
		order_id VARCHAR NOT NULL,
		line_no INTEGER NOT NULL,
		menu_item_id VARCHAR NOT NULL,
		quantity INTEGER NOT NULL,
		item_name VARCHAR NOT NULL DEFAULT '',
		item_category VARCHAR NOT NULL DEFAULT '',
		item_price DOUBLE NOT NULL DEFAULT 0,
		PRIMARY KEY (order_id, line_no)
	)`,
	// menu_items has no secondary index: DuckDB rejects ON CONFLICT updates of indexed columns.
	`CREATE INDEX IF NOT EXISTS idx_orders_customer_created ON orders(customer_id, created_at)`,
}

func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}
