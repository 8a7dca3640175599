// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/platewise/internal/metrics"
	"github.com/tomtom215/platewise/internal/models"
)

// RecentOrdersForUser returns at most maxCount orders of userID, newest
// first, each with its lines in their original order. Ties on created_at
// are broken by order ID descending. Orders without lines are returned
// with an empty Lines slice.
func (db *DB) RecentOrdersForUser(ctx context.Context, userID string, maxCount int) ([]models.Order, error) {
	if maxCount <= 0 {
		return nil, nil
	}
	start := time.Now()
	orders, err := db.recentOrders(ctx, userID, maxCount)
	metrics.RecordStoreQuery(Backend, "recent_orders", time.Since(start), err)
	return orders, err
}

func (db *DB) recentOrders(ctx context.Context, userID string, maxCount int) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		WITH recent AS (
			SELECT id, customer_id, created_at
			FROM orders
			WHERE customer_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)
		SELECT r.id, r.customer_id, r.created_at,
			l.menu_item_id, l.quantity, l.item_name, l.item_category, l.item_price
		FROM recent r
		LEFT JOIN order_lines l ON l.order_id = r.id
		ORDER BY r.created_at DESC, r.id DESC, l.line_no`, userID, maxCount)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders for %s: %w", userID, err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var (
			id, customer string
			createdAt    time.Time
			itemID, name sql.NullString
			category     sql.NullString
			quantity     sql.NullInt64
			price        sql.NullFloat64
		)
		if err := rows.Scan(&id, &customer, &createdAt,
			&itemID, &quantity, &name, &category, &price,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}

		if n := len(orders); n == 0 || orders[n-1].ID != id {
			orders = append(orders, models.Order{
				ID:         id,
				CustomerID: customer,
				CreatedAt:  createdAt.UTC(),
				Lines:      []models.OrderLine{},
			})
		}
		if !itemID.Valid {
			continue
		}
		last := &orders[len(orders)-1]
		last.Lines = append(last.Lines, models.OrderLine{
			MenuItemID: itemID.String,
			Quantity:   int(quantity.Int64),
			Snapshot: models.ItemSnapshot{
				Name:     name.String,
				Category: models.Category(category.String),
				Price:    price.Float64,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

// SaveOrders inserts orders and their lines in one transaction. Lines with
// a quantity below one are stored as one.
func (db *DB) SaveOrders(ctx context.Context, orders []models.Order) error {
	start := time.Now()
	err := db.saveOrders(ctx, orders)
	metrics.RecordStoreQuery(Backend, "save_orders", time.Since(start), err)
	return err
}

func (db *DB) saveOrders(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	orderStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO orders (id, customer_id, created_at) VALUES (?, ?, ?)`)
	if err != nil {
		rollbackQuietly(tx)
		return fmt.Errorf("failed to prepare order insert: %w", err)
	}
	defer closeWithLog(orderStmt, "prepared statement")

	lineStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_lines (order_id, line_no, menu_item_id, quantity, item_name, item_category, item_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		rollbackQuietly(tx)
		return fmt.Errorf("failed to prepare order line insert: %w", err)
	}
	defer closeWithLog(lineStmt, "prepared statement")

	for i := range orders {
		o := &orders[i]
		if _, err := orderStmt.ExecContext(ctx, o.ID, o.CustomerID, o.CreatedAt.UTC()); err != nil {
			rollbackQuietly(tx)
			return fmt.Errorf("failed to save order %s: %w", o.ID, err)
		}
		for n, line := range o.Lines {
			qty := line.Quantity
			if qty < 1 {
				qty = 1
			}
			if _, err := lineStmt.ExecContext(ctx, o.ID, n, line.MenuItemID, qty,
				line.Snapshot.Name, string(line.Snapshot.Category), line.Snapshot.Price,
			); err != nil {
				rollbackQuietly(tx)
				return fmt.Errorf("failed to save line %d of order %s: %w", n, o.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit orders: %w", err)
	}
	return nil
}
