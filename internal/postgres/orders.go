// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/platewise/internal/metrics"
	"github.com/tomtom215/platewise/internal/models"
)

// RecentOrdersForUser returns at most maxCount orders of userID, newest
// first. Ties on created_at are broken by order ID descending. Orders
// without lines are returned with an empty Lines slice.
func (s *Store) RecentOrdersForUser(ctx context.Context, userID string, maxCount int) ([]models.Order, error) {
	if maxCount <= 0 {
		return nil, nil
	}
	start := time.Now()
	orders, err := s.recentOrders(ctx, userID, maxCount)
	metrics.RecordStoreQuery(Backend, "recent_orders", time.Since(start), err)
	return orders, err
}

func (s *Store) recentOrders(ctx context.Context, userID string, maxCount int) ([]models.Order, error) {
	rows, err := s.pool.Query(ctx, `
		WITH recent AS (
			SELECT id, customer_id, created_at
			FROM orders
			WHERE customer_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
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
			itemID, name *string
			category     *string
			quantity     *int32
			price        *float64
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
		if itemID == nil {
			continue
		}
		line := models.OrderLine{MenuItemID: *itemID}
		if quantity != nil {
			line.Quantity = int(*quantity)
		}
		if name != nil {
			line.Snapshot.Name = *name
		}
		if category != nil {
			line.Snapshot.Category = models.Category(*category)
		}
		if price != nil {
			line.Snapshot.Price = *price
		}
		last := &orders[len(orders)-1]
		last.Lines = append(last.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

// SaveOrders bulk loads orders and their lines with COPY inside one
// transaction. Quantities below one are stored as one.
func (s *Store) SaveOrders(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	start := time.Now()
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return copyOrders(ctx, tx, orders)
	})
	if err != nil {
		err = fmt.Errorf("failed to save orders: %w", err)
	}
	metrics.RecordStoreQuery(Backend, "save_orders", time.Since(start), err)
	return err
}

func copyOrders(ctx context.Context, tx pgx.Tx, orders []models.Order) error {
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"orders"},
		[]string{"id", "customer_id", "created_at"},
		pgx.CopyFromSlice(len(orders), func(i int) ([]interface{}, error) {
			return []interface{}{orders[i].ID, orders[i].CustomerID, orders[i].CreatedAt.UTC()}, nil
		}),
	); err != nil {
		return fmt.Errorf("copy orders: %w", err)
	}

	var lines [][]interface{}
	for i := range orders {
		for n, line := range orders[i].Lines {
			qty := line.Quantity
			if qty < 1 {
				qty = 1
			}
			lines = append(lines, []interface{}{
				orders[i].ID, n, line.MenuItemID, qty,
				line.Snapshot.Name, string(line.Snapshot.Category), line.Snapshot.Price,
			})
		}
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"order_lines"},
		[]string{"order_id", "line_no", "menu_item_id", "quantity", "item_name", "item_category", "item_price"},
		pgx.CopyFromRows(lines),
	); err != nil {
		return fmt.Errorf("copy order lines: %w", err)
	}
	return nil
}
