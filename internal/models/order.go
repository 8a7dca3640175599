// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package models

import "time"

// ItemSnapshot is the denormalized copy of a menu item stored on an order line
// at the time of purchase. It does not change when the menu does.
type ItemSnapshot struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Price    float64  `json:"price"`
}

// OrderLine is a single dish on an order.
type OrderLine struct {
	MenuItemID string       `json:"menu_item_id"`
	Quantity   int          `json:"quantity"` // always >= 1
	Snapshot   ItemSnapshot `json:"snapshot"`
}

// Order is a completed customer order.
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	CreatedAt  time.Time   `json:"created_at"`
	Lines      []OrderLine `json:"lines"`
}

// ItemIDs returns the distinct menu item IDs referenced by the order, in line order.
func (o *Order) ItemIDs() []string {
	seen := make(map[string]struct{}, len(o.Lines))
	ids := make([]string, 0, len(o.Lines))
	for _, line := range o.Lines {
		if _, ok := seen[line.MenuItemID]; ok {
			continue
		}
		seen[line.MenuItemID] = struct{}{}
		ids = append(ids, line.MenuItemID)
	}
	return ids
}
