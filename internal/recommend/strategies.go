// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/platewise/internal/models"
)

// SortByRating orders items by rating average descending, then rating count
// descending. The sort is stable so catalog order breaks remaining ties.
func SortByRating(items []models.MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Rating, items[j].Rating
		if a.Average != b.Average {
			return a.Average > b.Average
		}
		return a.Count > b.Count
	})
}

// availableByRating returns available items in rating order, preferring the
// catalog's own query layer when it has one.
func (e *Engine) availableByRating(ctx context.Context) ([]models.MenuItem, error) {
	if rated, ok := e.catalog.(RatedCatalogView); ok {
		items, err := rated.AvailableItemsByRating(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load rated catalog: %w", err)
		}
		return items, nil
	}

	items, err := e.catalog.AvailableItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	sorted := append([]models.MenuItem(nil), items...)
	SortByRating(sorted)
	return sorted, nil
}

// popular returns the top-rated available items.
func (e *Engine) popular(ctx context.Context, limit int) ([]models.MenuItem, error) {
	if limit <= 0 {
		return []models.MenuItem{}, nil
	}
	items, err := e.availableByRating(ctx)
	if err != nil {
		return nil, err
	}
	return truncate(items, limit), nil
}

// byCategory returns the top-rated available items of one category.
func (e *Engine) byCategory(ctx context.Context, category models.Category, limit int) ([]models.MenuItem, error) {
	if limit <= 0 {
		return []models.MenuItem{}, nil
	}
	items, err := e.availableByRating(ctx)
	if err != nil {
		return nil, err
	}
	return filterItems(items, limit, func(item *models.MenuItem) bool {
		return item.Category == category
	}), nil
}

// byTimeSlot returns the top-rated available items whose subcategory is served in slot.
func (e *Engine) byTimeSlot(ctx context.Context, slot TimeSlot, limit int) ([]models.MenuItem, error) {
	if limit <= 0 {
		return []models.MenuItem{}, nil
	}

	allowed := make(map[string]struct{}, 2)
	for _, sub := range e.config.SlotSubCategories[slot] {
		allowed[sub] = struct{}{}
	}

	items, err := e.availableByRating(ctx)
	if err != nil {
		return nil, err
	}
	return filterItems(items, limit, func(item *models.MenuItem) bool {
		_, ok := allowed[item.SubCategory]
		return ok
	}), nil
}

// filterItems keeps at most limit items matching keep, preserving order.
func filterItems(items []models.MenuItem, limit int, keep func(*models.MenuItem) bool) []models.MenuItem {
	out := make([]models.MenuItem, 0, min(limit, len(items)))
	for i := range items {
		if len(out) == limit {
			break
		}
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

func truncate(items []models.MenuItem, limit int) []models.MenuItem {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
