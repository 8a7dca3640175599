// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/platewise/internal/metrics"
	"github.com/tomtom215/platewise/internal/models"
)

const menuItemColumns = `id, name, category, sub_category, price, spice_level,
	ingredients, allergens, rating_average, rating_count, available`

// AvailableItems returns every available dish in catalog order.
func (s *Store) AvailableItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.queryItems(ctx, "available_items",
		`SELECT `+menuItemColumns+` FROM menu_items WHERE available ORDER BY position`)
}

// AvailableItemsByRating returns every available dish ordered by rating
// average then rating count, both descending, with catalog order breaking ties.
func (s *Store) AvailableItemsByRating(ctx context.Context) ([]models.MenuItem, error) {
	return s.queryItems(ctx, "available_items_by_rating",
		`SELECT `+menuItemColumns+` FROM menu_items WHERE available
		 ORDER BY rating_average DESC, rating_count DESC, position`)
}

// ItemByID returns a dish whether or not it is available.
func (s *Store) ItemByID(ctx context.Context, id string) (models.MenuItem, error) {
	start := time.Now()
	row := s.pool.QueryRow(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id)
	item, err := scanMenuItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("menu item %s: %w", id, models.ErrNotFound)
	} else if err != nil {
		err = fmt.Errorf("failed to query menu item %s: %w", id, err)
	}
	metrics.RecordStoreQuery(Backend, "item_by_id", time.Since(start), err)
	return item, err
}

// CountAvailable returns the number of available dishes.
func (s *Store) CountAvailable(ctx context.Context) (int, error) {
	start := time.Now()
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items WHERE available`).Scan(&n)
	if err != nil {
		err = fmt.Errorf("failed to count menu items: %w", err)
	}
	metrics.RecordStoreQuery(Backend, "count_available", time.Since(start), err)
	return n, err
}

// SaveMenuItems upserts dishes in one batch. New dishes take the next
// catalog position; updated dishes keep theirs.
func (s *Store) SaveMenuItems(ctx context.Context, items []models.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	start := time.Now()

	batch := &pgx.Batch{}
	for i := range items {
		item := &items[i]
		ingredients := item.Ingredients
		if ingredients == nil {
			ingredients = []string{}
		}
		batch.Queue(`
			INSERT INTO menu_items (id, name, category, sub_category, price, spice_level,
				ingredients, allergens, rating_average, rating_count, available)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				sub_category = EXCLUDED.sub_category,
				price = EXCLUDED.price,
				spice_level = EXCLUDED.spice_level,
				ingredients = EXCLUDED.ingredients,
				allergens = EXCLUDED.allergens,
				rating_average = EXCLUDED.rating_average,
				rating_count = EXCLUDED.rating_count,
				available = EXCLUDED.available`,
			item.ID, item.Name, string(item.Category), item.SubCategory, item.Price,
			string(item.SpiceLevel), ingredients, item.Allergens.Strings(),
			item.Rating.Average, item.Rating.Count, item.Available,
		)
	}

	err := s.pool.SendBatch(ctx, batch).Close()
	if err != nil {
		err = fmt.Errorf("failed to save menu items: %w", err)
	}
	metrics.RecordStoreQuery(Backend, "save_menu_items", time.Since(start), err)
	return err
}

func (s *Store) queryItems(ctx context.Context, operation, query string) ([]models.MenuItem, error) {
	start := time.Now()
	items, err := s.scanItems(ctx, query)
	metrics.RecordStoreQuery(Backend, operation, time.Since(start), err)
	return items, err
}

func (s *Store) scanItems(ctx context.Context, query string) ([]models.MenuItem, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu items: %w", err)
	}
	return items, nil
}

func scanMenuItem(row pgx.Row) (models.MenuItem, error) {
	var (
		item            models.MenuItem
		category, spice string
		allergens       []string
	)
	if err := row.Scan(
		&item.ID, &item.Name, &category, &item.SubCategory, &item.Price, &spice,
		&item.Ingredients, &allergens, &item.Rating.Average, &item.Rating.Count, &item.Available,
	); err != nil {
		return models.MenuItem{}, err
	}
	item.Category = models.Category(category)
	item.SpiceLevel = models.SpiceLevel(spice)
	item.Allergens = models.AllergenSetFromStrings(allergens)
	return item, nil
}
