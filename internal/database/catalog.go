// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/platewise/internal/metrics"
	"github.com/tomtom215/platewise/internal/models"
)

const menuItemColumns = `id, name, category, sub_category, price, spice_level,
	ingredients, allergens, rating_average, rating_count, available`

// AvailableItems returns every available dish in catalog order.
func (db *DB) AvailableItems(ctx context.Context) ([]models.MenuItem, error) {
	return db.queryItems(ctx, "available_items",
		`SELECT `+menuItemColumns+` FROM menu_items WHERE available ORDER BY position`)
}

// AvailableItemsByRating returns every available dish ordered by rating
// average then rating count, both descending, with catalog order breaking ties.
func (db *DB) AvailableItemsByRating(ctx context.Context) ([]models.MenuItem, error) {
	return db.queryItems(ctx, "available_items_by_rating",
		`SELECT `+menuItemColumns+` FROM menu_items WHERE available
		 ORDER BY rating_average DESC, rating_count DESC, position`)
}

// ItemByID returns a dish whether or not it is available. Unknown IDs
// return an error wrapping models.ErrNotFound.
func (db *DB) ItemByID(ctx context.Context, id string) (models.MenuItem, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE id = ?`, id)
	item, err := scanMenuItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		err = fmt.Errorf("menu item %s: %w", id, models.ErrNotFound)
	} else if err != nil {
		err = fmt.Errorf("failed to query menu item %s: %w", id, err)
	}
	metrics.RecordStoreQuery(Backend, "item_by_id", time.Since(start), err)
	return item, err
}

// CountAvailable returns the number of available dishes.
func (db *DB) CountAvailable(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items WHERE available`).Scan(&n)
	if err != nil {
		err = fmt.Errorf("failed to count menu items: %w", err)
	}
	metrics.RecordStoreQuery(Backend, "count_available", time.Since(start), err)
	return n, err
}

// SaveMenuItems inserts or updates dishes. New dishes are appended to the
// catalog order; updated dishes keep their position.
func (db *DB) SaveMenuItems(ctx context.Context, items []models.MenuItem) error {
	start := time.Now()
	err := db.saveMenuItems(ctx, items)
	metrics.RecordStoreQuery(Backend, "save_menu_items", time.Since(start), err)
	return err
}

func (db *DB) saveMenuItems(ctx context.Context, items []models.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM menu_items`).Scan(&next); err != nil {
		rollbackQuietly(tx)
		return fmt.Errorf("failed to read catalog position: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO menu_items (id, position, name, category, sub_category, price, spice_level,
			ingredients, allergens, rating_average, rating_count, available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			sub_category = excluded.sub_category,
			price = excluded.price,
			spice_level = excluded.spice_level,
			ingredients = excluded.ingredients,
			allergens = excluded.allergens,
			rating_average = excluded.rating_average,
			rating_count = excluded.rating_count,
			available = excluded.available`)
	if err != nil {
		rollbackQuietly(tx)
		return fmt.Errorf("failed to prepare menu insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range items {
		item := &items[i]
		ingredients, allergens, err := encodeLists(item)
		if err != nil {
			rollbackQuietly(tx)
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			item.ID, next+i, item.Name, string(item.Category), item.SubCategory, item.Price,
			string(item.SpiceLevel), ingredients, allergens, item.Rating.Average, item.Rating.Count,
			item.Available,
		); err != nil {
			rollbackQuietly(tx)
			return fmt.Errorf("failed to save menu item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit menu items: %w", err)
	}
	return nil
}

func (db *DB) queryItems(ctx context.Context, operation, query string) ([]models.MenuItem, error) {
	start := time.Now()
	items, err := db.scanItems(ctx, query)
	metrics.RecordStoreQuery(Backend, operation, time.Since(start), err)
	return items, err
}

func (db *DB) scanItems(ctx context.Context, query string) ([]models.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query)
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMenuItem(row rowScanner) (models.MenuItem, error) {
	var (
		item                   models.MenuItem
		category, spice        string
		ingredients, allergens string
	)
	if err := row.Scan(
		&item.ID, &item.Name, &category, &item.SubCategory, &item.Price, &spice,
		&ingredients, &allergens, &item.Rating.Average, &item.Rating.Count, &item.Available,
	); err != nil {
		return models.MenuItem{}, err
	}
	item.Category = models.Category(category)
	item.SpiceLevel = models.SpiceLevel(spice)

	if err := json.Unmarshal([]byte(ingredients), &item.Ingredients); err != nil {
		return models.MenuItem{}, fmt.Errorf("menu item %s: bad ingredients column: %w", item.ID, err)
	}
	var names []string
	if err := json.Unmarshal([]byte(allergens), &names); err != nil {
		return models.MenuItem{}, fmt.Errorf("menu item %s: bad allergens column: %w", item.ID, err)
	}
	item.Allergens = models.AllergenSetFromStrings(names)
	return item, nil
}

func encodeLists(item *models.MenuItem) (ingredients, allergens string, err error) {
	list := item.Ingredients
	if list == nil {
		list = []string{}
	}
	ing, err := json.Marshal(list)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode ingredients of %s: %w", item.ID, err)
	}
	all, err := json.Marshal(item.Allergens.Strings())
	if err != nil {
		return "", "", fmt.Errorf("failed to encode allergens of %s: %w", item.ID, err)
	}
	return string(ing), string(all), nil
}
