// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package resilience

import (
	"context"

	"github.com/tomtom215/platewise/internal/config"
	"github.com/tomtom215/platewise/internal/models"
	"github.com/tomtom215/platewise/internal/recommend"
)

// Breaker names, also used as metric labels.
const (
	CatalogBreaker = "catalog"
	HistoryBreaker = "history"
)

// Catalog guards a MenuCatalogView with a breaker.
type Catalog struct {
	view    recommend.MenuCatalogView
	breaker *Breaker
}

// RatedCatalog guards a RatedCatalogView, keeping the rating-ordered read
// available to the engine.
type RatedCatalog struct {
	*Catalog
	rated recommend.RatedCatalogView
}

// WrapCatalog returns view guarded by a breaker named "catalog". When the
// view supports rating-ordered reads the result does too. A disabled
// breaker config returns view unchanged.
func WrapCatalog(view recommend.MenuCatalogView, cfg config.BreakerConfig) recommend.MenuCatalogView {
	if !cfg.Enabled {
		return view
	}
	c := &Catalog{view: view, breaker: NewBreaker(CatalogBreaker, cfg)}
	if rated, ok := view.(recommend.RatedCatalogView); ok {
		return &RatedCatalog{Catalog: c, rated: rated}
	}
	return c
}

// AvailableItems implements recommend.MenuCatalogView.
func (c *Catalog) AvailableItems(ctx context.Context) ([]models.MenuItem, error) {
	return run(c.breaker, func() ([]models.MenuItem, error) {
		return c.view.AvailableItems(ctx)
	})
}

// ItemByID implements recommend.MenuCatalogView.
func (c *Catalog) ItemByID(ctx context.Context, id string) (models.MenuItem, error) {
	return run(c.breaker, func() (models.MenuItem, error) {
		return c.view.ItemByID(ctx, id)
	})
}

// Breaker exposes the breaker for health reporting.
func (c *Catalog) Breaker() *Breaker {
	return c.breaker
}

// AvailableItemsByRating implements recommend.RatedCatalogView.
func (c *RatedCatalog) AvailableItemsByRating(ctx context.Context) ([]models.MenuItem, error) {
	return run(c.breaker, func() ([]models.MenuItem, error) {
		return c.rated.AvailableItemsByRating(ctx)
	})
}

// History guards an OrderHistoryView with a breaker.
type History struct {
	view    recommend.OrderHistoryView
	breaker *Breaker
}

// WrapHistory returns view guarded by a breaker named "history", or view
// itself when the breaker config is disabled.
func WrapHistory(view recommend.OrderHistoryView, cfg config.BreakerConfig) recommend.OrderHistoryView {
	if !cfg.Enabled {
		return view
	}
	return &History{view: view, breaker: NewBreaker(HistoryBreaker, cfg)}
}

// RecentOrdersForUser implements recommend.OrderHistoryView.
func (h *History) RecentOrdersForUser(ctx context.Context, userID string, maxCount int) ([]models.Order, error) {
	return run(h.breaker, func() ([]models.Order, error) {
		return h.view.RecentOrdersForUser(ctx, userID, maxCount)
	})
}

// Breaker exposes the breaker for health reporting.
func (h *History) Breaker() *Breaker {
	return h.breaker
}
