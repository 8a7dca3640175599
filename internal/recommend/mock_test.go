// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/platewise/internal/models"
)

// mockCatalog implements MenuCatalogView over a fixed item list.
type mockCatalog struct {
	items        []models.MenuItem
	availableErr error
	itemErr      error

	availableCalls atomic.Int32
	itemCalls      atomic.Int32
}

func (m *mockCatalog) AvailableItems(ctx context.Context) ([]models.MenuItem, error) {
	m.availableCalls.Add(1)
	if m.availableErr != nil {
		return nil, m.availableErr
	}
	out := make([]models.MenuItem, 0, len(m.items))
	for i := range m.items {
		if m.items[i].Available {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *mockCatalog) ItemByID(ctx context.Context, id string) (models.MenuItem, error) {
	m.itemCalls.Add(1)
	if m.itemErr != nil {
		return models.MenuItem{}, m.itemErr
	}
	for i := range m.items {
		if m.items[i].ID == id {
			return m.items[i], nil
		}
	}
	return models.MenuItem{}, models.ErrNotFound
}

// mockRatedCatalog additionally sorts in its "query layer".
type mockRatedCatalog struct {
	mockCatalog
	ratedCalls atomic.Int32
}

func (m *mockRatedCatalog) AvailableItemsByRating(ctx context.Context) ([]models.MenuItem, error) {
	m.ratedCalls.Add(1)
	items, err := m.AvailableItems(ctx)
	if err != nil {
		return nil, err
	}
	SortByRating(items)
	return items, nil
}

// mockHistory implements OrderHistoryView.
type mockHistory struct {
	orders map[string][]models.Order
	err    error
}

func (m *mockHistory) RecentOrdersForUser(ctx context.Context, userID string, maxCount int) ([]models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	orders := m.orders[userID]
	if len(orders) > maxCount {
		orders = orders[:maxCount]
	}
	return orders, nil
}

// mockRecorder captures observations.
type mockRecorder struct {
	mu        sync.Mutex
	outcomes  map[string][]string
	fallbacks []string
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{outcomes: make(map[string][]string)}
}

func (m *mockRecorder) ObserveRecommendation(op, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[op] = append(m.outcomes[op], outcome)
}

func (m *mockRecorder) ObserveFallback(op string, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks = append(m.fallbacks, op)
}

func (m *mockRecorder) fallbackCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fallbacks)
}

// fixedClock is 08:30 UTC, a morning slot.
var fixedClock = time.Date(2026, 5, 4, 8, 30, 0, 0, time.UTC)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Location = time.UTC
	return cfg
}

func newTestEngine(t *testing.T, catalog MenuCatalogView, history OrderHistoryView, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedClock })}, opts...)
	e, err := NewEngine(catalog, history, testConfig(), zerolog.Nop(), opts...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func dish(id string, cat models.Category, sub string, price, rating float64, count int) models.MenuItem {
	return models.MenuItem{
		ID:          id,
		Name:        id,
		Category:    cat,
		SubCategory: sub,
		Price:       price,
		SpiceLevel:  models.SpiceMild,
		Allergens:   models.NewAllergenSet(),
		Rating:      models.Rating{Average: rating, Count: count},
		Available:   true,
	}
}

func orderOf(id, customer string, at time.Time, itemIDs ...string) models.Order {
	lines := make([]models.OrderLine, len(itemIDs))
	for i, itemID := range itemIDs {
		lines[i] = models.OrderLine{MenuItemID: itemID, Quantity: 1}
	}
	return models.Order{ID: id, CustomerID: customer, CreatedAt: at, Lines: lines}
}

// sampleMenu covers every category and time-slot subcategory.
func sampleMenu() []models.MenuItem {
	return []models.MenuItem{
		dish("samosa", models.CategoryVeg, "veg-snacks", 60, 4.2, 120),
		dish("gulab-jamun", models.CategoryDessert, "dessert", 90, 4.7, 300),
		dish("thali", models.CategoryVeg, "regular-lunch", 250, 4.4, 210),
		dish("chicken-65", models.CategoryNonVeg, "non-veg-snacks", 220, 4.1, 95),
		dish("biryani", models.CategoryNonVeg, "regular-lunch", 320, 4.7, 410),
		dish("lassi", models.CategoryBeverage, "drinks", 80, 3.9, 60),
		dish("pakora", models.CategoryVeg, "veg-snacks", 70, 0, 0),
		dish("kulfi", models.CategoryDessert, "dessert", 110, 4.4, 210),
		dish("fish-fry", models.CategoryNonVeg, "non-veg-snacks", 280, 3.5, 40),
		dish("dosa", models.CategoryVeg, "veg-snacks", 120, 4.5, 180),
	}
}

func ids(items []models.MenuItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func contains(items []models.MenuItem, id string) bool {
	for i := range items {
		if items[i].ID == id {
			return true
		}
	}
	return false
}
