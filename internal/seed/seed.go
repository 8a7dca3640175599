// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package seed generates a realistic demo catalog and order history.
//
// All randomness comes from one faker instance seeded with
// SeedConfig.RandomSeed, so a seed reproduces the same dishes, prices,
// ratings and ordering patterns. Identifiers are cuids and differ between
// runs.
package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/tomtom215/platewise/internal/config"
	"github.com/tomtom215/platewise/internal/models"
	"github.com/tomtom215/platewise/internal/recommend"
)

// Writer persists generated data. Both stores implement it.
type Writer interface {
	SaveMenuItems(ctx context.Context, items []models.MenuItem) error
	SaveOrders(ctx context.Context, orders []models.Order) error
}

// Dataset is one generated catalog with its customers and their orders.
type Dataset struct {
	Menu      []models.MenuItem
	Customers []string
	Orders    []models.Order
}

// Generator produces datasets.
type Generator struct {
	cfg  config.SeedConfig
	fake faker.Faker
	now  time.Time
	ids  func() string
}

// NewGenerator returns a generator whose orders fall in the cfg.Days days
// before now.
func NewGenerator(cfg config.SeedConfig, now time.Time) *Generator {
	return &Generator{
		cfg:  cfg,
		fake: faker.NewWithSeed(rand.NewSource(cfg.RandomSeed)),
		now:  now.UTC(),
		ids:  cuid.New,
	}
}

// Generate builds a full dataset.
func (g *Generator) Generate() Dataset {
	menu := g.Menu()
	customers := g.Customers()
	return Dataset{
		Menu:      menu,
		Customers: customers,
		Orders:    g.Orders(menu, customers),
	}
}

// Menu returns cfg.MenuItems dishes. Templates are visited round-robin so
// every category and subcategory appears once the menu has at least as
// many dishes as there are templates.
func (g *Generator) Menu() []models.MenuItem {
	items := make([]models.MenuItem, 0, g.cfg.MenuItems)
	for i := 0; i < g.cfg.MenuItems; i++ {
		items = append(items, g.dish(&templates[i%len(templates)]))
	}
	return items
}

func (g *Generator) dish(t *dishTemplate) models.MenuItem {
	name := fmt.Sprintf("%s %s", g.fake.RandomStringElement(nameStyles), g.fake.RandomStringElement(t.names))

	ingredients := g.pick(t.ingredients, g.fake.IntBetween(2, 4))
	allergens := models.NewAllergenSet()
	for _, ing := range ingredients {
		if a, ok := ingredientAllergens[ing]; ok {
			allergens[a] = struct{}{}
		}
	}

	spice := models.SpiceMild
	if t.spicy {
		spice = models.SpiceLevels[g.fake.IntBetween(0, len(models.SpiceLevels)-1)]
	}

	rating := models.Rating{}
	if g.fake.Boolean().BoolWithChance(90) {
		rating.Average = float64(g.fake.IntBetween(25, 50)) / 10
		rating.Count = g.fake.IntBetween(1, 800)
	}

	price := float64(g.fake.IntBetween(t.minPrice, t.maxPrice))
	price = math.Round(price/5) * 5

	return models.MenuItem{
		ID:          g.ids(),
		Name:        name,
		Category:    t.category,
		SubCategory: t.subCategory,
		Price:       price,
		SpiceLevel:  spice,
		Ingredients: ingredients,
		Allergens:   allergens,
		Rating:      rating,
		Available:   g.fake.Boolean().BoolWithChance(92),
	}
}

// pick returns n distinct elements of pool in pool order.
func (g *Generator) pick(pool []string, n int) []string {
	if n >= len(pool) {
		return append([]string(nil), pool...)
	}
	chosen := make([]bool, len(pool))
	for picked := 0; picked < n; {
		i := g.fake.IntBetween(0, len(pool)-1)
		if !chosen[i] {
			chosen[i] = true
			picked++
		}
	}
	out := make([]string, 0, n)
	for i, ok := range chosen {
		if ok {
			out = append(out, pool[i])
		}
	}
	return out
}

// Customers returns cfg.Customers customer IDs.
func (g *Generator) Customers() []string {
	out := make([]string, g.cfg.Customers)
	for i := range out {
		out[i] = g.ids()
	}
	return out
}

// customerHabits skews a customer's orders toward one category and one
// time slot so personalized results have something to learn.
type customerHabits struct {
	category models.Category
	slot     recommend.TimeSlot
}

// Orders returns cfg.OrdersPerCustomer orders for each customer, drawn
// from the whole menu including unavailable dishes.
func (g *Generator) Orders(menu []models.MenuItem, customers []string) []models.Order {
	if len(menu) == 0 {
		return nil
	}
	byCategory := make(map[models.Category][]int)
	for i := range menu {
		byCategory[menu[i].Category] = append(byCategory[menu[i].Category], i)
	}

	orders := make([]models.Order, 0, len(customers)*g.cfg.OrdersPerCustomer)
	for _, customer := range customers {
		habits := customerHabits{
			category: models.Categories[g.fake.IntBetween(0, len(models.Categories)-1)],
			slot:     recommend.TimeSlots[g.fake.IntBetween(0, len(recommend.TimeSlots)-1)],
		}
		for n := 0; n < g.cfg.OrdersPerCustomer; n++ {
			orders = append(orders, g.order(customer, habits, menu, byCategory))
		}
	}
	return orders
}

func (g *Generator) order(customer string, habits customerHabits, menu []models.MenuItem, byCategory map[models.Category][]int) models.Order {
	slot := habits.slot
	if !g.fake.Boolean().BoolWithChance(65) {
		slot = recommend.TimeSlots[g.fake.IntBetween(0, len(recommend.TimeSlots)-1)]
	}
	day := g.now.AddDate(0, 0, -g.fake.IntBetween(0, g.cfg.Days-1))
	created := time.Date(day.Year(), day.Month(), day.Day(), slotHour(g.fake, slot), g.fake.IntBetween(0, 59), 0, 0, time.UTC)

	lineCount := g.fake.IntBetween(1, 3)
	lines := make([]models.OrderLine, 0, lineCount)
	for i := 0; i < lineCount; i++ {
		idx := g.fake.IntBetween(0, len(menu)-1)
		if favorites := byCategory[habits.category]; len(favorites) > 0 && g.fake.Boolean().BoolWithChance(70) {
			idx = favorites[g.fake.IntBetween(0, len(favorites)-1)]
		}
		item := &menu[idx]
		lines = append(lines, models.OrderLine{
			MenuItemID: item.ID,
			Quantity:   g.fake.IntBetween(1, 3),
			Snapshot: models.ItemSnapshot{
				Name:     item.Name,
				Category: item.Category,
				Price:    item.Price,
			},
		})
	}

	return models.Order{
		ID:         g.ids(),
		CustomerID: customer,
		CreatedAt:  created,
		Lines:      lines,
	}
}

// slotHour returns a random hour of day inside slot.
func slotHour(fake faker.Faker, slot recommend.TimeSlot) int {
	switch slot {
	case recommend.SlotMorning:
		return fake.IntBetween(6, 11)
	case recommend.SlotAfternoon:
		return fake.IntBetween(12, 16)
	case recommend.SlotEvening:
		return fake.IntBetween(17, 21)
	default:
		return (22 + fake.IntBetween(0, 7)) % 24
	}
}

// Load writes ds through w, menu first so order lines reference stored dishes.
func Load(ctx context.Context, w Writer, ds Dataset) error {
	if err := w.SaveMenuItems(ctx, ds.Menu); err != nil {
		return fmt.Errorf("failed to load menu: %w", err)
	}
	if err := w.SaveOrders(ctx, ds.Orders); err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	return nil
}
