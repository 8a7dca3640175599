// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/platewise/internal/config"
	"github.com/tomtom215/platewise/internal/models"
	"github.com/tomtom215/platewise/internal/recommend"
)

var fixedNow = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func testSeedConfig() config.SeedConfig {
	return config.SeedConfig{
		MenuItems:         28,
		Customers:         6,
		OrdersPerCustomer: 8,
		Days:              30,
		RandomSeed:        7,
	}
}

func TestMenu_CoversCatalog(t *testing.T) {
	menu := NewGenerator(testSeedConfig(), fixedNow).Menu()
	if len(menu) != 28 {
		t.Fatalf("menu size = %d, want 28", len(menu))
	}

	categories := map[models.Category]bool{}
	subs := map[string]bool{}
	seen := map[string]bool{}
	for i := range menu {
		item := &menu[i]
		if !item.Category.Valid() || !item.SpiceLevel.Valid() {
			t.Errorf("%s: invalid category or spice: %+v", item.ID, item)
		}
		if item.Price <= 0 {
			t.Errorf("%s: price %v", item.ID, item.Price)
		}
		if item.Rating.Average < 0 || item.Rating.Average > 5 {
			t.Errorf("%s: rating %v", item.ID, item.Rating.Average)
		}
		if (item.Rating.Average == 0) != (item.Rating.Count == 0) {
			t.Errorf("%s: inconsistent rating %+v", item.ID, item.Rating)
		}
		if len(item.Ingredients) < 2 {
			t.Errorf("%s: ingredients %v", item.ID, item.Ingredients)
		}
		for _, ing := range item.Ingredients {
			if a, ok := ingredientAllergens[ing]; ok && !item.Allergens.Has(a) {
				t.Errorf("%s: %s present but allergen %s missing", item.ID, ing, a)
			}
		}
		if seen[item.ID] {
			t.Errorf("duplicate id %s", item.ID)
		}
		seen[item.ID] = true
		categories[item.Category] = true
		subs[item.SubCategory] = true
	}

	for _, c := range models.Categories {
		if !categories[c] {
			t.Errorf("category %s missing", c)
		}
	}
	for _, slotSubs := range recommend.DefaultConfig().SlotSubCategories {
		for _, sub := range slotSubs {
			if !subs[sub] {
				t.Errorf("time-slot subcategory %s missing", sub)
			}
		}
	}
}

func TestGenerate_ReproducibleForSeed(t *testing.T) {
	a := NewGenerator(testSeedConfig(), fixedNow).Generate()
	b := NewGenerator(testSeedConfig(), fixedNow).Generate()

	if len(a.Menu) != len(b.Menu) || len(a.Orders) != len(b.Orders) {
		t.Fatalf("sizes differ: %d/%d vs %d/%d", len(a.Menu), len(a.Orders), len(b.Menu), len(b.Orders))
	}
	for i := range a.Menu {
		x, y := a.Menu[i], b.Menu[i]
		if x.Name != y.Name || x.Price != y.Price || x.Rating != y.Rating || x.Available != y.Available {
			t.Fatalf("dish %d differs: %+v vs %+v", i, x, y)
		}
	}
	for i := range a.Orders {
		if !a.Orders[i].CreatedAt.Equal(b.Orders[i].CreatedAt) || len(a.Orders[i].Lines) != len(b.Orders[i].Lines) {
			t.Fatalf("order %d differs", i)
		}
	}

	cfg := testSeedConfig()
	cfg.RandomSeed = 8
	c := NewGenerator(cfg, fixedNow).Menu()
	same := true
	for i := range c {
		if c[i].Name != a.Menu[i].Name || c[i].Price != a.Menu[i].Price {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced the same menu")
	}
}

func TestOrders_Shape(t *testing.T) {
	cfg := testSeedConfig()
	ds := NewGenerator(cfg, fixedNow).Generate()

	if len(ds.Customers) != cfg.Customers {
		t.Fatalf("customers = %d", len(ds.Customers))
	}
	if want := cfg.Customers * cfg.OrdersPerCustomer; len(ds.Orders) != want {
		t.Fatalf("orders = %d, want %d", len(ds.Orders), want)
	}

	menu := map[string]models.MenuItem{}
	for _, item := range ds.Menu {
		menu[item.ID] = item
	}
	earliest := fixedNow.AddDate(0, 0, -cfg.Days)
	for _, o := range ds.Orders {
		if o.CreatedAt.Before(earliest) || o.CreatedAt.After(fixedNow.Add(24*time.Hour)) {
			t.Errorf("order %s at %s outside window", o.ID, o.CreatedAt)
		}
		if len(o.Lines) < 1 || len(o.Lines) > 3 {
			t.Errorf("order %s has %d lines", o.ID, len(o.Lines))
		}
		for _, l := range o.Lines {
			item, ok := menu[l.MenuItemID]
			if !ok {
				t.Fatalf("order %s references unknown dish %s", o.ID, l.MenuItemID)
			}
			if l.Quantity < 1 || l.Snapshot.Name != item.Name || l.Snapshot.Price != item.Price {
				t.Errorf("line %+v does not match dish %+v", l, item)
			}
		}
	}
}

func TestSlotHour(t *testing.T) {
	g := NewGenerator(testSeedConfig(), fixedNow)
	for _, slot := range recommend.TimeSlots {
		for i := 0; i < 50; i++ {
			if got := recommend.SlotForHour(slotHour(g.fake, slot)); got != slot {
				t.Fatalf("slotHour(%s) gave an hour in %s", slot, got)
			}
		}
	}
}

type recordingWriter struct {
	calls   []string
	menuErr error
}

func (w *recordingWriter) SaveMenuItems(context.Context, []models.MenuItem) error {
	w.calls = append(w.calls, "menu")
	return w.menuErr
}

func (w *recordingWriter) SaveOrders(context.Context, []models.Order) error {
	w.calls = append(w.calls, "orders")
	return nil
}

func TestLoad(t *testing.T) {
	ds := NewGenerator(testSeedConfig(), fixedNow).Generate()

	w := &recordingWriter{}
	if err := Load(context.Background(), w, ds); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(w.calls) != 2 || w.calls[0] != "menu" || w.calls[1] != "orders" {
		t.Errorf("calls = %v", w.calls)
	}

	boom := errors.New("disk full")
	w = &recordingWriter{menuErr: boom}
	if err := Load(context.Background(), w, ds); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped disk full", err)
	}
	if len(w.calls) != 1 {
		t.Errorf("orders written after menu failure: %v", w.calls)
	}
}
