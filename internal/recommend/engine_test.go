// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/platewise/internal/models"
)

func TestNewEngine(t *testing.T) {
	catalog := &mockCatalog{}
	history := &mockHistory{}

	t.Run("nil config uses defaults", func(t *testing.T) {
		e, err := NewEngine(catalog, history, nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		if e.Config().HistoryLimit != 50 {
			t.Errorf("HistoryLimit = %d, want 50", e.Config().HistoryLimit)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights.Category = 0.9
		_, err := NewEngine(catalog, history, cfg, zerolog.Nop())
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("err = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("missing views", func(t *testing.T) {
		if _, err := NewEngine(nil, history, nil, zerolog.Nop()); err == nil {
			t.Error("expected error for nil catalog")
		}
		if _, err := NewEngine(catalog, nil, nil, zerolog.Nop()); err == nil {
			t.Error("expected error for nil history")
		}
	})

	t.Run("config is copied", func(t *testing.T) {
		cfg := testConfig()
		e, err := NewEngine(catalog, history, cfg, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		cfg.SlotSubCategories[SlotMorning][0] = "mutated"
		if e.Config().SlotSubCategories[SlotMorning][0] != "veg-snacks" {
			t.Error("engine config shares state with caller")
		}
	})
}

func TestPersonalized_ScenarioA(t *testing.T) {
	catalog := &mockCatalog{items: []models.MenuItem{
		dish("A", models.CategoryVeg, "regular-lunch", 50, 4.5, 10),
		dish("B", models.CategoryNonVeg, "regular-lunch", 200, 3.0, 10),
	}}
	history := &mockHistory{orders: map[string][]models.Order{
		"u1": {
			orderOf("o2", "u1", fixedClock, "A"),
			orderOf("o1", "u1", fixedClock.Add(-24*time.Hour), "A"),
		},
	}}
	e := newTestEngine(t, catalog, history)

	res := e.Personalized(context.Background(), "u1", 1)
	if res.Outcome != OutcomePersonalized {
		t.Fatalf("Outcome = %s, want personalized", res.Outcome)
	}
	if got := ids(res.Items); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("Personalized = %v, want [B]", got)
	}
}

func TestPersonalized_ExclusionInvariant(t *testing.T) {
	menu := sampleMenu()
	// chicken-65 is ordered but unavailable; it still resolves for the profile
	menu[3].Available = false
	catalog := &mockCatalog{items: menu}
	history := &mockHistory{orders: map[string][]models.Order{
		"u1": {
			orderOf("o1", "u1", fixedClock, "samosa", "biryani"),
			orderOf("o2", "u1", fixedClock.Add(-2*time.Hour), "chicken-65", "kulfi"),
		},
	}}
	e := newTestEngine(t, catalog, history)

	ordered := []string{"samosa", "biryani", "chicken-65", "kulfi"}
	for limit := 1; limit <= len(menu)+2; limit++ {
		res := e.Personalized(context.Background(), "u1", limit)
		if res.Outcome != OutcomePersonalized {
			t.Fatalf("limit %d: Outcome = %s", limit, res.Outcome)
		}
		if len(res.Items) > limit {
			t.Errorf("limit %d: got %d items", limit, len(res.Items))
		}
		for _, id := range ordered {
			if contains(res.Items, id) {
				t.Errorf("limit %d: returned already ordered dish %s", limit, id)
			}
		}
	}

	// 9 available, 3 of them ordered
	if got := len(e.Personalized(context.Background(), "u1", 100).Items); got != 6 {
		t.Errorf("unbounded limit returned %d items, want 6", got)
	}
}

func TestPersonalized_ColdStartEquivalence(t *testing.T) {
	tests := []struct {
		name    string
		catalog MenuCatalogView
	}{
		{"plain catalog", &mockCatalog{items: sampleMenu()}},
		{"rated catalog", &mockRatedCatalog{mockCatalog: mockCatalog{items: sampleMenu()}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.catalog, &mockHistory{})
			for n := 1; n <= 12; n++ {
				res := e.Personalized(context.Background(), "newcomer", n)
				if res.Outcome != OutcomeColdStart {
					t.Fatalf("n=%d: Outcome = %s, want cold_start", n, res.Outcome)
				}
				popular, err := e.Popular(context.Background(), n)
				if err != nil {
					t.Fatalf("Popular: %v", err)
				}
				if !reflect.DeepEqual(ids(res.Items), ids(popular)) {
					t.Errorf("n=%d: personalized %v != popular %v", n, ids(res.Items), ids(popular))
				}
			}
		})
	}
}

func TestPersonalized_Fallback(t *testing.T) {
	errStore := errors.New("store unreachable")

	t.Run("history failure serves popular", func(t *testing.T) {
		rec := newMockRecorder()
		e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, &mockHistory{err: errStore}, WithRecorder(rec))

		res := e.Personalized(context.Background(), "u1", 3)
		if res.Outcome != OutcomeFallback || !res.Degraded() {
			t.Fatalf("Outcome = %s, want fallback", res.Outcome)
		}
		if !errors.Is(res.Cause, errStore) {
			t.Errorf("Cause = %v, want wrapped store error", res.Cause)
		}
		if got := ids(res.Items); !reflect.DeepEqual(got, []string{"biryani", "gulab-jamun", "dosa"}) {
			t.Errorf("fallback items = %v", got)
		}
		if rec.fallbackCount() != 1 {
			t.Errorf("fallbacks recorded = %d, want 1", rec.fallbackCount())
		}
	})

	t.Run("catalog failure returns empty", func(t *testing.T) {
		catalog := &mockCatalog{availableErr: errStore}
		e := newTestEngine(t, catalog, &mockHistory{})

		res := e.Personalized(context.Background(), "u1", 3)
		if res.Outcome != OutcomeFallback {
			t.Fatalf("Outcome = %s, want fallback", res.Outcome)
		}
		if res.Items == nil || len(res.Items) != 0 {
			t.Errorf("Items = %v, want empty non-nil", res.Items)
		}
		if !errors.Is(res.Cause, errStore) {
			t.Errorf("Cause = %v", res.Cause)
		}
	})

	t.Run("item lookup failure falls back", func(t *testing.T) {
		catalog := &mockCatalog{items: sampleMenu(), itemErr: errStore}
		history := &mockHistory{orders: map[string][]models.Order{
			"u1": {orderOf("o1", "u1", fixedClock, "retired-dish")},
		}}
		e := newTestEngine(t, catalog, history)

		res := e.Personalized(context.Background(), "u1", 2)
		if res.Outcome != OutcomeFallback {
			t.Errorf("Outcome = %s, want fallback", res.Outcome)
		}
	})
}

func TestPersonalized_DeletedDishIsSkipped(t *testing.T) {
	catalog := &mockCatalog{items: sampleMenu()}
	history := &mockHistory{orders: map[string][]models.Order{
		"u1": {orderOf("o1", "u1", fixedClock, "deleted-dish", "dosa")},
	}}
	e := newTestEngine(t, catalog, history)

	res := e.Personalized(context.Background(), "u1", 5)
	if res.Outcome != OutcomePersonalized {
		t.Fatalf("Outcome = %s, want personalized", res.Outcome)
	}
	if catalog.itemCalls.Load() != 1 {
		t.Errorf("ItemByID calls = %d, want 1 (only the dish missing from the available list)", catalog.itemCalls.Load())
	}
	if contains(res.Items, "dosa") {
		t.Error("ordered dish returned")
	}
}

func TestPersonalized_DeletedDishLookedUpOnce(t *testing.T) {
	catalog := &mockCatalog{items: sampleMenu()}
	orders := make([]models.Order, 0, 20)
	for i := 0; i < 20; i++ {
		orders = append(orders, orderOf(fmt.Sprintf("o%d", i), "u1",
			fixedClock.Add(-time.Duration(i)*time.Hour), "deleted-dish", "dosa"))
	}
	history := &mockHistory{orders: map[string][]models.Order{"u1": orders}}
	e := newTestEngine(t, catalog, history)

	res := e.Personalized(context.Background(), "u1", 5)
	if res.Outcome != OutcomePersonalized {
		t.Fatalf("Outcome = %s, want personalized", res.Outcome)
	}
	if got := catalog.itemCalls.Load(); got != 1 {
		t.Errorf("ItemByID calls = %d, want 1 for a dish missing from 20 orders", got)
	}
}

func TestPersonalized_EmptyOrdersAreHistory(t *testing.T) {
	catalog := &mockCatalog{items: sampleMenu()}
	history := &mockHistory{orders: map[string][]models.Order{
		"u1": {orderOf("o1", "u1", fixedClock)},
	}}
	e := newTestEngine(t, catalog, history)

	res := e.Personalized(context.Background(), "u1", 3)
	if res.Outcome != OutcomePersonalized {
		t.Errorf("Outcome = %s, want personalized", res.Outcome)
	}
	if len(res.Items) != 3 {
		t.Errorf("got %d items, want 3", len(res.Items))
	}

	p, err := e.Profile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.TimeSlots[SlotMorning] != 1 {
		t.Errorf("TimeSlots = %v, want one morning order", p.TimeSlots)
	}
}

func TestEngine_LogsWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(zerolog.SyncWriter(&buf)).Level(zerolog.DebugLevel)

	catalog := &mockCatalog{items: sampleMenu()}
	history := &mockHistory{orders: map[string][]models.Order{
		"u1": {orderOf("o1", "u1", fixedClock, "dosa")},
	}}
	e, err := NewEngine(catalog, history, testConfig(), logger,
		WithClock(func() time.Time { return fixedClock }),
		WithRequestID(func(context.Context) string { return "req-42" }),
	)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	e.Personalized(context.Background(), "u1", 3)
	out := buf.String()
	if !strings.Contains(out, "personalized recommendations computed") || !strings.Contains(out, `"request_id":"req-42"`) {
		t.Errorf("missing personalized debug line with request ID: %s", out)
	}

	buf.Reset()
	catalog.availableErr = errors.New("catalog down")
	e.Guest(context.Background(), 4)
	out = buf.String()
	if !strings.Contains(out, "section degraded") || !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("missing section degraded warning: %s", out)
	}
}

func TestPersonalized_PrefersOrderedCategory(t *testing.T) {
	catalog := &mockCatalog{items: sampleMenu()}
	history := &mockHistory{orders: map[string][]models.Order{
		"u1": {
			orderOf("o1", "u1", fixedClock, "gulab-jamun"),
			orderOf("o2", "u1", fixedClock, "gulab-jamun"),
		},
	}}
	e := newTestEngine(t, catalog, history)

	res := e.Personalized(context.Background(), "u1", 1)
	if got := ids(res.Items); !reflect.DeepEqual(got, []string{"kulfi"}) {
		t.Errorf("Personalized = %v, want [kulfi]", got)
	}
}

func TestPersonalized_NonPositiveLimit(t *testing.T) {
	catalog := &mockCatalog{items: sampleMenu()}
	e := newTestEngine(t, catalog, &mockHistory{})

	for _, limit := range []int{0, -3} {
		res := e.Personalized(context.Background(), "u1", limit)
		if len(res.Items) != 0 {
			t.Errorf("limit %d: got %d items", limit, len(res.Items))
		}
	}
	if catalog.availableCalls.Load() != 0 {
		t.Error("catalog read for a zero limit")
	}
}

func TestSimilar(t *testing.T) {
	errStore := errors.New("store unreachable")

	t.Run("self exclusion", func(t *testing.T) {
		e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, &mockHistory{})
		for _, item := range sampleMenu() {
			got, err := e.Similar(context.Background(), item.ID, 20)
			if err != nil {
				t.Fatalf("Similar(%s): %v", item.ID, err)
			}
			if contains(got, item.ID) {
				t.Errorf("Similar(%s) returned the reference dish", item.ID)
			}
			if len(got) != len(sampleMenu())-1 {
				t.Errorf("Similar(%s) returned %d items", item.ID, len(got))
			}
		}
	})

	t.Run("same subcategory ranks first", func(t *testing.T) {
		e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, &mockHistory{})
		got, err := e.Similar(context.Background(), "samosa", 2)
		if err != nil {
			t.Fatalf("Similar: %v", err)
		}
		// pakora and dosa share category, subcategory and spice level; pakora is closer in price
		if !reflect.DeepEqual(ids(got), []string{"pakora", "dosa"}) {
			t.Errorf("Similar(samosa) = %v, want [pakora dosa]", ids(got))
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, &mockHistory{})
		got, err := e.Similar(context.Background(), "nope", 5)
		if err != nil {
			t.Fatalf("Similar: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Similar(nope) = %v, want empty", got)
		}
	})

	t.Run("read failure is returned", func(t *testing.T) {
		e := newTestEngine(t, &mockCatalog{items: sampleMenu(), itemErr: errStore}, &mockHistory{})
		if _, err := e.Similar(context.Background(), "samosa", 5); !errors.Is(err, errStore) {
			t.Errorf("err = %v, want store error", err)
		}
	})
}

func TestPopular(t *testing.T) {
	want := []string{
		"biryani", "gulab-jamun", "dosa", "thali", "kulfi",
		"samosa", "chicken-65", "lassi", "fish-fry", "pakora",
	}

	tests := []struct {
		name    string
		catalog MenuCatalogView
	}{
		{"plain catalog", &mockCatalog{items: sampleMenu()}},
		{"rated catalog", &mockRatedCatalog{mockCatalog: mockCatalog{items: sampleMenu()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.catalog, &mockHistory{})
			got, err := e.Popular(context.Background(), 20)
			if err != nil {
				t.Fatalf("Popular: %v", err)
			}
			if !reflect.DeepEqual(ids(got), want) {
				t.Errorf("Popular = %v, want %v", ids(got), want)
			}
		})
	}

	t.Run("rated catalog is asked to sort", func(t *testing.T) {
		catalog := &mockRatedCatalog{mockCatalog: mockCatalog{items: sampleMenu()}}
		e := newTestEngine(t, catalog, &mockHistory{})
		if _, err := e.Popular(context.Background(), 3); err != nil {
			t.Fatalf("Popular: %v", err)
		}
		if catalog.ratedCalls.Load() != 1 {
			t.Errorf("AvailableItemsByRating calls = %d, want 1", catalog.ratedCalls.Load())
		}
	})

	t.Run("unavailable items are excluded", func(t *testing.T) {
		menu := sampleMenu()
		menu[4].Available = false // biryani
		e := newTestEngine(t, &mockCatalog{items: menu}, &mockHistory{})
		got, _ := e.Popular(context.Background(), 1)
		if !reflect.DeepEqual(ids(got), []string{"gulab-jamun"}) {
			t.Errorf("Popular = %v, want [gulab-jamun]", ids(got))
		}
	})
}

func TestByCategory(t *testing.T) {
	e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, &mockHistory{})

	tests := []struct {
		category models.Category
		limit    int
		want     []string
	}{
		{models.CategoryVeg, 10, []string{"dosa", "thali", "samosa", "pakora"}},
		{models.CategoryNonVeg, 2, []string{"biryani", "chicken-65"}},
		{models.CategoryDessert, 10, []string{"gulab-jamun", "kulfi"}},
		{models.CategoryBeverage, 10, []string{"lassi"}},
		{models.CategoryVeg, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got, err := e.ByCategory(context.Background(), tt.category, tt.limit)
			if err != nil {
				t.Fatalf("ByCategory: %v", err)
			}
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("ByCategory = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestByTimeSlot_ScenarioB(t *testing.T) {
	e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, &mockHistory{})

	got, err := e.ByTimeSlot(context.Background(), SlotMorning, 20)
	if err != nil {
		t.Fatalf("ByTimeSlot: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no morning dishes returned")
	}
	for i := range got {
		if got[i].SubCategory != "veg-snacks" && got[i].SubCategory != "dessert" {
			t.Errorf("morning returned %s (%s)", got[i].ID, got[i].SubCategory)
		}
	}
	want := []string{"gulab-jamun", "dosa", "kulfi", "samosa", "pakora"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("ByTimeSlot(morning) = %v, want %v", ids(got), want)
	}
}

func TestByTimeSlot_EverySlotHonoursTable(t *testing.T) {
	e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, &mockHistory{})
	table := DefaultConfig().SlotSubCategories

	for _, slot := range TimeSlots {
		t.Run(string(slot), func(t *testing.T) {
			got, err := e.ByTimeSlot(context.Background(), slot, 20)
			if err != nil {
				t.Fatalf("ByTimeSlot: %v", err)
			}
			allowed := table[slot]
			for i := range got {
				if got[i].SubCategory != allowed[0] && got[i].SubCategory != allowed[1] {
					t.Errorf("%s returned %s (%s)", slot, got[i].ID, got[i].SubCategory)
				}
			}
		})
	}
}

func TestByTimeSlot_CurrentSlot(t *testing.T) {
	evening := time.Date(2026, 5, 4, 19, 0, 0, 0, time.UTC)
	e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, &mockHistory{},
		WithClock(func() time.Time { return evening }))

	if e.CurrentSlot() != SlotEvening {
		t.Fatalf("CurrentSlot = %s, want evening", e.CurrentSlot())
	}
	implicit, err := e.ByTimeSlot(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("ByTimeSlot: %v", err)
	}
	explicit, _ := e.ByTimeSlot(context.Background(), SlotEvening, 10)
	if !reflect.DeepEqual(ids(implicit), ids(explicit)) {
		t.Errorf("implicit slot %v != evening %v", ids(implicit), ids(explicit))
	}
}

func TestMixed_ScenarioC(t *testing.T) {
	history := &mockHistory{orders: map[string][]models.Order{
		"u1": {orderOf("o1", "u1", fixedClock, "samosa")},
	}}
	e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, history)

	sections := e.Mixed(context.Background(), "u1", 20)
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}

	bounds := map[string]int{SectionPersonalized: 8, SectionTimeBased: 6, SectionPopular: 6}
	wantLabels := []string{SectionPersonalized, SectionTimeBased, SectionPopular}
	total := 0
	for i, s := range sections {
		if s.Label != wantLabels[i] {
			t.Errorf("section %d label = %s, want %s", i, s.Label, wantLabels[i])
		}
		if len(s.Items) > bounds[s.Label] {
			t.Errorf("section %s has %d items, bound %d", s.Label, len(s.Items), bounds[s.Label])
		}
		if s.Degraded {
			t.Errorf("section %s unexpectedly degraded", s.Label)
		}
		total += len(s.Items)
	}
	if total > 20 {
		t.Errorf("total items = %d, want <= 20", total)
	}

	// sections are independent and may repeat a dish
	if !contains(sections[1].Items, "gulab-jamun") || !contains(sections[2].Items, "gulab-jamun") {
		t.Error("expected gulab-jamun in both time-based and popular sections")
	}
}

func TestMixed_DegradedSections(t *testing.T) {
	rec := newMockRecorder()
	catalog := &mockCatalog{availableErr: errors.New("catalog down")}
	e := newTestEngine(t, catalog, &mockHistory{}, WithRecorder(rec))

	sections := e.Mixed(context.Background(), "u1", 10)
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	for _, s := range sections {
		if !s.Degraded {
			t.Errorf("section %s not flagged degraded", s.Label)
		}
		if len(s.Items) != 0 {
			t.Errorf("section %s has items", s.Label)
		}
	}
	if rec.fallbackCount() != 3 {
		t.Errorf("fallbacks recorded = %d, want 3", rec.fallbackCount())
	}
}

func TestGuest(t *testing.T) {
	e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, &mockHistory{})

	sections := e.Guest(context.Background(), 7)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].Label != SectionPopular || sections[1].Label != SectionTimeBased {
		t.Errorf("labels = %s, %s", sections[0].Label, sections[1].Label)
	}
	// floor(7 * 50%) = 3
	for _, s := range sections {
		if len(s.Items) != 3 {
			t.Errorf("section %s has %d items, want 3", s.Label, len(s.Items))
		}
	}
	if !reflect.DeepEqual(ids(sections[1].Items), []string{"gulab-jamun", "dosa", "kulfi"}) {
		t.Errorf("time-based = %v", ids(sections[1].Items))
	}
}

func TestShare(t *testing.T) {
	tests := []struct {
		limit, pct, want int
	}{
		{20, 40, 8},
		{20, 30, 6},
		{10, 30, 3},
		{7, 50, 3},
		{1, 40, 0},
		{0, 50, 0},
		{-5, 50, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := share(tt.limit, tt.pct); got != tt.want {
			t.Errorf("share(%d, %d) = %d, want %d", tt.limit, tt.pct, got, tt.want)
		}
	}
}

func TestEngine_Deterministic(t *testing.T) {
	history := &mockHistory{orders: map[string][]models.Order{
		"u1": {
			orderOf("o1", "u1", fixedClock, "samosa", "thali"),
			orderOf("o2", "u1", fixedClock.Add(-10*time.Hour), "fish-fry"),
		},
	}}
	e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, history)
	ctx := context.Background()

	run := func() []interface{} {
		similar, _ := e.Similar(ctx, "thali", 5)
		slot, _ := e.ByTimeSlot(ctx, "", 5)
		return []interface{}{
			e.Personalized(ctx, "u1", 5).Items,
			similar,
			slot,
			e.Mixed(ctx, "u1", 10),
			e.Guest(ctx, 10),
		}
	}

	first := run()
	for i := 0; i < 5; i++ {
		if next := run(); !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d differs from first run", i+2)
		}
	}
}

func TestEngine_ConcurrentUse(t *testing.T) {
	history := &mockHistory{orders: map[string][]models.Order{
		"u1": {orderOf("o1", "u1", fixedClock, "samosa")},
	}}
	e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, history)
	want := ids(e.Personalized(context.Background(), "u1", 4).Items)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := ids(e.Personalized(context.Background(), "u1", 4).Items)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent result %v != %v", got, want)
			}
			_ = e.Mixed(context.Background(), "u1", 10)
		}()
	}
	wg.Wait()
}

func TestEngine_RecordsOutcomes(t *testing.T) {
	rec := newMockRecorder()
	history := &mockHistory{orders: map[string][]models.Order{
		"u1": {orderOf("o1", "u1", fixedClock, "samosa")},
	}}
	e := newTestEngine(t, &mockCatalog{items: sampleMenu()}, history, WithRecorder(rec))

	e.Personalized(context.Background(), "u1", 3)
	e.Personalized(context.Background(), "nobody", 3)
	_, _ = e.Popular(context.Background(), 3)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if got := rec.outcomes["personalized"]; !reflect.DeepEqual(got, []string{"personalized", "cold_start"}) {
		t.Errorf("personalized outcomes = %v", got)
	}
	if got := rec.outcomes["popular"]; !reflect.DeepEqual(got, []string{"success"}) {
		t.Errorf("popular outcomes = %v", got)
	}
}
