// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/platewise/internal/models"
)

// MenuCatalogView provides read-only access to the menu.
type MenuCatalogView interface {
	// AvailableItems returns the items currently marked available, in catalog order.
	AvailableItems(ctx context.Context) ([]models.MenuItem, error)

	// ItemByID returns any item, available or not. Returns models.ErrNotFound
	// when the item does not exist.
	ItemByID(ctx context.Context, id string) (models.MenuItem, error)
}

// RatedCatalogView is implemented by catalogs that can order available items
// by rating in their own query layer.
type RatedCatalogView interface {
	MenuCatalogView

	// AvailableItemsByRating returns available items ordered by rating average
	// descending, then rating count descending, then catalog order.
	AvailableItemsByRating(ctx context.Context) ([]models.MenuItem, error)
}

// OrderHistoryView provides read-only access to past orders.
type OrderHistoryView interface {
	// RecentOrdersForUser returns at most maxCount orders, newest first.
	RecentOrdersForUser(ctx context.Context, userID string, maxCount int) ([]models.Order, error)
}

// ItemResolver maps a menu item ID to the current item.
type ItemResolver func(id string) (models.MenuItem, bool)

// TimeSlot is one of the four local-time bands of the day.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotNight     TimeSlot = "night"
)

// TimeSlots lists the slots in day order.
var TimeSlots = []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

// SlotForHour maps a local hour (0-23) to its band:
// [6,12) morning, [12,17) afternoon, [17,22) evening, anything else night.
func SlotForHour(hour int) TimeSlot {
	switch {
	case hour >= 6 && hour < 12:
		return SlotMorning
	case hour >= 12 && hour < 17:
		return SlotAfternoon
	case hour >= 17 && hour < 22:
		return SlotEvening
	default:
		return SlotNight
	}
}

// SlotForTime returns the band of t in loc. A nil loc uses t's own location.
func SlotForTime(t time.Time, loc *time.Location) TimeSlot {
	if loc != nil {
		t = t.In(loc)
	}
	return SlotForHour(t.Hour())
}

// ParseTimeSlot validates a slot name.
func ParseTimeSlot(s string) (TimeSlot, error) {
	switch slot := TimeSlot(s); slot {
	case SlotMorning, SlotAfternoon, SlotEvening, SlotNight:
		return slot, nil
	default:
		return "", fmt.Errorf("unknown time slot %q", s)
	}
}

// PriceRange is the observed unit price band of a profile.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Width returns Max - Min.
func (r PriceRange) Width() float64 {
	return r.Max - r.Min
}

// Midpoint returns the center of the range.
func (r PriceRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

// Profile is the weighted preference summary derived from a customer's orders.
// It is built per request and never stored.
type Profile struct {
	CategoryWeight    map[models.Category]int   `json:"category_weight"`
	SubCategoryWeight map[string]int            `json:"sub_category_weight"`
	IngredientWeight  map[string]int            `json:"ingredient_weight"`
	SpiceWeight       map[models.SpiceLevel]int `json:"spice_weight"`
	PriceRange        PriceRange                `json:"price_range"`
	AvgRating         float64                   `json:"avg_rating"`
	TimeSlots         map[TimeSlot]int          `json:"time_slots"`
	Allergens         models.AllergenSet        `json:"allergens"`
}

// newProfile returns an empty profile with the given default price range.
func newProfile(defaultRange PriceRange) Profile {
	return Profile{
		CategoryWeight:    make(map[models.Category]int),
		SubCategoryWeight: make(map[string]int),
		IngredientWeight:  make(map[string]int),
		SpiceWeight:       make(map[models.SpiceLevel]int),
		PriceRange:        defaultRange,
		TimeSlots:         make(map[TimeSlot]int),
		Allergens:         models.NewAllergenSet(),
	}
}

// Outcome names the path that produced a personalized result.
type Outcome string

const (
	// OutcomePersonalized means the result was scored against the customer's profile.
	OutcomePersonalized Outcome = "personalized"

	// OutcomeColdStart means the customer has no orders and popularity was served.
	OutcomeColdStart Outcome = "cold_start"

	// OutcomeFallback means a read failed and popularity was served instead.
	OutcomeFallback Outcome = "fallback"
)

// Result is the outcome of a personalized query. It never carries an error to
// the caller; Cause explains a fallback for logging and diagnostics.
type Result struct {
	Items   []models.MenuItem
	Outcome Outcome
	Cause   error
}

// Degraded reports whether the result came from the fallback branch.
func (r *Result) Degraded() bool {
	return r.Outcome == OutcomeFallback
}

// Section is one labeled group of a blended response.
type Section = models.Section

// Section labels used by the blended modes.
const (
	SectionPersonalized = "personalized"
	SectionTimeBased    = "time_based"
	SectionPopular      = "popular"
)
