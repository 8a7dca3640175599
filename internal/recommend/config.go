// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid recommend config")

// weightTolerance absorbs float rounding when checking that weights sum to 1.
const weightTolerance = 1e-6

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights are the seven scoring factor weights. They must sum to 1.0.
	Weights ScoreWeights `json:"weights"`

	// HistoryLimit is the maximum number of recent orders read per customer.
	HistoryLimit int `json:"history_limit"`

	// DefaultPriceRange is the profile price range when no priced item was ordered.
	DefaultPriceRange PriceRange `json:"default_price_range"`

	// Similar controls the synthetic profile used by similar-item queries.
	Similar SimilarConfig `json:"similar"`

	// MixedShares splits a mixed request's limit across its sections (percent).
	MixedShares MixedShares `json:"mixed_shares"`

	// GuestShares splits a guest request's limit across its sections (percent).
	GuestShares GuestShares `json:"guest_shares"`

	// SlotSubCategories maps each time slot to the subcategories served in it.
	SlotSubCategories map[TimeSlot][]string `json:"slot_sub_categories"`

	// Location is the time zone used for order and current-time slots.
	// Nil means time.Local.
	Location *time.Location `json:"-"`
}

// ScoreWeights are the per-factor weights of the similarity score.
type ScoreWeights struct {
	Category    float64 `json:"category"`
	SubCategory float64 `json:"sub_category"`
	Price       float64 `json:"price"`
	Spice       float64 `json:"spice"`
	Rating      float64 `json:"rating"`
	Ingredient  float64 `json:"ingredient"`
	Allergen    float64 `json:"allergen"`
}

// Sum returns the total of all weights.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScoreWeights) Sum() float64 {
	return w.Category + w.SubCategory + w.Price + w.Spice + w.Rating + w.Ingredient + w.Allergen
}

// SimilarConfig defines the synthetic profile built from a reference dish.
type SimilarConfig struct {
	// AttributeWeight is assigned to the dish's category, subcategory and spice level.
	AttributeWeight int `json:"attribute_weight"`

	// IngredientWeight is assigned to each of the dish's ingredients.
	IngredientWeight int `json:"ingredient_weight"`

	// PriceBandLow and PriceBandHigh scale the dish price into the profile range.
	PriceBandLow  float64 `json:"price_band_low"`
	PriceBandHigh float64 `json:"price_band_high"`
}

// MixedShares are the section percentages of a mixed response.
type MixedShares struct {
	Personalized int `json:"personalized"`
	TimeBased    int `json:"time_based"`
	Popular      int `json:"popular"`
}

// GuestShares are the section percentages of a guest response.
type GuestShares struct {
	Popular   int `json:"popular"`
	TimeBased int `json:"time_based"`
}

// DefaultConfig returns a configuration with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: ScoreWeights{
			Category:    0.25,
			SubCategory: 0.20,
			Price:       0.15,
			Spice:       0.10,
			Rating:      0.15,
			Ingredient:  0.10,
			Allergen:    0.05,
		},
		HistoryLimit:      50,
		DefaultPriceRange: PriceRange{Min: 0, Max: 1000},
		Similar: SimilarConfig{
			AttributeWeight:  10,
			IngredientWeight: 5,
			PriceBandLow:     0.8,
			PriceBandHigh:    1.2,
		},
		MixedShares: MixedShares{Personalized: 40, TimeBased: 30, Popular: 30},
		GuestShares: GuestShares{Popular: 50, TimeBased: 50},
		SlotSubCategories: map[TimeSlot][]string{
			SlotMorning:   {"veg-snacks", "dessert"},
			SlotAfternoon: {"regular-lunch", "veg-snacks"},
			SlotEvening:   {"regular-lunch", "non-veg-snacks"},
			SlotNight:     {"dessert", "veg-snacks"},
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	w := c.Weights
	for name, v := range map[string]float64{
		"category": w.Category, "sub_category": w.SubCategory, "price": w.Price,
		"spice": w.Spice, "rating": w.Rating, "ingredient": w.Ingredient, "allergen": w.Allergen,
	} {
		if v < 0 {
			return fmt.Errorf("%w: weights.%s must be non-negative, got %f", ErrInvalidConfig, name, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: weights must sum to 1.0, got %f", ErrInvalidConfig, sum)
	}

	if c.HistoryLimit < 1 {
		return fmt.Errorf("%w: history_limit must be positive, got %d", ErrInvalidConfig, c.HistoryLimit)
	}
	if c.DefaultPriceRange.Min < 0 || c.DefaultPriceRange.Max < c.DefaultPriceRange.Min {
		return fmt.Errorf("%w: default_price_range must satisfy 0 <= min <= max, got [%f, %f]",
			ErrInvalidConfig, c.DefaultPriceRange.Min, c.DefaultPriceRange.Max)
	}

	if c.Similar.AttributeWeight < 0 || c.Similar.IngredientWeight < 0 {
		return fmt.Errorf("%w: similar weights must be non-negative", ErrInvalidConfig)
	}
	if c.Similar.PriceBandLow < 0 || c.Similar.PriceBandHigh < c.Similar.PriceBandLow {
		return fmt.Errorf("%w: similar price band must satisfy 0 <= low <= high, got [%f, %f]",
			ErrInvalidConfig, c.Similar.PriceBandLow, c.Similar.PriceBandHigh)
	}

	m := c.MixedShares
	if m.Personalized < 0 || m.TimeBased < 0 || m.Popular < 0 || m.Personalized+m.TimeBased+m.Popular > 100 {
		return fmt.Errorf("%w: mixed_shares must be non-negative and total at most 100", ErrInvalidConfig)
	}
	g := c.GuestShares
	if g.Popular < 0 || g.TimeBased < 0 || g.Popular+g.TimeBased > 100 {
		return fmt.Errorf("%w: guest_shares must be non-negative and total at most 100", ErrInvalidConfig)
	}

	for _, slot := range TimeSlots {
		if len(c.SlotSubCategories[slot]) == 0 {
			return fmt.Errorf("%w: slot_sub_categories.%s must list at least one subcategory", ErrInvalidConfig, slot)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.SlotSubCategories = make(map[TimeSlot][]string, len(c.SlotSubCategories))
	for slot, subs := range c.SlotSubCategories {
		clone.SlotSubCategories[slot] = append([]string(nil), subs...)
	}
	return &clone
}

// location returns the configured zone or time.Local.
func (c *Config) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}
