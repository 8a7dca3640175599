// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package models

import (
	"errors"
	"sort"

	"github.com/goccy/go-json"
)

// ErrNotFound is returned by catalog and history lookups when the requested
// record does not exist.
var ErrNotFound = errors.New("not found")

// Category is the top-level dish classification.
type Category string

const (
	CategoryVeg      Category = "veg"
	CategoryNonVeg   Category = "non-veg"
	CategoryDessert  Category = "dessert"
	CategoryBeverage Category = "beverage"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryVeg, CategoryNonVeg, CategoryDessert, CategoryBeverage}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryVeg, CategoryNonVeg, CategoryDessert, CategoryBeverage:
		return true
	default:
		return false
	}
}

// SpiceLevel describes how hot a dish is.
type SpiceLevel string

const (
	SpiceMild     SpiceLevel = "mild"
	SpiceMedium   SpiceLevel = "medium"
	SpiceHot      SpiceLevel = "hot"
	SpiceExtraHot SpiceLevel = "extra-hot"
)

// SpiceLevels lists every valid spice level from mildest to hottest.
var SpiceLevels = []SpiceLevel{SpiceMild, SpiceMedium, SpiceHot, SpiceExtraHot}

// Valid reports whether s is one of the known spice levels.
func (s SpiceLevel) Valid() bool {
	switch s {
	case SpiceMild, SpiceMedium, SpiceHot, SpiceExtraHot:
		return true
	default:
		return false
	}
}

// Allergen is a declared allergen from the fixed menu labelling list.
type Allergen string

const (
	AllergenGluten    Allergen = "gluten"
	AllergenDairy     Allergen = "dairy"
	AllergenNuts      Allergen = "nuts"
	AllergenPeanuts   Allergen = "peanuts"
	AllergenSoy       Allergen = "soy"
	AllergenEgg       Allergen = "egg"
	AllergenShellfish Allergen = "shellfish"
	AllergenFish      Allergen = "fish"
	AllergenSesame    Allergen = "sesame"
	AllergenMustard   Allergen = "mustard"
)

// Allergens lists every labelled allergen.
var Allergens = []Allergen{
	AllergenGluten, AllergenDairy, AllergenNuts, AllergenPeanuts, AllergenSoy,
	AllergenEgg, AllergenShellfish, AllergenFish, AllergenSesame, AllergenMustard,
}

// Valid reports whether a is on the labelling list.
func (a Allergen) Valid() bool {
	for _, known := range Allergens {
		if a == known {
			return true
		}
	}
	return false
}

// AllergenSet is an unordered set of allergens.
type AllergenSet map[Allergen]struct{}

// NewAllergenSet builds a set from the given allergens. Duplicates collapse.
func NewAllergenSet(allergens ...Allergen) AllergenSet {
	set := make(AllergenSet, len(allergens))
	for _, a := range allergens {
		set[a] = struct{}{}
	}
	return set
}

// Has reports whether a is in the set.
func (s AllergenSet) Has(a Allergen) bool {
	_, ok := s[a]
	return ok
}

// Add inserts every allergen of other into s.
func (s AllergenSet) Add(other AllergenSet) {
	for a := range other {
		s[a] = struct{}{}
	}
}

// Intersects reports whether s and other share at least one allergen.
func (s AllergenSet) Intersects(other AllergenSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for a := range small {
		if large.Has(a) {
			return true
		}
	}
	return false
}

// Slice returns the allergens in sorted order, for stable encoding.
func (s AllergenSet) Slice() []Allergen {
	out := make([]Allergen, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the sorted allergens as plain strings.
func (s AllergenSet) Strings() []string {
	sorted := s.Slice()
	out := make([]string, len(sorted))
	for i, a := range sorted {
		out[i] = string(a)
	}
	return out
}

// MarshalJSON encodes the set as a sorted array so responses are stable.
func (s AllergenSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON decodes an array of allergen names.
func (s *AllergenSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = AllergenSetFromStrings(names)
	return nil
}

// AllergenSetFromStrings converts stored allergen names back into a set.
func AllergenSetFromStrings(names []string) AllergenSet {
	set := make(AllergenSet, len(names))
	for _, n := range names {
		set[Allergen(n)] = struct{}{}
	}
	return set
}

// Rating is the aggregate customer rating of a menu item.
type Rating struct {
	Average float64 `json:"average"` // 0 to 5, 0 means unrated
	Count   int     `json:"count"`
}

// MenuItem is a dish offered by the restaurant.
type MenuItem struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	SubCategory string      `json:"sub_category"`
	Price       float64     `json:"price"`
	SpiceLevel  SpiceLevel  `json:"spice_level"`
	Ingredients []string    `json:"ingredients"`
	Allergens   AllergenSet `json:"allergens"`
	Rating      Rating      `json:"rating"`
	Available   bool        `json:"available"`
}
