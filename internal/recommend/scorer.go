// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

import (
	"math"

	"github.com/tomtom215/platewise/internal/models"
)

// maxRating is the top of the rating scale.
const maxRating = 5.0

// neutralRating is the rating factor used when either side has no rating.
const neutralRating = 0.5

// Breakdown holds the unweighted factor values of one score and the weighted total.
type Breakdown struct {
	Category    float64 `json:"category"`
	SubCategory float64 `json:"sub_category"`
	Price       float64 `json:"price"`
	Spice       float64 `json:"spice"`
	Rating      float64 `json:"rating"`
	Ingredient  float64 `json:"ingredient"`
	Allergen    float64 `json:"allergen"`
	Total       float64 `json:"total"`
}

// Scorer computes the affinity between a profile and a menu item.
//
// Category, subcategory, spice and ingredient factors are raw quantity counts,
// not proportions, so a score is unbounded above 1 for customers who order one
// category heavily.
type Scorer struct {
	weights ScoreWeights
}

// NewScorer creates a scorer with the given factor weights.
//
//nolint:gocritic // hugeParam: weights are copied once per engine
func NewScorer(weights ScoreWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score returns the weighted sum of the seven factors.
func (s *Scorer) Score(p *Profile, item *models.MenuItem) float64 {
	return s.Explain(p, item).Total
}

// Explain returns every factor value along with the weighted total.
func (s *Scorer) Explain(p *Profile, item *models.MenuItem) Breakdown {
	b := Breakdown{
		Category:    float64(p.CategoryWeight[item.Category]),
		SubCategory: float64(p.SubCategoryWeight[item.SubCategory]),
		Price:       priceProximity(p.PriceRange, item.Price),
		Spice:       float64(p.SpiceWeight[item.SpiceLevel]),
		Rating:      ratingProximity(p.AvgRating, item.Rating.Average),
		Ingredient:  ingredientAffinity(p.IngredientWeight, item.Ingredients),
		Allergen:    allergenSafety(p.Allergens, item.Allergens),
	}

	w := s.weights
	b.Total = b.Category*w.Category +
		b.SubCategory*w.SubCategory +
		b.Price*w.Price +
		b.Spice*w.Spice +
		b.Rating*w.Rating +
		b.Ingredient*w.Ingredient +
		b.Allergen*w.Allergen

	return b
}

// priceProximity is 1 at the range midpoint and falls linearly to 0 one full
// width away. A zero-width range always scores 1.
//
//nolint:gocritic // hugeParam: PriceRange is two floats
func priceProximity(r PriceRange, price float64) float64 {
	width := r.Width()
	if width == 0 {
		return 1
	}
	return math.Max(0, 1-math.Abs(price-r.Midpoint())/width)
}

func ratingProximity(profileRating, itemRating float64) float64 {
	if profileRating == 0 || itemRating == 0 {
		return neutralRating
	}
	return math.Max(0, 1-math.Abs(profileRating-itemRating)/maxRating)
}

func ingredientAffinity(weights map[string]int, ingredients []string) float64 {
	if len(ingredients) == 0 {
		return 0
	}
	var sum int
	for _, ing := range ingredients {
		sum += weights[ing]
	}
	return float64(sum) / float64(len(ingredients))
}

func allergenSafety(profile, item models.AllergenSet) float64 {
	if item.Intersects(profile) {
		return 0
	}
	return 1
}
