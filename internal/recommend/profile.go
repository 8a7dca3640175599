// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

import (
	"math"
	"time"

	"github.com/tomtom215/platewise/internal/models"
)

// Extractor builds preference profiles from order history.
type Extractor struct {
	// DefaultPriceRange is used when no ordered item could be priced.
	DefaultPriceRange PriceRange

	// Location is the zone used to bucket order times into slots.
	Location *time.Location
}

// Extract turns orders into a Profile. Lines whose menu item cannot be
// resolved are skipped. An empty order list yields the default profile,
// which is the cold-start signal.
func (x Extractor) Extract(orders []models.Order, resolve ItemResolver) Profile {
	p := newProfile(x.DefaultPriceRange)
	if len(orders) == 0 {
		return p
	}

	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	var ratingSum float64
	var ratingCount int

	for i := range orders {
		order := &orders[i]
		p.TimeSlots[SlotForTime(order.CreatedAt, x.Location)]++

		for _, line := range order.Lines {
			item, ok := resolve(line.MenuItemID)
			if !ok {
				continue
			}
			qty := line.Quantity

			p.CategoryWeight[item.Category] += qty
			p.SubCategoryWeight[item.SubCategory] += qty
			p.SpiceWeight[item.SpiceLevel] += qty
			for _, ing := range item.Ingredients {
				p.IngredientWeight[ing] += qty
			}
			p.Allergens.Add(item.Allergens)

			minPrice = math.Min(minPrice, item.Price)
			maxPrice = math.Max(maxPrice, item.Price)

			// one vote per line, regardless of quantity
			if item.Rating.Average > 0 {
				ratingSum += item.Rating.Average
				ratingCount++
			}
		}
	}

	if !math.IsInf(minPrice, 1) {
		p.PriceRange = PriceRange{Min: minPrice, Max: maxPrice}
	}
	if ratingCount > 0 {
		p.AvgRating = ratingSum / float64(ratingCount)
	}

	return p
}

// SimilarProfile synthesizes a profile that strongly prefers dishes like item.
//
//nolint:gocritic // hugeParam: item passed by value, it is read only
func SimilarProfile(item models.MenuItem, cfg SimilarConfig) Profile {
	p := newProfile(PriceRange{
		Min: item.Price * cfg.PriceBandLow,
		Max: item.Price * cfg.PriceBandHigh,
	})

	p.CategoryWeight[item.Category] = cfg.AttributeWeight
	p.SubCategoryWeight[item.SubCategory] = cfg.AttributeWeight
	p.SpiceWeight[item.SpiceLevel] = cfg.AttributeWeight
	for _, ing := range item.Ingredients {
		p.IngredientWeight[ing] = cfg.IngredientWeight
	}
	p.AvgRating = item.Rating.Average
	p.Allergens.Add(item.Allergens)

	return p
}
