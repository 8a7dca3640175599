// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package seed

import "github.com/tomtom215/platewise/internal/models"

// dishTemplate describes one family of dishes the generator can emit.
type dishTemplate struct {
	category    models.Category
	subCategory string
	names       []string
	ingredients []string
	minPrice    int
	maxPrice    int
	spicy       bool
}

// templates cover every category and every subcategory the default
// time-slot table serves, plus two beverage subcategories.
var templates = []dishTemplate{
	{
		category:    models.CategoryVeg,
		subCategory: "veg-snacks",
		names:       []string{"Samosa", "Paneer Tikka", "Aloo Tikki", "Veg Spring Roll", "Masala Vada", "Dhokla"},
		ingredients: []string{"potato", "peas", "paneer", "wheat flour", "chickpea flour", "onion", "coriander", "sesame"},
		minPrice:    40,
		maxPrice:    160,
		spicy:       true,
	},
	{
		category:    models.CategoryVeg,
		subCategory: "regular-lunch",
		names:       []string{"Dal Makhani Thali", "Rajma Chawal", "Veg Biryani", "Palak Paneer", "Chole Bhature"},
		ingredients: []string{"rice", "lentils", "kidney beans", "spinach", "paneer", "butter", "wheat flour", "tomato", "cashew"},
		minPrice:    120,
		maxPrice:    320,
		spicy:       true,
	},
	{
		category:    models.CategoryNonVeg,
		subCategory: "non-veg-snacks",
		names:       []string{"Chicken Tikka", "Fish Fingers", "Egg Roll", "Seekh Kebab", "Prawn Koliwada"},
		ingredients: []string{"chicken", "fish", "egg", "mutton", "prawn", "yogurt", "wheat flour", "mustard seeds"},
		minPrice:    120,
		maxPrice:    380,
		spicy:       true,
	},
	{
		category:    models.CategoryNonVeg,
		subCategory: "regular-lunch",
		names:       []string{"Butter Chicken Thali", "Mutton Biryani", "Fish Curry Rice", "Egg Curry", "Chicken Fried Rice"},
		ingredients: []string{"chicken", "mutton", "fish", "egg", "rice", "butter", "cream", "tomato", "soy sauce"},
		minPrice:    180,
		maxPrice:    450,
		spicy:       true,
	},
	{
		category:    models.CategoryDessert,
		subCategory: "dessert",
		names:       []string{"Gulab Jamun", "Rasmalai", "Kulfi", "Gajar Halwa", "Chocolate Brownie", "Kheer"},
		ingredients: []string{"milk", "sugar", "cardamom", "khoya", "carrot", "pistachio", "cocoa", "egg", "wheat flour"},
		minPrice:    60,
		maxPrice:    220,
	},
	{
		category:    models.CategoryBeverage,
		subCategory: "hot-drinks",
		names:       []string{"Masala Chai", "Filter Coffee", "Ginger Tea", "Hot Chocolate"},
		ingredients: []string{"tea leaves", "milk", "sugar", "ginger", "coffee", "cocoa", "cardamom"},
		minPrice:    20,
		maxPrice:    120,
	},
	{
		category:    models.CategoryBeverage,
		subCategory: "cold-drinks",
		names:       []string{"Mango Lassi", "Fresh Lime Soda", "Cold Coffee", "Badam Milk"},
		ingredients: []string{"yogurt", "mango", "lime", "soda", "coffee", "milk", "almond", "sugar"},
		minPrice:    40,
		maxPrice:    180,
	},
}

// ingredientAllergens derives a dish's allergens from its ingredients.
var ingredientAllergens = map[string]models.Allergen{
	"paneer":        models.AllergenDairy,
	"butter":        models.AllergenDairy,
	"cream":         models.AllergenDairy,
	"yogurt":        models.AllergenDairy,
	"milk":          models.AllergenDairy,
	"khoya":         models.AllergenDairy,
	"wheat flour":   models.AllergenGluten,
	"cashew":        models.AllergenNuts,
	"pistachio":     models.AllergenNuts,
	"almond":        models.AllergenNuts,
	"egg":           models.AllergenEgg,
	"fish":          models.AllergenFish,
	"prawn":         models.AllergenShellfish,
	"sesame":        models.AllergenSesame,
	"soy sauce":     models.AllergenSoy,
	"mustard seeds": models.AllergenMustard,
}

var nameStyles = []string{"Classic", "Homestyle", "Royal", "Street-style", "Chef's", "Tandoori", "Smoky", "Special"}
