// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

/*
Package models defines data structures for the Platewise service.

Key Components:

  - MenuItem: a dish in the catalog, with category, spice level, ingredients,
    allergens and an aggregate customer rating
  - Order and OrderLine: a customer's past order with per-line quantities and a
    snapshot of the dish as it was sold
  - APIResponse: standardized API response wrapper used by every HTTP endpoint

Menu items and orders are owned by other subsystems (menu management and order
management). Everything in Platewise treats them as read-only values.

Enumerations (Category, SpiceLevel, Allergen) are string types so they round-trip
through JSON, SQL text columns and query parameters without translation tables.
Use the Valid methods before trusting values that came from outside the process.
*/
package models
