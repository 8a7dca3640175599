// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

// Package recommend implements content-based dish recommendations.
//
// # Architecture
//
// The engine turns a customer's recent orders and the live menu into ranked
// lists of dishes:
//
//   - Extractor: bounded order history to a weighted preference Profile
//   - Scorer: Profile x MenuItem to a scalar affinity (seven weighted factors)
//   - Strategies: popularity, category and time-of-day lists that need no history
//   - Engine: the seven query modes, exclusion of already-ordered dishes and the
//     single popularity fallback branch
//
// # Query Modes
//
//   - Personalized: profile scoring over available items, ordered dishes excluded
//   - Similar: scoring against a synthetic profile built from one reference dish
//   - Popular, ByCategory, ByTimeSlot: rating-ordered catalog views
//   - Mixed, Guest: independently computed labeled sections, not deduplicated
//
// # Failure Model
//
// Recommendations are a best-effort enhancement. Read failures on the
// personalized path (history or catalog) never surface as errors: the engine
// logs them, records a fallback, and serves the popularity list with
// Result.Outcome set to OutcomeFallback. Mixed and Guest mark failed sections as
// degraded. Failures are not retried; the next request is the retry.
//
// # Usage
//
//	engine, err := recommend.NewEngine(catalog, history, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	res := engine.Personalized(ctx, "cust-42", 10)
//	if res.Degraded() {
//	    // served popularity instead
//	}
//
// # Thread Safety
//
// The engine holds no mutable state. All methods are safe for concurrent use
// and every call recomputes from the views; nothing is cached.
//
// # Scalability
//
// Scoring is a linear pass over the available catalog per request. There is no
// item index or precomputed similarity matrix, which is fine for restaurant-size
// menus and the wrong tool for marketplace-size catalogs.
package recommend
