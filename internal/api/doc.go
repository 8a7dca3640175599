// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

/*
Package api serves the recommendation engine over HTTP with the Chi router.

Routes (all GET, all accept ?limit=, default and maximum from config):

	/api/v1/recommendations/personalized/{userID}
	/api/v1/recommendations/similar/{itemID}
	/api/v1/recommendations/category/{category}
	/api/v1/recommendations/time-slot?slot=morning|afternoon|evening|night
	/api/v1/recommendations/popular
	/api/v1/recommendations/mixed/{userID}
	/api/v1/recommendations/guest
	/api/v1/health/live
	/api/v1/health/ready
	/metrics

Every JSON response uses models.APIResponse. A personalized result served
by the popularity fallback, or a blended response with a degraded section,
is still 200 with metadata.degraded set; clients that care can show a
"popular right now" banner instead of an error.

Global middleware: request ID with logging context, RealIP, Recoverer and
CORS. The recommendation routes add httprate limiting and Prometheus
request metrics keyed by route pattern.
*/
package api
