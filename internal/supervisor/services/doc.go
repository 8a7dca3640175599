// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

/*
Package services adapts Platewise components to the suture.Service
interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

HTTPServerService wraps an *http.Server. ListenAndServe runs in a
goroutine and context cancellation triggers a graceful Shutdown.

StoreProbeService pings the menu store on an interval and publishes the
store_up and available-items gauges. A failed probe is logged, not
returned, so a store outage never restarts the probe itself.

Both implement fmt.Stringer so supervisor events name them.
*/
package services
