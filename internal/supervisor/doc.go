// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

/*
Package supervisor runs the long-lived parts of the service under a suture
v4 supervisor tree.

The tree has two layers below the root:

	platewise
	├── store-layer   store probe
	└── api-layer     HTTP server

A service that returns an error is restarted with suture's failure
backoff. Supervisor events are logged through sutureslog, which writes via
the zerolog logger from the logging package.

Service wrappers live in the services subpackage.
*/
package supervisor
