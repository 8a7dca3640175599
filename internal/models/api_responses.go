// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed, see Data field
//   - "error": Request failed, see Error field for details
//
// A degraded recommendation (popularity served because history or catalog reads
// failed) is still a success; Metadata.Degraded tells the client.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"id": "ck...", "name": "Paneer Tikka", ...}],
//	  "metadata": {
//	    "timestamp": "2026-03-02T12:00:00Z",
//	    "query_time_ms": 4,
//	    "outcome": "personalized"
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`

	// Outcome names the path that produced a personalized result
	// (personalized, cold_start, fallback).
	Outcome string `json:"outcome,omitempty"`

	// Degraded is set when part of the response was served by the fallback path.
	Degraded bool `json:"degraded,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - NOT_FOUND: Resource doesn't exist
//   - STORE_ERROR: Catalog or history read failure
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Section is a labeled group of items in a blended (mixed or guest) response.
type Section struct {
	Label    string     `json:"label"`
	Items    []MenuItem `json:"items"`
	Degraded bool       `json:"degraded,omitempty"`
}
