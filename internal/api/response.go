// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/platewise/internal/logging"
	"github.com/tomtom215/platewise/internal/models"
)

// ItemsResponse is the data of every list endpoint.
type ItemsResponse struct {
	Items []models.MenuItem `json:"items"`
	Count int               `json:"count"`

	// Slot is the resolved time slot of time-slot queries.
	Slot string `json:"slot,omitempty"`
}

// SectionsResponse is the data of the mixed and guest endpoints.
type SectionsResponse struct {
	Sections []models.Section `json:"sections"`
	Count    int              `json:"count"`
}

func newItemsResponse(items []models.MenuItem) *ItemsResponse {
	if items == nil {
		items = []models.MenuItem{}
	}
	return &ItemsResponse{Items: items, Count: len(items)}
}

func newSectionsResponse(sections []models.Section) *SectionsResponse {
	n := 0
	for i := range sections {
		n += len(sections[i].Items)
	}
	return &SectionsResponse{Sections: sections, Count: n}
}

// metadata stamps the response time, latency and request ID.
func metadata(r *http.Request, start time.Time) models.Metadata {
	return models.Metadata{
		Timestamp:   time.Now().UTC(),
		QueryTimeMS: time.Since(start).Milliseconds(),
		RequestID:   logging.RequestID(r.Context()),
	}
}

func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", code).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message})
}

func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError) {
	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestID(r.Context()),
		},
		Error: apiErr,
	})
}

// sanitizeLogValue strips line breaks so error text cannot forge log lines.
func sanitizeLogValue(s string) string {
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}
