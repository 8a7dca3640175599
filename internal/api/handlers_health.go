// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/platewise/internal/models"
)

// HealthLive handles the liveness probe. It never touches the store.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: metadata(r, time.Now()),
	})
}

// HealthReady handles the readiness probe: 200 when the store answers a
// ping, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	storeConnected := h.store != nil && h.store.Ping(ctx) == nil

	statusCode := http.StatusOK
	status := "ready"
	if !storeConnected {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"store_connected": storeConnected,
			"uptime":          time.Since(h.startTime).Seconds(),
		},
		Metadata: metadata(r, time.Now()),
	})
}
