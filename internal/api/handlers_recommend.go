// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/platewise/internal/models"
	"github.com/tomtom215/platewise/internal/recommend"
)

// Personalized handles GET /api/v1/recommendations/personalized/{userID}.
// Read failures are served as a degraded 200 with popular dishes.
func (h *Handler) Personalized(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, apiErr := h.parseLimit(r)
	req := userRequest{UserID: chi.URLParam(r, "userID"), Limit: limit}
	if !h.check(w, r, apiErr, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	res := h.engine.Personalized(ctx, req.UserID, h.clamp(req.Limit))

	meta := metadata(r, start)
	meta.Outcome = string(res.Outcome)
	meta.Degraded = res.Degraded()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     newItemsResponse(res.Items),
		Metadata: meta,
	})
}

// Similar handles GET /api/v1/recommendations/similar/{itemID}. Unknown
// dishes give an empty list.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, apiErr := h.parseLimit(r)
	req := itemRequest{ItemID: chi.URLParam(r, "itemID"), Limit: limit}
	if !h.check(w, r, apiErr, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := h.engine.Similar(ctx, req.ItemID, h.clamp(req.Limit))
	h.respondItems(w, r, start, items, "", err)
}

// Category handles GET /api/v1/recommendations/category/{category}.
func (h *Handler) Category(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, apiErr := h.parseLimit(r)
	req := categoryRequest{Category: chi.URLParam(r, "category"), Limit: limit}
	if !h.check(w, r, apiErr, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := h.engine.ByCategory(ctx, models.Category(req.Category), h.clamp(req.Limit))
	h.respondItems(w, r, start, items, "", err)
}

// TimeSlot handles GET /api/v1/recommendations/time-slot?slot=. Without a
// slot the current one in the configured time zone is used.
func (h *Handler) TimeSlot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, apiErr := h.parseLimit(r)
	req := slotRequest{Slot: r.URL.Query().Get("slot"), Limit: limit}
	if !h.check(w, r, apiErr, &req) {
		return
	}

	slot := recommend.TimeSlot(req.Slot)
	if slot == "" {
		slot = h.engine.CurrentSlot()
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := h.engine.ByTimeSlot(ctx, slot, h.clamp(req.Limit))
	h.respondItems(w, r, start, items, string(slot), err)
}

// Popular handles GET /api/v1/recommendations/popular.
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, apiErr := h.parseLimit(r)
	req := limitRequest{Limit: limit}
	if !h.check(w, r, apiErr, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := h.engine.Popular(ctx, h.clamp(req.Limit))
	h.respondItems(w, r, start, items, "", err)
}

// Mixed handles GET /api/v1/recommendations/mixed/{userID}.
func (h *Handler) Mixed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, apiErr := h.parseLimit(r)
	req := userRequest{UserID: chi.URLParam(r, "userID"), Limit: limit}
	if !h.check(w, r, apiErr, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.respondSections(w, r, start, h.engine.Mixed(ctx, req.UserID, h.clamp(req.Limit)))
}

// Guest handles GET /api/v1/recommendations/guest.
func (h *Handler) Guest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, apiErr := h.parseLimit(r)
	req := limitRequest{Limit: limit}
	if !h.check(w, r, apiErr, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.respondSections(w, r, start, h.engine.Guest(ctx, h.clamp(req.Limit)))
}

// check writes a 400 for a bad limit or a failed validation and reports
// whether the handler may continue.
func (h *Handler) check(w http.ResponseWriter, r *http.Request, limitErr *models.APIError, req interface{}) bool {
	if limitErr == nil {
		limitErr = validate(req)
	}
	if limitErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, limitErr)
		return false
	}
	return true
}

func (h *Handler) respondItems(w http.ResponseWriter, r *http.Request, start time.Time, items []models.MenuItem, slot string, err error) {
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, "STORE_ERROR", "Menu catalog is temporarily unavailable", err)
		return
	}
	data := newItemsResponse(items)
	data.Slot = slot
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: metadata(r, start),
	})
}

func (h *Handler) respondSections(w http.ResponseWriter, r *http.Request, start time.Time, sections []models.Section) {
	meta := metadata(r, start)
	for i := range sections {
		if sections[i].Degraded {
			meta.Degraded = true
		}
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     newSectionsResponse(sections),
		Metadata: meta,
	})
}
