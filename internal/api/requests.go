// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/platewise/internal/models"
	"github.com/tomtom215/platewise/internal/validation"
)

// Request structs are filled from path and query parameters and checked
// with the shared validator. A limit must be at least 1; limits above the
// configured maximum are clamped rather than rejected.

type limitRequest struct {
	Limit int `json:"limit" validate:"gte=1"`
}

type userRequest struct {
	UserID string `json:"user_id" validate:"required,max=128,printascii"`
	Limit  int    `json:"limit" validate:"gte=1"`
}

type itemRequest struct {
	ItemID string `json:"item_id" validate:"required,max=128,printascii"`
	Limit  int    `json:"limit" validate:"gte=1"`
}

type categoryRequest struct {
	Category string `json:"category" validate:"required,menu_category"`
	Limit    int    `json:"limit" validate:"gte=1"`
}

type slotRequest struct {
	Slot  string `json:"slot" validate:"omitempty,time_slot"`
	Limit int    `json:"limit" validate:"gte=1"`
}

// parseLimit reads ?limit=. Missing means the default, non-integers fail.
func (h *Handler) parseLimit(r *http.Request) (int, *models.APIError) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return h.defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.APIError{
			Code:    validation.ErrorCode,
			Message: "limit must be an integer",
			Details: map[string]interface{}{"field": "limit", "value": raw},
		}
	}
	return n, nil
}

func (h *Handler) clamp(limit int) int {
	if limit > h.maxLimit {
		return h.maxLimit
	}
	return limit
}

// validate runs the validator and converts failures to the API error.
func validate(req interface{}) *models.APIError {
	if verr := validation.ValidateStruct(req); verr != nil {
		return verr.ToAPIError()
	}
	return nil
}
