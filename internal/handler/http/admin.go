// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/internal/validators"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/go-chi/chi/v5"
)

// Query parameter defaults of the user listing.
const (
	defaultPage     = 0
	defaultPageSize = 10
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := pageRequestFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.services.DirectoryService.ListUsers(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewUsersPageResponse(page), http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var body map[string]any
	if err := utils.DecodeJSON(r, &body); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	user, found, err := h.services.DirectoryService.UpdateUser(ctx, id, userUpdateFromBody(body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, fmt.Errorf("%w: %s", service.ErrUserNotFound, id))
		return
	}

	logger.FromRequest(r).Info().Str("id", id).Msg("user updated")
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.DirectoryService.GetUserStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

// pageRequestFromQuery reads page, size and query. Absent numbers take their
// defaults; malformed ones are rejected.
func pageRequestFromQuery(r *http.Request) (models.PageRequest, error) {
	q := r.URL.Query()
	req := models.PageRequest{Page: defaultPage, Size: defaultPageSize, Query: q.Get("query")}

	for name, dst := range map[string]*int{validators.FieldPage: &req.Page, validators.FieldSize: &req.Size} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return models.PageRequest{}, fmt.Errorf("%w: %s: %w", validators.ErrInvalidPageRequest, name, err)
		}
		*dst = v
	}

	return req, nil
}

// userUpdateFromBody keeps the fields with the expected JSON types. Anything
// else, including unknown keys, is dropped without an error.
func userUpdateFromBody(body map[string]any) models.UserUpdate {
	var upd models.UserUpdate
	if role, ok := body["role"].(string); ok {
		upd.Role = &role
	}
	if isActive, ok := body["isActive"].(bool); ok {
		upd.IsActive = &isActive
	}
	return upd
}
