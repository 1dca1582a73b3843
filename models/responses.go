// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UsersPageResponse is the wire shape of a directory listing page.
type UsersPageResponse struct {
	// Users holds the accounts on the requested page.
	Users []User `json:"users"`

	// CurrentPage is the zero-based index of the returned page.
	CurrentPage int `json:"currentPage"`

	// TotalItems is the number of accounts matching the query.
	TotalItems int64 `json:"totalItems"`

	// TotalPages is ceil(TotalItems / page size).
	TotalPages int `json:"totalPages"`

	// HasNext is false on the last page.
	HasNext bool `json:"hasNext"`

	// HasPrevious is false on the first page.
	HasPrevious bool `json:"hasPrevious"`
}

// NewUsersPageResponse converts a page of users into its wire shape.
func NewUsersPageResponse(page Page[User]) UsersPageResponse {
	return UsersPageResponse{
		Users:       page.Items,
		CurrentPage: page.Page,
		TotalItems:  page.TotalItems,
		TotalPages:  page.TotalPages,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
	}
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	OK bool `json:"ok"`
}
