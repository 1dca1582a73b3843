// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// PageRequest describes a zero-based page of a directory listing with an
// optional username search query.
type PageRequest struct {
	// Page is the zero-based page index.
	Page int `json:"page"`

	// Size is the maximum number of items per page.
	Size int `json:"size"`

	// Query, when non-empty, restricts the listing to usernames containing it
	// (case-insensitive).
	Query string `json:"query,omitempty"`
}

// Offset returns the number of items preceding the requested page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one page of a listing together with the counters derived from the
// total number of matching items.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Page        int   `json:"currentPage"`
	Size        int   `json:"size"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// NewPage builds a Page for req holding items out of totalItems matches.
//
// TotalPages is ceil(totalItems/size), HasNext is true unless req.Page is the
// last page, HasPrevious is true for every page after the first.
func NewPage[T any](items []T, req PageRequest, totalItems int64) Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int((totalItems + int64(req.Size) - 1) / int64(req.Size))
	}

	return Page[T]{
		Items:       items,
		Page:        req.Page,
		Size:        req.Size,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     req.Page < totalPages-1,
		HasPrevious: req.Page > 0,
	}
}
