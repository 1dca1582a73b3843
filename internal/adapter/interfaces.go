// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the user directory REST API.
//
// [DirectoryClient] hides the HTTP details from the command-line client.
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrForbidden] for
// 403, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-user-directory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/directory_client_mock.go -package=mock

// DirectoryClient talks to a user directory server. Authenticated calls carry
// the token stored by the last successful Login or SetToken.
type DirectoryClient interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// Health reports whether the server answers its health endpoint.
	Health(ctx context.Context) error

	// Version returns the server application version.
	Version(ctx context.Context) (string, error)

	// Login exchanges credentials for a token and stores it.
	Login(ctx context.Context, username, password string) (string, error)

	// Profile returns the caller's username and role.
	Profile(ctx context.Context) (models.ProfileResponse, error)

	// ListUsers returns one page of users. Requires the ADMIN role.
	ListUsers(ctx context.Context, req models.PageRequest) (models.UsersPageResponse, error)

	// UpdateUser changes the role and/or activity of the user with id.
	// Requires the ADMIN role.
	UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (models.User, error)

	// Stats returns the directory counters. Requires the ADMIN role.
	Stats(ctx context.Context) (models.UserStats, error)
}
