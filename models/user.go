// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the authorization level of a directory account.
// Values are compared case-sensitively.
type Role = string

const (
	// RoleUser is the default role of a regular account.
	RoleUser Role = "USER"

	// RoleAdmin grants access to the administrative directory operations.
	RoleAdmin Role = "ADMIN"
)

// IsKnownRole reports whether role is exactly one of the enumerated roles.
func IsKnownRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User represents a directory account used for authentication and
// administration.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the opaque unique identifier assigned by the store on creation.
	ID string `json:"id"`

	// Username is the unique, case-sensitive login of the account.
	Username string `json:"username"`

	// PasswordHash is the self-describing salted hash of the password.
	// A nil value marks an account that was never provisioned with a
	// password; no credential can validate against it.
	// It is never serialized to JSON.
	PasswordHash *string `json:"-"`

	// Role is one of RoleUser or RoleAdmin.
	Role string `json:"role"`

	// Email is an optional contact address.
	Email string `json:"email,omitempty"`

	// IsActive marks the account as active for statistics purposes.
	// It does not block login.
	IsActive bool `json:"isActive"`

	// LastLoginAt is the moment of the last successful login, nil before the
	// first one.
	LastLoginAt *time.Time `json:"lastLoginAt"`

	// CreatedAt is set by the store when the account is inserted.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is bumped on every field change, nil until the first change.
	UpdatedAt *time.Time `json:"updatedAt"`
}

// HasPassword reports whether the account carries a password hash.
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate is a partial update of the administrable user fields.
// A nil field means the field was not present in the request.
type UserUpdate struct {
	// Role is applied only when it equals one of the known roles.
	Role *string `json:"role,omitempty"`

	// IsActive is applied whenever it is present.
	IsActive *bool `json:"isActive,omitempty"`
}
