// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// user directory server handlers and the command-line client.
//
// All Msg* constants are human-readable message strings written into the
// "error" field of HTTP response bodies. Keeping them in one place keeps the
// wording of the API consistent and lets the client recognise them.
package app

const (
	// MsgInvalidCredentials is returned when the username is unknown or the
	// password does not match.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgUnauthorized is returned when the bearer token is missing, expired,
	// or cannot be verified.
	MsgUnauthorized = "Unauthorized"

	// MsgForbidden is returned when the authenticated user lacks the role
	// required by the route.
	MsgForbidden = "Forbidden"

	// MsgUserNotFound is returned when an update targets an unknown user ID.
	MsgUserNotFound = "User not found"

	// MsgMissingFields is returned when a login request lacks the username or
	// the password.
	MsgMissingFields = "Missing fields"

	// MsgInvalidPageRequest is returned when paging parameters are not
	// numbers or are out of range.
	MsgInvalidPageRequest = "Invalid page request"

	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when the request passes decoding but
	// its content is unusable.
	MsgInvalidDataProvided = "Invalid data provided"

	MsgNotFound         = "Not found"
	MsgMethodNotAllowed = "Method not allowed"
)
