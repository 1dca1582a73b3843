// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ProfileResponse describes the authenticated caller.
type ProfileResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ErrorResponse is the uniform JSON error body. It never carries internal
// details such as hash formats or store errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
