// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a signed, self-contained session credential.
//
// It embeds [jwt.RegisteredClaims] for standard claim access (subject,
// issued-at, expiry). SignedString holds the compact serialized form
// (header.payload.signature) sent to clients as a bearer token.
type Token struct {
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// Subject returns the username the token was issued for.
func (t Token) Subject() string {
	return t.RegisteredClaims.Subject
}

// ExpiresAt returns the expiry instant, or the zero time when absent.
func (t Token) ExpiresAt() time.Time {
	if t.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return t.RegisteredClaims.ExpiresAt.Time
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// TokenStatus classifies the outcome of validating a session token.
type TokenStatus int

const (
	// TokenMalformed means the input could not be parsed as a token issued by
	// this service (bad encoding, unexpected algorithm, missing claims).
	TokenMalformed TokenStatus = iota

	// TokenBadSignature means the token parsed but its MAC does not verify
	// against the current signing key.
	TokenBadSignature

	// TokenExpired means the signature verifies but the current time is not
	// strictly before the expiry.
	TokenExpired

	// TokenValid means the token verifies and is not expired.
	TokenValid
)

// String implements [fmt.Stringer].
func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	case TokenBadSignature:
		return "bad_signature"
	default:
		return "malformed"
	}
}

// TokenValidation is the detailed result of validating a session token.
// Subject is set only when Status is TokenValid.
type TokenValidation struct {
	Status  TokenStatus
	Subject string
}

// Valid reports whether the token was accepted.
func (v TokenValidation) Valid() bool {
	return v.Status == TokenValid
}
