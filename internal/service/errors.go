package service

import "errors"

var (
	// ErrInvalidCredentials covers an unknown user, a missing hash and a
	// password mismatch alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned for a missing, malformed, forged or expired
	// bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrUserNotFound is returned when an operation references an unknown
	// user id.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidDataProvided is returned for a page request with a negative
	// page or a non-positive size.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Token service errors.
var (
	// ErrWeakSigningKey is returned for a signing key shorter than
	// MinSigningKeyLength bytes.
	ErrWeakSigningKey = errors.New("token signing key is too short")

	// ErrInvalidTokenTTL is returned for a non-positive token lifetime.
	ErrInvalidTokenTTL = errors.New("token ttl must be positive")

	// ErrEmptySubject is returned when issuing a token without a subject.
	ErrEmptySubject = errors.New("token subject is empty")

	ErrTokenCreationFailed = errors.New("token creation failed")
)
