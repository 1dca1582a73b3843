// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAuthConfigs indicates invalid authentication settings
	// (for example, a signing key that is too short or a non-positive TTL).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")

	// ErrInvalidServerConfigs indicates that no listener address is set.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")

	// ErrInvalidSeedConfigs indicates a seed account without username,
	// password or with an unknown role.
	ErrInvalidSeedConfigs = errors.New("invalid seed configuration")
)
