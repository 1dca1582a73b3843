// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// bcrypt accepts costs in [4, 31].
const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.Auth.TokenSignKey) < MinTokenSignKeyLength {
		return fmt.Errorf("%w: token sign key must be at least %d bytes", ErrInvalidAuthConfigs, MinTokenSignKeyLength)
	}

	if cfg.Auth.TokenTTLSeconds <= 0 {
		return fmt.Errorf("%w: token ttl must be positive", ErrInvalidAuthConfigs)
	}

	if cfg.Auth.BcryptCost != 0 && (cfg.Auth.BcryptCost < minBcryptCost || cfg.Auth.BcryptCost > maxBcryptCost) {
		return fmt.Errorf("%w: bcrypt cost must be within [%d, %d]", ErrInvalidAuthConfigs, minBcryptCost, maxBcryptCost)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	for _, seed := range cfg.Auth.SeedUsers() {
		if seed.Username == "" || seed.Password == "" {
			return fmt.Errorf("%w: username and password are required", ErrInvalidSeedConfigs)
		}
		if seed.Role != "" && seed.Role != "USER" && seed.Role != "ADMIN" {
			return fmt.Errorf("%w: unknown role %q for %q", ErrInvalidSeedConfigs, seed.Role, seed.Username)
		}
	}

	return nil
}
