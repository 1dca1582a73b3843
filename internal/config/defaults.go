// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values used when no source provides a setting.
const (
	DefaultHTTPAddress     = "localhost:8080"
	DefaultRequestTimeout  = 15 * time.Second
	DefaultProbeInterval   = 10 * time.Second
	DefaultTokenTTLSeconds = 3600
	DefaultBcryptCost      = 10
	DefaultLogLevel        = "debug"
	DefaultServiceName     = "user-directory"

	// DefaultTokenSignKey is a development-only secret. The server logs a
	// warning when it is in use.
	DefaultTokenSignKey = "change-me-change-me-change-me-change-me"
)

// MinTokenSignKeyLength is the minimal HMAC-SHA256 key length in bytes.
const MinTokenSignKeyLength = 32

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: DefaultLogLevel,
		},
		Auth: Auth{
			TokenSignKey:    DefaultTokenSignKey,
			TokenTTLSeconds: DefaultTokenTTLSeconds,
			BcryptCost:      DefaultBcryptCost,
		},
		Server: Server{
			HTTPAddress:         DefaultHTTPAddress,
			RequestTimeout:      DefaultRequestTimeout,
			HealthProbeInterval: DefaultProbeInterval,
		},
		Telemetry: Telemetry{
			ServiceName: DefaultServiceName,
		},
	}
}
