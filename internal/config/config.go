// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the user
// directory service. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, an
// optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as version and log level.
	App App `envPrefix:"APP_"`

	// Auth holds the signing key, token lifetime, password hashing cost and
	// seed accounts.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the user store backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Telemetry holds the OpenTelemetry trace exporter settings.
	Telemetry Telemetry `envPrefix:"TELEMETRY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// EnvFilePath is the optional path to a .env file loaded into the
	// process environment before environment variables are parsed.
	// Populated via the ENV_FILE environment variable.
	EnvFilePath string `env:"ENV_FILE"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the version string reported by /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimal zerolog level name (e.g. "debug", "info").
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth holds the process-wide authentication settings. They are fixed at
// startup; there is no hot-reload.
type Auth struct {
	// TokenSignKey is the HMAC-SHA256 secret used to sign and verify session
	// tokens. Must be at least [MinTokenSignKeyLength] bytes long.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenTTLSeconds is the lifetime of an issued session token in seconds.
	// Env: AUTH_TOKEN_TTL_SECONDS
	TokenTTLSeconds int64 `env:"TOKEN_TTL_SECONDS"`

	// TokenIssuer is the optional "iss" claim embedded in every token and
	// checked on validation when non-empty.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// BcryptCost is the adaptive work factor of the password hasher.
	// Env: AUTH_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// SeedAdminUsername and SeedAdminPassword describe an ADMIN account that
	// is created on startup when absent.
	// Env: AUTH_SEED_ADMIN_USERNAME, AUTH_SEED_ADMIN_PASSWORD
	SeedAdminUsername string `env:"SEED_ADMIN_USERNAME"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD"`

	// Seed lists additional accounts created on startup when absent.
	// Only settable from the JSON file.
	Seed []SeedUser
}

// TokenTTL returns the token lifetime as a [time.Duration].
func (a Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLSeconds) * time.Second
}

// SeedUsers returns every configured seed account, the env-provided admin
// first.
func (a Auth) SeedUsers() []SeedUser {
	seeds := make([]SeedUser, 0, len(a.Seed)+1)
	if a.SeedAdminUsername != "" && a.SeedAdminPassword != "" {
		seeds = append(seeds, SeedUser{
			Username: a.SeedAdminUsername,
			Password: a.SeedAdminPassword,
			Role:     "ADMIN",
			IsActive: true,
		})
	}

	return append(seeds, a.Seed...)
}

// SeedUser describes an account created by the seeder when absent.
type SeedUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health server,
	// in "host:port" format (e.g. "0.0.0.0:9090"). Empty disables it.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// HealthProbeInterval is how often the store is pinged to refresh the
	// gRPC health status.
	// Env: SERVER_HEALTH_PROBE_INTERVAL
	HealthProbeInterval time.Duration `env:"HEALTH_PROBE_INTERVAL"`
}

// Storage groups the configuration for the user store.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the database backend.
type DB struct {
	// DSN selects and configures the user store:
	//   - "postgres://..." or "postgresql://..." — PostgreSQL via pgx;
	//   - "file:..." or a path ending in ".db"/".sqlite" — SQLite;
	//   - empty or "memory" — in-process memory store.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Telemetry holds OpenTelemetry exporter settings. Tracing is disabled when
// OTLPEndpoint is empty.
type Telemetry struct {
	// OTLPEndpoint is the host:port of the OTLP gRPC collector.
	// Env: TELEMETRY_OTLP_ENDPOINT
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`

	// OTLPInsecure disables TLS towards the collector.
	// Env: TELEMETRY_OTLP_INSECURE
	OTLPInsecure bool `env:"OTLP_INSECURE"`

	// ServiceName is the service.name resource attribute.
	// Env: TELEMETRY_SERVICE_NAME
	ServiceName string `env:"SERVICE_NAME"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in priority order:
//  1. Environment variables (after loading the optional .env file)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
