// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for specmock.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the served version string and
	// the optional strict-authentication parameters.
	App App `envPrefix:"APP_"`

	// Spec holds the location of the OpenAPI document the mock surface is
	// generated from.
	Spec Spec `envPrefix:"SPEC_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Storage selects and configures the backing data store.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged underneath the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application.
	// Exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// TokenSignKey, when non-empty, switches bearer-token checking from
	// presence-only to full verification: tokens must be valid HMAC-SHA256
	// JWTs signed with this key and not expired.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer, when non-empty together with TokenSignKey, is the "iss"
	// claim every verified JWT must carry.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// BasicAuthUsers, when non-empty, switches Basic-credential checking
	// from presence-only to verification against this login → bcrypt-hash
	// map.
	// Env: APP_BASIC_AUTH_USERS (comma-separated login:hash pairs)
	BasicAuthUsers map[string]string `env:"BASIC_AUTH_USERS"`
}

// Spec holds the OpenAPI document location settings.
type Spec struct {
	// Location is the file path or URL of the OpenAPI 3 document.
	// Env: SPEC_LOCATION
	Location string `env:"LOCATION"`

	// BasePath is an optional prefix stripped from incoming request paths
	// before they are matched against the document's paths
	// (e.g. "/api/v1").
	// Env: SPEC_BASE_PATH
	BasePath string `env:"BASE_PATH"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address on which the gRPC health server
	// listens. Empty disables the gRPC server.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Supported values of [Storage.Driver].
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Storage selects the data store backend and its connection settings.
type Storage struct {
	// Driver is one of "memory" (default), "sqlite", or "postgres".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name for the SQL backends: a file path for
	// SQLite, a PostgreSQL connection string for Postgres. Ignored by the
	// memory backend.
	// Env: STORAGE_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for fields they set):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
