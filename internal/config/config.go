// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"math"
	"time"
)

// Defaults applied to every field still zero after all sources are merged.
const (
	DefaultPort            = 3333
	DefaultBodyLimit       = 50 << 20
	DefaultParameterLimit  = math.MaxInt
	DefaultShutdownTimeout = 10 * time.Second
	DefaultAppName         = "go-bootstrap"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging environment variables, command-line flags and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env:       environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: name, production mode and the
	// bearer-token guard keys.
	App App `envPrefix:"APP_"`

	// Server holds listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Middleware holds the body parser limits and CORS origins used by the
	// default middleware pipeline.
	Middleware Middleware `envPrefix:"MIDDLEWARE_"`

	// Storage holds the database modules to connect on startup.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Name is reported in logs as the application role.
	// Env: APP_NAME
	Name string `env:"NAME"`

	// ProductionMode switches request logs to the terse format and lowers
	// database verbosity.
	// Env: APP_PRODUCTION_MODE
	ProductionMode bool `env:"PRODUCTION_MODE"`

	// TokenSignKey is the HMAC key used to verify bearer tokens on guarded
	// routes. When empty, guarded routes are left open.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of bearer tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
}

// Server holds network settings for the inbound transports.
type Server struct {
	// Port is the TCP port the HTTP server listens on.
	// Env: SERVER_PORT
	Port int `env:"PORT"`

	// GRPCAddress is the "host:port" of the optional gRPC health endpoint.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// ShutdownTimeout bounds graceful shutdown (e.g. "10s").
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Middleware holds the limits of the default middleware pipeline.
type Middleware struct {
	// BodyLimit is the maximum accepted request body in bytes for the JSON
	// and url-encoded parsers.
	// Env: MIDDLEWARE_BODY_LIMIT
	BodyLimit int64 `env:"BODY_LIMIT"`

	// ParameterLimit is the maximum number of url-encoded form keys.
	// Env: MIDDLEWARE_PARAMETER_LIMIT
	ParameterLimit int `env:"PARAMETER_LIMIT"`

	// CORSAllowedOrigins restricts CORS origins. Empty means "*".
	// Env: MIDDLEWARE_CORS_ALLOWED_ORIGINS (comma separated)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// GZip installs the gzip plugin: gzip request bodies are inflated and
	// responses compressed for clients accepting gzip.
	// Env: MIDDLEWARE_GZIP
	GZip bool `env:"GZIP"`
}

// Storage groups the database modules connected during startup.
type Storage struct {
	// Postgres is connected through the pgx driver when its DSN is set.
	Postgres DB `envPrefix:"POSTGRES_"`

	// SQLite is connected through go-sqlite3 when its DSN is set.
	SQLite DB `envPrefix:"SQLITE_"`
}

// DB holds connection settings for one relational database module.
type DB struct {
	// DSN is the driver-specific data source name.
	// Env: STORAGE_POSTGRES_DSN / STORAGE_SQLITE_DSN
	DSN string `env:"DSN"`

	// RunMigrations applies the embedded goose migrations after connecting.
	// Env: STORAGE_POSTGRES_RUN_MIGRATIONS / STORAGE_SQLITE_RUN_MIGRATIONS
	RunMigrations bool `env:"RUN_MIGRATIONS"`
}

// defaults returns the values used for fields no source has set.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{Name: DefaultAppName},
		Server: Server{
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Middleware: Middleware{
			BodyLimit:      DefaultBodyLimit,
			ParameterLimit: DefaultParameterLimit,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all sources. Later sources override earlier non-zero fields:
//  1. Environment variables
//  2. Command-line flags (args)
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields left zero afterwards receive the package defaults.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
