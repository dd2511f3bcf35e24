// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// save-sync client and the reference cloud server. It is populated by
// merging defaults, an optional JSON file, environment variables and
// command-line flags.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the server database and the client local store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listener and request limits of the cloud server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds how the client reaches the cloud server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the auto-sync timer and the warmup backoff ladder.
	Workers Workers `envPrefix:"WORKERS_"`

	// Game holds where the client finds the game's save.
	Game Game `envPrefix:"GAME_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey signs and verifies access tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued access tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenDuration is the lifetime of an access token.
	// Env: APP_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// RefreshTokenDuration is the lifetime of a refresh token.
	// Env: APP_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`

	// Version is the application version sent with every cloud save.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the persistence settings.
type Storage struct {
	// DB is the server database.
	DB DB `envPrefix:"DB_"`

	// Local is the client key-value store.
	Local Local `envPrefix:"LOCAL_"`
}

// DB holds connection settings for the server database.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local holds the client store location.
type Local struct {
	// Path is the SQLite file holding the save slots, the watermark and the
	// session. ":memory:" keeps everything in process memory.
	// Env: STORAGE_LOCAL_PATH
	Path string `env:"PATH"`
}

// Server holds network and limit settings for the cloud server.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxPayloadBytes is the largest accepted save write body.
	// Env: SERVER_MAX_PAYLOAD_BYTES
	MaxPayloadBytes int64 `env:"MAX_PAYLOAD_BYTES"`

	// WriteRatePerSecond is the sustained save write rate per account.
	// Env: SERVER_WRITE_RATE
	WriteRatePerSecond float64 `env:"WRITE_RATE"`

	// WriteBurst is the burst of save writes allowed per account.
	// Env: SERVER_WRITE_BURST
	WriteBurst int `env:"WRITE_BURST"`

	// SecureCookies marks auth cookies Secure.
	// Env: SERVER_SECURE_COOKIES
	SecureCookies bool `env:"SECURE_COOKIES"`
}

// Adapter holds how the client reaches the cloud server.
type Adapter struct {
	// HTTPAddress is the base URL or "host:port" of the cloud server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request. A request that runs
	// into it counts as a warming backend.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the client's background sync settings.
type Workers struct {
	// SyncInterval is the period of the auto-sync timer.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// BackoffLadder is the sequence of waits used while the backend warms up.
	// Env: WORKERS_BACKOFF_LADDER (comma separated, e.g. "1s,2s,4s")
	BackoffLadder []time.Duration `env:"BACKOFF_LADDER"`

	// BackoffJitter is the relative jitter applied to each wait (0.15 = ±15%).
	// Env: WORKERS_BACKOFF_JITTER
	BackoffJitter float64 `env:"BACKOFF_JITTER"`
}

// Game holds where the client reads and writes the game's save.
type Game struct {
	// SaveFile is the JSON file the game writes its save to. A sibling
	// "<SaveFile>.lock" marks an in-progress activity that a cloud load
	// must not destroy.
	// Env: GAME_SAVE_FILE
	SaveFile string `env:"SAVE_FILE"`
}

// GetStructuredConfig loads, merges, and validates the configuration. Later
// sources override earlier non-zero fields:
//  1. Built-in defaults
//  2. JSON file (path resolved from env and flags)
//  3. Environment variables
//  4. Command-line flags (flags may be nil)
func GetStructuredConfig(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(flags).
		withJSON().
		build()
}
