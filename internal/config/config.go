package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-eas-sync daemon. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the log level and the
	// device identity reported to the server.
	App App `envPrefix:"APP_" json:"app"`

	// Storage holds configuration for the local sync-state database.
	Storage Storage `envPrefix:"STORAGE_" json:"storage"`

	// Adapter holds settings for the outbound transport layer.
	Adapter Adapter `envPrefix:"ADAPTER_" json:"adapter"`

	// Workers holds configuration for the background push daemon.
	Workers Workers `envPrefix:"WORKERS_" json:"workers"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// App holds application-level configuration values.
type App struct {
	// LogLevel is the minimum zerolog level emitted ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" json:"log_level"`

	// DeviceType is the DeviceType query parameter sent with every EAS
	// request. Servers use it for policy decisions and statistics.
	// Env: APP_DEVICE_TYPE
	DeviceType string `env:"DEVICE_TYPE" json:"device_type"`

	// UserAgent is the HTTP User-Agent header value.
	// Env: APP_USER_AGENT
	UserAgent string `env:"USER_AGENT" json:"user_agent"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the sync-state database settings.
	DB DB `envPrefix:"DB_" json:"db"`
}

// DB holds connection settings for the local SQLite sync-state database.
type DB struct {
	// DSN is the SQLite file path (or ":memory:" for tests).
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN" json:"dsn"`
}

// Adapter holds settings for the outbound transport layer.
type Adapter struct {
	// RequestTimeout bounds a standard (non-initial, non-ping) command
	// round-trip.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" json:"request_timeout"`

	// InitialSyncTimeout bounds an initial sync round-trip; first syncs
	// are empirically much slower on loaded servers.
	// Env: ADAPTER_INITIAL_SYNC_TIMEOUT
	InitialSyncTimeout time.Duration `env:"INITIAL_SYNC_TIMEOUT" json:"initial_sync_timeout"`
}

// Workers holds configuration for the background push daemon.
type Workers struct {
	// PingHeartbeat is the requested Ping heartbeat duration. The network
	// timeout for a ping request is this value plus a fixed grace period.
	// Env: WORKERS_PING_HEARTBEAT
	PingHeartbeat time.Duration `env:"PING_HEARTBEAT" json:"ping_heartbeat"`

	// SyncFailureBackoff delays the ping restart after a failed sync so a
	// persistently failing account does not spin.
	// Env: WORKERS_SYNC_FAILURE_BACKOFF
	SyncFailureBackoff time.Duration `env:"SYNC_FAILURE_BACKOFF" json:"sync_failure_backoff"`
}

// Defaults applied by validation when a field was left unset.
const (
	DefaultRequestTimeout     = 30 * time.Second
	DefaultInitialSyncTimeout = 120 * time.Second
	DefaultPingHeartbeat      = 8 * time.Minute
	DefaultSyncFailureBackoff = 60 * time.Second
	DefaultDeviceType         = "Android"
)

// GetConfig loads, merges, and validates the daemon configuration from all
// available sources in the following priority order (first non-zero value
// wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withJSON().
		build()
}
