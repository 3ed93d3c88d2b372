package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d database DSN (SQLite file path)
//	-c/-config json file path with configs
//	-log-level minimum log level
//	-device-type EAS DeviceType query parameter
//	-request-timeout standard request timeout (e.g., "30s")
//	-initial-sync-timeout initial sync request timeout (e.g., "2m")
//	-ping-heartbeat requested ping heartbeat (e.g., "8m")
//	-sync-failure-backoff ping restart delay after a failed sync
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var jsonConfigPath string
	var logLevel string
	var deviceType string
	var requestTimeout time.Duration
	var initialSyncTimeout time.Duration
	var pingHeartbeat time.Duration
	var syncFailureBackoff time.Duration

	flag.StringVar(&databaseDSN, "d", "", "Database DSN (SQLite file path)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&logLevel, "log-level", "", "Minimum log level")
	flag.StringVar(&deviceType, "device-type", "", "EAS DeviceType query parameter")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	flag.DurationVar(&initialSyncTimeout, "initial-sync-timeout", 0, "Initial sync timeout (e.g., 2m)")
	flag.DurationVar(&pingHeartbeat, "ping-heartbeat", 0, "Ping heartbeat (e.g., 8m)")
	flag.DurationVar(&syncFailureBackoff, "sync-failure-backoff", 0, "Ping restart delay after failed sync")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogLevel:   logLevel,
			DeviceType: deviceType,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			RequestTimeout:     requestTimeout,
			InitialSyncTimeout: initialSyncTimeout,
		},
		Workers: Workers{
			PingHeartbeat:      pingHeartbeat,
			SyncFailureBackoff: syncFailureBackoff,
		},
		JSONFilePath: jsonConfigPath,
	}
}
