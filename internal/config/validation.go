package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// validate applies defaults to unset fields and rejects values the daemon
// cannot run with.
func (c *StructuredConfig) validate() error {
	if c.App.LogLevel == "" {
		c.App.LogLevel = zerolog.LevelInfoValue
	}
	if _, err := zerolog.ParseLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.App.LogLevel)
	}

	if c.App.DeviceType == "" {
		c.App.DeviceType = DefaultDeviceType
	}

	if c.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: storage DSN is required", ErrInvalidConfig)
	}

	if c.Adapter.RequestTimeout <= 0 {
		c.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if c.Adapter.InitialSyncTimeout <= 0 {
		c.Adapter.InitialSyncTimeout = DefaultInitialSyncTimeout
	}
	if c.Adapter.InitialSyncTimeout < c.Adapter.RequestTimeout {
		return fmt.Errorf("%w: initial sync timeout below request timeout", ErrInvalidConfig)
	}

	if c.Workers.PingHeartbeat <= 0 {
		c.Workers.PingHeartbeat = DefaultPingHeartbeat
	}
	if c.Workers.SyncFailureBackoff <= 0 {
		c.Workers.SyncFailureBackoff = DefaultSyncFailureBackoff
	}

	return nil
}
