package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from JSON as either a Go
// duration string ("30s", "2m") or a nanosecond count.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration value %v", v)
	}
}

// structuredJSONConfig mirrors StructuredConfig with JSON-friendly types.
type structuredJSONConfig struct {
	App struct {
		LogLevel   string `json:"log_level"`
		DeviceType string `json:"device_type"`
		UserAgent  string `json:"user_agent"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		RequestTimeout     Duration `json:"request_timeout"`
		InitialSyncTimeout Duration `json:"initial_sync_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		PingHeartbeat      Duration `json:"ping_heartbeat"`
		SyncFailureBackoff Duration `json:"sync_failure_backoff"`
	} `json:"workers,omitempty"`
}

// parseJSON reads the JSON configuration file at path and maps it onto a
// fresh StructuredConfig.
func parseJSON(path string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg structuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogLevel:   jsonCfg.App.LogLevel,
			DeviceType: jsonCfg.App.DeviceType,
			UserAgent:  jsonCfg.App.UserAgent,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Adapter: Adapter{
			RequestTimeout:     time.Duration(jsonCfg.Adapter.RequestTimeout),
			InitialSyncTimeout: time.Duration(jsonCfg.Adapter.InitialSyncTimeout),
		},
		Workers: Workers{
			PingHeartbeat:      time.Duration(jsonCfg.Workers.PingHeartbeat),
			SyncFailureBackoff: time.Duration(jsonCfg.Workers.SyncFailureBackoff),
		},
	}

	return cfg, nil
}
