// Package config loads, merges, and validates the go-eas-sync
// configuration.
//
// Values are collected from three sources and merged with mergo (first
// non-zero value wins, in priority order): environment variables, command
// line flags, and an optional JSON file whose path comes from the first two
// sources. A .env file in the working directory is loaded into the process
// environment before parsing, so local development setups need no exported
// variables.
package config
