// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Roman Kataev

// Package utils holds small helpers shared across the daemon.
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// deviceIDMaxLen is the longest device identifier EAS servers accept.
const deviceIDMaxLen = 32

// NewDeviceID generates a stable-format device identifier for a new
// account. Servers key device state (policy, sync history, partnerships)
// on this value, so it is generated once at account creation and persisted.
// The value is alphanumeric only: some servers reject punctuation.
func NewDeviceID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if len(id) > deviceIDMaxLen {
		id = id[:deviceIDMaxLen]
	}
	return id
}
