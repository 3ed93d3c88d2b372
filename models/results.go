// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Roman Kataev

package models

// SyncResult is the terminal outcome of one orchestrated sync invocation.
type SyncResult int

const (
	// SyncResultDone means the cycle (including any MoreAvailable looping)
	// completed and the collection is up to date.
	SyncResultDone SyncResult = iota

	// SyncResultFailedLogin means the server rejected the credentials or
	// denied access. Not retried by this core.
	SyncResultFailedLogin

	// SyncResultFailedSecurity means a provisioning exchange was required
	// and could not be completed.
	SyncResultFailedSecurity

	// SyncResultFailedIO means a network or transport failure interrupted
	// the cycle. The caller's scheduler decides on retry.
	SyncResultFailedIO

	// SyncResultFailedOther covers malformed responses, unexpected HTTP
	// statuses, and the exhausted looping cap.
	SyncResultFailedOther
)

// String implements fmt.Stringer for log output.
func (r SyncResult) String() string {
	switch r {
	case SyncResultDone:
		return "done"
	case SyncResultFailedLogin:
		return "failed_login"
	case SyncResultFailedSecurity:
		return "failed_security"
	case SyncResultFailedIO:
		return "failed_io"
	case SyncResultFailedOther:
		return "failed_other"
	default:
		return "unknown"
	}
}

// Failed reports whether the result is any of the failure codes.
func (r SyncResult) Failed() bool {
	return r != SyncResultDone
}

// StopReason tells an in-flight request why it is being interrupted.
type StopReason int

const (
	// StopReasonAbort cancels the operation entirely; the caller gives up.
	StopReasonAbort StopReason = 1

	// StopReasonRestart cancels the network call but signals the caller to
	// reload parameters and resend.
	StopReasonRestart StopReason = 2
)

// String implements fmt.Stringer for log output.
func (r StopReason) String() string {
	if r == StopReasonRestart {
		return "restart"
	}
	return "abort"
}
