package models

// PingStatus classifies the outcome of one Ping round-trip. Values 1..8
// mirror the wire Status element; negative values are client-side outcomes
// that never appear on the wire.
type PingStatus int

const (
	// PingStatusExpired (wire 1): the heartbeat elapsed with no changes.
	// The ping should be reissued immediately.
	PingStatusExpired PingStatus = 1

	// PingStatusChangesFound (wire 2): one or more folders have changes;
	// SyncList carries their server ids.
	PingStatusChangesFound PingStatus = 2

	// PingStatusRequestMalformed (wire 3): missing parameters.
	PingStatusRequestMalformed PingStatus = 3

	// PingStatusSyntaxError (wire 4): the server could not parse the body.
	PingStatusSyntaxError PingStatus = 4

	// PingStatusHeartbeatOutOfBounds (wire 5): the requested heartbeat was
	// rejected; HeartbeatInterval carries the closest acceptable value and
	// the ping should be reissued with it.
	PingStatusHeartbeatOutOfBounds PingStatus = 5

	// PingStatusTooManyFolders (wire 6): the folder list exceeded the
	// server's MaxFolders limit. Terminal: reissuing the identical folder
	// set would only be rejected again.
	PingStatusTooManyFolders PingStatus = 6

	// PingStatusFolderRefreshNeeded (wire 7): the folder hierarchy is out
	// of date; a FolderSync must run before pinging again.
	PingStatusFolderRefreshNeeded PingStatus = 7

	// PingStatusServerError (wire 8): transient server failure.
	PingStatusServerError PingStatus = 8

	// PingStatusNoFolders: no collection was push-eligible, no request was
	// sent. Client-side only.
	PingStatusNoFolders PingStatus = -1

	// PingStatusNetworkFailure: the request was interrupted by an I/O
	// failure. Client-side only.
	PingStatusNetworkFailure PingStatus = -2

	// PingStatusFailedAuth: the server rejected the credentials.
	// Client-side only.
	PingStatusFailedAuth PingStatus = -3

	// PingStatusAborted: the ping was stopped on purpose, normally because
	// a sync preempted it. Client-side only.
	PingStatusAborted PingStatus = -4
)

// ShouldPingAgain reports whether the ping loop should reissue the request
// immediately: on expiry, and after adopting a server-corrected heartbeat.
// Everything else terminates the loop and lets the caller decide the next
// action.
func (s PingStatus) ShouldPingAgain() bool {
	switch s {
	case PingStatusExpired, PingStatusHeartbeatOutOfBounds:
		return true
	default:
		return false
	}
}

// Recoverable reports whether a terminated ping should be rescheduled
// through the host scheduler (as opposed to requiring user or folder-state
// intervention first).
func (s PingStatus) Recoverable() bool {
	switch s {
	case PingStatusNetworkFailure, PingStatusServerError:
		return true
	default:
		return false
	}
}

// PingResult carries the classified outcome of a ping plus the folders the
// server flagged as changed and any corrected heartbeat interval.
type PingResult struct {
	Status PingStatus

	// SyncList holds the server ids of collections with pending changes
	// when Status is PingStatusChangesFound.
	SyncList []string

	// HeartbeatInterval is the server-suggested interval in seconds when
	// Status is PingStatusHeartbeatOutOfBounds, otherwise 0.
	HeartbeatInterval int
}
