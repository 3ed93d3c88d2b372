package service

import (
	"context"
	"io"
	"time"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks_test.go -package=service

// SyncOutcome is the parsed result of one Sync round-trip.
type SyncOutcome struct {
	// Status is the wire Status of the collection block (1 = success).
	Status int

	// NewSyncKey is the key issued by the server, empty if none was
	// present.
	NewSyncKey string

	// MoreAvailable reports that additional delta data exists beyond this
	// response.
	MoreAvailable bool

	// AckedPending lists the ids of pending local changes the server
	// acknowledged in this cycle.
	AckedPending []int64
}

// CollectionSyncHandler is the per-collection-type capability interface:
// one variant each for mail, calendar and contacts, sharing the
// orchestrator algorithm.
type CollectionSyncHandler interface {
	// FolderClassName returns the EAS class discriminator ("Email",
	// "Calendar", "Contacts").
	FolderClassName() string

	// BuildRequest serializes one Sync request for the collection's current
	// key. An initial sync carries the one-time capability declaration;
	// later cycles carry window size, lookback filter, truncation
	// preference and queued upsync commands. numWindows scales the window
	// size when the server stalls on an unchanged key.
	BuildRequest(ctx context.Context, collection models.Collection, initial bool, numWindows int) ([]byte, error)

	// ParseResponse reads one Sync response. Fails with a
	// wbxml.ErrEmptyStream-wrapped error on a zero-byte stream and with
	// ErrMalformedResponse when the root element is absent.
	ParseResponse(ctx context.Context, body io.Reader, collection models.Collection) (SyncOutcome, error)
}

// Provisioner runs the Provision exchange when the server interrupts a
// command with a policy challenge. On success it returns the account with
// the fresh policy key applied.
type Provisioner interface {
	Provision(ctx context.Context, conn adapter.Connection, account models.Account) (models.Account, error)
}

// Scheduler is the host scheduling integration: deferred ping restarts and
// targeted sync triggers requested by the core.
type Scheduler interface {
	SchedulePing(accountID int64, delay time.Duration)
	ScheduleSync(accountID int64, collectionServerID string)
}

// PingStopper is the handle a synchronizer uses to interrupt a running
// ping's network call. adapter.Connection satisfies it.
type PingStopper interface {
	Stop(reason models.StopReason)
}

// Synchronizer serializes sync and ping per account: at most one of the
// two runs at a time, and sync always wins contention.
type Synchronizer interface {
	// StartSync blocks until the account's slot is idle, interrupting a
	// running ping first.
	StartSync(accountID int64)

	// SyncComplete releases the slot and evaluates whether a ping should
	// restart, applying a backoff delay when the sync failed.
	SyncComplete(ctx context.Context, account models.Account, hadError bool)

	// StartPing claims the slot for a ping. It does not wait: a busy slot
	// means a sync is active or imminent, and the ping yields.
	StartPing(accountID int64, handle PingStopper) bool

	// PingComplete releases the slot and schedules a retry for recoverable
	// statuses.
	PingComplete(ctx context.Context, accountID int64, status models.PingStatus)
}
