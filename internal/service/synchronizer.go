package service

import (
	"context"
	"sync"
	"time"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/store"
	"github.com/rkataev/go-eas-sync/models"
)

// slotState is what currently occupies an account's slot.
type slotState int

const (
	slotSync slotState = iota + 1
	slotPing
)

type accountSlot struct {
	state slotState

	// ping is the stop handle of the running ping, used to interrupt it
	// when a sync requests the slot.
	ping PingStopper
}

// PingSyncSynchronizer enforces the per-account mutual exclusion between
// sync and ping: at most one of the two runs at any instant, and a sync
// always preempts a running ping.
//
// One instance serves the whole process; slots are keyed by account id
// internally. All methods execute under a single lock with a condition
// variable: StartSync waits until the account's slot is vacated, and every
// terminal method wakes all waiters.
type PingSyncSynchronizer struct {
	mu    sync.Mutex
	cond  *sync.Cond
	slots map[int64]*accountSlot

	collections store.CollectionRepository
	scheduler   Scheduler

	// backoff delays the ping restart after a failed sync and the retry of
	// a recoverable ping failure, so persistent errors cannot spin.
	backoff time.Duration

	log *logger.Logger
}

// NewPingSyncSynchronizer constructs the process-wide synchronizer.
func NewPingSyncSynchronizer(collections store.CollectionRepository, scheduler Scheduler, backoff time.Duration, log *logger.Logger) *PingSyncSynchronizer {
	s := &PingSyncSynchronizer{
		slots:       make(map[int64]*accountSlot),
		collections: collections,
		scheduler:   scheduler,
		backoff:     backoff,
		log:         log,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// StartSync claims the account's slot for a sync, blocking until it is
// free. A running ping is actively interrupted with Stop(Abort) so the
// wait is bounded by the ping's cancellation, not its heartbeat.
func (s *PingSyncSynchronizer) StartSync(accountID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		slot, busy := s.slots[accountID]
		if !busy {
			break
		}
		if slot.state == slotPing && slot.ping != nil {
			slot.ping.Stop(models.StopReasonAbort)
			slot.ping = nil
		}
		s.cond.Wait()
	}

	s.slots[accountID] = &accountSlot{state: slotSync}
}

// SyncComplete vacates the slot after a sync and decides whether a ping
// should start again for the account: immediately after a clean sync,
// after the backoff delay when the sync failed. Accounts on security hold
// or without push-eligible collections get no ping.
func (s *PingSyncSynchronizer) SyncComplete(ctx context.Context, account models.Account, hadError bool) {
	s.mu.Lock()
	delete(s.slots, account.ID)
	s.cond.Broadcast()
	s.mu.Unlock()

	if !s.pushEligible(ctx, account) {
		return
	}

	delay := time.Duration(0)
	if hadError {
		delay = s.backoff
	}
	s.scheduler.SchedulePing(account.ID, delay)
}

// StartPing claims the slot for a ping without waiting: a busy slot means
// a sync is running or imminent, and sync wins contention by design.
func (s *PingSyncSynchronizer) StartPing(accountID int64, handle PingStopper) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.slots[accountID]; busy {
		return false
	}
	s.slots[accountID] = &accountSlot{state: slotPing, ping: handle}
	return true
}

// PingComplete vacates the slot after a ping. Recoverable statuses are
// rescheduled through the host scheduler rather than retried inline: the
// network may be down, and an inline retry would busy-loop.
func (s *PingSyncSynchronizer) PingComplete(_ context.Context, accountID int64, status models.PingStatus) {
	s.mu.Lock()
	delete(s.slots, accountID)
	s.cond.Broadcast()
	s.mu.Unlock()

	if status.Recoverable() {
		s.scheduler.SchedulePing(accountID, s.backoff)
	}
}

// pushEligible reports whether the account should hold a standing ping:
// not on security hold, and at least one push-enabled collection has
// completed its initial sync.
func (s *PingSyncSynchronizer) pushEligible(ctx context.Context, account models.Account) bool {
	if account.SecurityHold {
		return false
	}
	collections, err := s.collections.ListPingCollections(ctx, account.ID)
	if err != nil {
		s.log.Err(err).Int64("account_id", account.ID).Msg("evaluating push eligibility")
		return false
	}
	for _, c := range collections {
		if !c.InitialSync() {
			return true
		}
	}
	return false
}
