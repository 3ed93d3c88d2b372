// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Roman Kataev

// Package workers runs the background push machinery: a timer-based
// scheduler dispatching the deferred ping restarts and targeted syncs the
// service layer requests.
package workers

import (
	"sync"
	"time"

	"github.com/rkataev/go-eas-sync/internal/logger"
)

// PingFunc runs one ping session for the account.
type PingFunc func(accountID int64)

// SyncFunc runs one sync cycle for the collection.
type SyncFunc func(accountID int64, collectionServerID string)

// Scheduler implements the service layer's scheduling contract with plain
// timers. Ping requests are deduplicated per account: scheduling a ping
// while one is already pending replaces the pending timer, so an account
// never accumulates a queue of ping restarts. Sync requests dispatch
// immediately; the service layer's per-account slot serializes them.
type Scheduler struct {
	mu     sync.Mutex
	pings  map[int64]*time.Timer
	closed bool

	ping PingFunc
	sync SyncFunc

	wg  sync.WaitGroup
	log *logger.Logger
}

// NewScheduler constructs a scheduler dispatching to the given callbacks.
func NewScheduler(ping PingFunc, sync SyncFunc, log *logger.Logger) *Scheduler {
	return &Scheduler{
		pings: make(map[int64]*time.Timer),
		ping:  ping,
		sync:  sync,
		log:   log,
	}
}

// SchedulePing arranges a ping for the account after delay, replacing any
// ping already pending for it.
func (s *Scheduler) SchedulePing(accountID int64, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if pending, ok := s.pings[accountID]; ok {
		if pending.Stop() {
			s.wg.Done()
		}
	}

	s.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		// Only clear our own entry: a replacement may already be pending.
		if s.pings[accountID] == timer {
			delete(s.pings, accountID)
		}
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}

		s.ping(accountID)
	})
	s.pings[accountID] = timer
}

// ScheduleSync dispatches a sync for the collection on its own goroutine.
func (s *Scheduler) ScheduleSync(accountID int64, collectionServerID string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.sync(accountID, collectionServerID)
	}()
}

// Close cancels pending timers and waits for in-flight dispatches. Timers
// stopped before firing release their waitgroup slot here.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	for id, pending := range s.pings {
		if pending.Stop() {
			s.wg.Done()
		}
		delete(s.pings, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
