package service

import (
	"context"
	"fmt"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/internal/config"
	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/store"
	"github.com/rkataev/go-eas-sync/models"
)

// Services bundles every account-facing operation behind one façade. The
// sub-services share the repositories, the transport registry, and the
// sync/ping mutual exclusion state.
type Services struct {
	Validate    *ValidateService
	FolderSync  *FolderSyncService
	Provision   *ProvisionService
	SendMail    *SendMailService
	Attachments *AttachmentService

	orchestrator *SyncOrchestrator
	ping         *PingCoordinator
	synchronizer *PingSyncSynchronizer

	repos    *store.Repositories
	registry *adapter.Registry
	opts     adapter.Options
	log      *logger.Logger
}

// NewServices wires the full service layer.
func NewServices(repos *store.Repositories, registry *adapter.Registry, scheduler Scheduler, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	provision := NewProvisionService(repos.Accounts, cfg.Adapter.RequestTimeout, log)

	return &Services{
		Validate:    NewValidateService(repos.Accounts, cfg.Adapter.RequestTimeout, log),
		FolderSync:  NewFolderSyncService(repos.Accounts, repos.Collections, cfg.Adapter.RequestTimeout, log),
		Provision:   provision,
		SendMail:    NewSendMailService(cfg.Adapter.RequestTimeout, log),
		Attachments: NewAttachmentService(cfg.Adapter.RequestTimeout, log),

		orchestrator: NewSyncOrchestrator(
			repos.Collections,
			repos.PendingChanges,
			provision,
			cfg.Adapter.RequestTimeout,
			cfg.Adapter.InitialSyncTimeout,
			log,
		),
		ping:         NewPingCoordinator(repos.Collections, cfg.Workers.PingHeartbeat, log),
		synchronizer: NewPingSyncSynchronizer(repos.Collections, scheduler, cfg.Workers.SyncFailureBackoff, log),

		repos:    repos,
		registry: registry,
		opts:     adapter.Options{DeviceType: cfg.App.DeviceType, UserAgent: cfg.App.UserAgent},
		log:      log,
	}
}

// Connect builds a transport connection for the account.
func (s *Services) Connect(account models.Account) adapter.Connection {
	return adapter.NewConn(s.registry, account, s.opts, s.log)
}

// SyncCollection runs one full sync cycle for the collection identified by
// its server id. The account's slot is claimed for the duration, so a
// running ping is interrupted first and no ping restarts until the cycle
// finishes.
func (s *Services) SyncCollection(ctx context.Context, accountID int64, collectionServerID string) models.SyncResult {
	account, err := s.repos.Accounts.GetAccount(ctx, accountID)
	if err != nil {
		s.log.Err(err).Int64("account_id", accountID).Msg("loading account for sync")
		return models.SyncResultFailedOther
	}
	if account.SecurityHold {
		return models.SyncResultFailedSecurity
	}

	s.synchronizer.StartSync(account.ID)
	result := s.syncLocked(ctx, account, collectionServerID)
	s.synchronizer.SyncComplete(ctx, account, result.Failed())
	return result
}

func (s *Services) syncLocked(ctx context.Context, account models.Account, collectionServerID string) models.SyncResult {
	log := s.log.WithAccount(account.ID)

	collection, err := s.repos.Collections.GetCollectionByServerID(ctx, account.ID, collectionServerID)
	if err != nil {
		log.Err(err).Str("server_id", collectionServerID).Msg("loading collection for sync")
		return models.SyncResultFailedOther
	}

	conn := s.Connect(account)
	handler, err := s.handlerFor(collection.Type, account.ProtocolVersionDouble())
	if err != nil {
		log.Err(err).Msg("selecting sync handler")
		return models.SyncResultFailedOther
	}

	result := s.orchestrator.PerformSync(ctx, conn, collection.ID, handler)
	log.Info().
		Str("server_id", collectionServerID).
		Str("result", result.String()).
		Msg("sync cycle finished")
	return result
}

// handlerFor selects the sync handler variant for the collection type.
func (s *Services) handlerFor(t models.CollectionType, version float64) (CollectionSyncHandler, error) {
	switch t {
	case models.Mail:
		return NewMailSyncHandler(version, s.repos.PendingChanges, s.log), nil
	case models.Calendar:
		return NewCalendarSyncHandler(version, s.log), nil
	case models.Contacts:
		return NewContactsSyncHandler(version, s.log), nil
	default:
		return nil, fmt.Errorf("no sync handler for collection type %d", t)
	}
}

// RunPing executes one ping session for the account: claim the slot, hold
// the long poll until a terminal status, then schedule syncs for every
// folder the server flagged. Returns the terminal status.
func (s *Services) RunPing(ctx context.Context, accountID int64) models.PingStatus {
	account, err := s.repos.Accounts.GetAccount(ctx, accountID)
	if err != nil {
		s.log.Err(err).Int64("account_id", accountID).Msg("loading account for ping")
		return models.PingStatusNetworkFailure
	}
	if account.SecurityHold {
		return models.PingStatusAborted
	}

	conn := s.Connect(account)
	if !s.synchronizer.StartPing(account.ID, conn) {
		// A sync holds the slot; it will reschedule the ping itself.
		return models.PingStatusAborted
	}

	result, err := s.ping.Ping(ctx, conn, account)
	if err != nil {
		s.log.Err(err).Int64("account_id", accountID).Msg("ping session failed")
	}
	s.synchronizer.PingComplete(ctx, account.ID, result.Status)

	switch result.Status {
	case models.PingStatusChangesFound:
		for _, serverID := range result.SyncList {
			s.synchronizer.scheduler.ScheduleSync(account.ID, serverID)
		}
	case models.PingStatusFolderRefreshNeeded:
		s.refreshHierarchy(ctx, conn, account)
	}
	return result.Status
}

// refreshHierarchy reruns FolderSync after a ping reported a stale folder
// hierarchy. The refresh is a network operation, so the account's slot is
// claimed for its duration like any sync; releasing it through SyncComplete
// also restarts the ping once the hierarchy is current.
func (s *Services) refreshHierarchy(ctx context.Context, conn adapter.Connection, account models.Account) {
	s.synchronizer.StartSync(account.ID)
	err := s.FolderSync.FolderSync(ctx, conn, account)
	if err != nil {
		s.log.Err(err).Int64("account_id", account.ID).Msg("hierarchy refresh after ping")
	}
	s.synchronizer.SyncComplete(ctx, account, err != nil)
}
