package service

import (
	"context"
	"errors"
	"time"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/store"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

const (
	// maxLoopingAttempts bounds the MoreAvailable loop so a misbehaving
	// server can never hold a sync cycle forever.
	maxLoopingAttempts = 100

	// maxNumWindows bounds the paging-hint escalation used against servers
	// that report more data without advancing the key.
	maxNumWindows = 13

	syncStatusSuccess = 1
)

// isProvisionStatus reports whether a wire status signals that the server
// requires a provisioning exchange before serving this command. 14.x
// servers report these in the body where older ones answer HTTP 449.
func isProvisionStatus(status int) bool {
	return status >= 142 && status <= 144
}

// SyncOrchestrator drives the per-collection request/response loop: it
// issues requests, advances the sync key, detects stalled pagination,
// escalates the window size, resolves provisioning interrupts inline, and
// returns a terminal result code.
type SyncOrchestrator struct {
	collections        store.CollectionRepository
	pending            store.PendingChangeRepository
	provisioner        Provisioner
	requestTimeout     time.Duration
	initialSyncTimeout time.Duration
	log                *logger.Logger
}

// NewSyncOrchestrator constructs the orchestrator. initialSyncTimeout
// applies to cycles starting from the initial sync key; servers take
// markedly longer to answer a first sync.
func NewSyncOrchestrator(
	collections store.CollectionRepository,
	pending store.PendingChangeRepository,
	provisioner Provisioner,
	requestTimeout, initialSyncTimeout time.Duration,
	log *logger.Logger,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		collections:        collections,
		pending:            pending,
		provisioner:        provisioner,
		requestTimeout:     requestTimeout,
		initialSyncTimeout: initialSyncTimeout,
		log:                log,
	}
}

// PerformSync runs the full sync state machine for one collection,
// including MoreAvailable looping, and returns the terminal result.
//
// The collection's persisted sync key is replaced only after a successful,
// fully parsed response for that exact key; every failure path leaves the
// prior key untouched.
func (o *SyncOrchestrator) PerformSync(ctx context.Context, conn adapter.Connection, collectionID int64, handler CollectionSyncHandler) models.SyncResult {
	log := o.log.WithAccount(conn.Account().ID)

	numWindows := 1
	for attempt := 0; attempt < maxLoopingAttempts; attempt++ {
		collection, err := o.collections.GetCollection(ctx, collectionID)
		if err != nil {
			log.Err(err).Int64("collection_id", collectionID).Msg("cannot read sync state")
			return models.SyncResultFailedOther
		}
		if collection.SyncKey == "" {
			collection.SyncKey = models.SyncKeyInitial
		}
		initial := collection.InitialSync()

		body, err := handler.BuildRequest(ctx, collection, initial, numWindows)
		if err != nil {
			log.Err(err).Msg("building sync request")
			return models.SyncResultFailedOther
		}

		timeout := o.requestTimeout
		if initial {
			timeout = o.initialSyncTimeout
		}

		envelope, err := conn.SendCommand(ctx, "Sync", body, timeout)
		if err != nil {
			if errors.Is(err, adapter.ErrNetwork) {
				log.Warn().Err(err).Msg("sync interrupted by transport failure")
				return models.SyncResultFailedIO
			}
			log.Err(err).Msg("sync request failed")
			return models.SyncResultFailedOther
		}

		outcome, result, retry := o.handleResponse(ctx, conn, envelope, handler, collection, log)
		if retry {
			// Provisioning resolved; resend with the same key.
			continue
		}
		if result != nil {
			return *result
		}

		keyAdvanced := false
		if outcome.NewSyncKey != "" && outcome.NewSyncKey != collection.SyncKey {
			if err := o.collections.UpdateSyncKey(ctx, collection.ID, outcome.NewSyncKey); err != nil {
				log.Err(err).Msg("persisting advanced sync key")
				return models.SyncResultFailedOther
			}
			keyAdvanced = true
		}
		if len(outcome.AckedPending) > 0 {
			if err := o.pending.Delete(ctx, collection.ID, outcome.AckedPending); err != nil {
				log.Err(err).Msg("clearing acknowledged pending changes")
			}
		}

		if !outcome.MoreAvailable {
			return models.SyncResultDone
		}

		if keyAdvanced {
			numWindows = 1
			continue
		}

		// The server claims more data but issued no new key. Escalate the
		// paging hint; the iteration cap guarantees termination.
		log.Warn().
			Str("sync_key", collection.SyncKey).
			Int("num_windows", numWindows).
			Msg("MoreAvailable with unchanged sync key")
		if numWindows < maxNumWindows {
			numWindows++
		}
	}

	log.Error().Int("attempts", maxLoopingAttempts).Msg("sync loop cap reached")
	return models.SyncResultFailedOther
}

// handleResponse classifies one envelope. It returns either a parsed
// outcome (both result and retry unset), a terminal result, or retry=true
// after an inline provisioning exchange succeeded.
func (o *SyncOrchestrator) handleResponse(
	ctx context.Context,
	conn adapter.Connection,
	envelope *adapter.Envelope,
	handler CollectionSyncHandler,
	collection models.Collection,
	log *logger.Logger,
) (SyncOutcome, *models.SyncResult, bool) {
	defer envelope.Close()

	fail := func(r models.SyncResult) (SyncOutcome, *models.SyncResult, bool) {
		return SyncOutcome{}, &r, false
	}

	switch envelope.Classify() {
	case adapter.StatusOK:
	case adapter.StatusAuthError:
		return fail(models.SyncResultFailedLogin)
	case adapter.StatusProvisionError:
		if !o.reprovision(ctx, conn, log) {
			return fail(models.SyncResultFailedSecurity)
		}
		return SyncOutcome{}, nil, true
	default:
		log.Warn().Int("http_status", envelope.StatusCode()).Msg("unexpected sync response status")
		return fail(models.SyncResultFailedOther)
	}

	if envelope.Empty() {
		return fail(models.SyncResultDone)
	}

	body, err := envelope.Body()
	if err != nil {
		log.Err(err).Msg("reading sync response body")
		return fail(models.SyncResultFailedOther)
	}

	outcome, err := handler.ParseResponse(ctx, body, collection)
	if err != nil {
		if errors.Is(err, wbxml.ErrEmptyStream) {
			// Valid "no changes" reply on compressed transports.
			return fail(models.SyncResultDone)
		}
		log.Err(err).Msg("parsing sync response")
		return fail(models.SyncResultFailedOther)
	}

	if outcome.Status > syncStatusSuccess {
		if isProvisionStatus(outcome.Status) {
			if !o.reprovision(ctx, conn, log) {
				return fail(models.SyncResultFailedSecurity)
			}
			return SyncOutcome{}, nil, true
		}
		log.Warn().Int("status", outcome.Status).Msg("server rejected sync")
		return fail(models.SyncResultFailedOther)
	}

	return outcome, nil, false
}

// reprovision runs the provisioning exchange and retargets the connection
// at the refreshed account on success.
func (o *SyncOrchestrator) reprovision(ctx context.Context, conn adapter.Connection, log *logger.Logger) bool {
	account, err := o.provisioner.Provision(ctx, conn, conn.Account())
	if err != nil {
		log.Err(err).Msg("provisioning exchange failed")
		return false
	}
	conn.SetAccount(account)
	return true
}
