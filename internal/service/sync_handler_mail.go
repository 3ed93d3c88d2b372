package service

import (
	"context"
	"io"
	"strconv"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/store"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

// mailSyncHandler builds and parses Sync bodies for message folders. It is
// the only handler variant that emits upsync commands: queued read-flag
// flips and deletes ride along on non-initial cycles.
//
// A handler instance is scoped to one orchestrator invocation: it records
// which pending changes the last built request carried so a successful
// parse can report them as acknowledged.
type mailSyncHandler struct {
	version float64
	pending store.PendingChangeRepository
	log     *logger.Logger

	// sent holds the pending-change ids carried by the last built request.
	sent []int64
}

// NewMailSyncHandler returns a mail handler for the given negotiated
// protocol version.
func NewMailSyncHandler(version float64, pending store.PendingChangeRepository, log *logger.Logger) CollectionSyncHandler {
	return &mailSyncHandler{version: version, pending: pending, log: log}
}

func (h *mailSyncHandler) FolderClassName() string { return "Email" }

func (h *mailSyncHandler) BuildRequest(ctx context.Context, collection models.Collection, initial bool, numWindows int) ([]byte, error) {
	h.sent = nil

	e := wbxml.NewEncoder()
	e.Start(wbxml.SyncSync).Start(wbxml.SyncCollections).Start(wbxml.SyncCollection)
	emitClass(e, h.version, h.FolderClassName())
	e.Data(wbxml.SyncSyncKey, collection.SyncKey)
	e.Data(wbxml.SyncCollectionID, collection.ServerID)

	if initial {
		e.Start(wbxml.SyncOptions)
		emitBodyPreference(e, h.version)
		e.End()
	} else {
		e.Tag(wbxml.SyncDeletesAsMoves)
		e.Tag(wbxml.SyncGetChanges)
		e.Data(wbxml.SyncWindowSize, formatWindowSize(numWindows))

		e.Start(wbxml.SyncOptions)
		e.Data(wbxml.SyncFilterType, strconv.Itoa(collection.Lookback))
		emitBodyPreference(e, h.version)
		e.End()

		if err := h.emitCommands(ctx, e, collection); err != nil {
			return nil, err
		}
	}

	e.End().End().End()
	return e.Bytes()
}

// emitCommands appends the Commands block carrying queued local changes.
func (h *mailSyncHandler) emitCommands(ctx context.Context, e *wbxml.Encoder, collection models.Collection) error {
	changes, err := h.pending.ListForCollection(ctx, collection.ID)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		return nil
	}

	e.Start(wbxml.SyncCommands)
	for _, change := range changes {
		switch change.Kind {
		case models.ChangeReadFlag:
			read := "0"
			if change.Read {
				read = "1"
			}
			e.Start(wbxml.SyncChange).
				Data(wbxml.SyncServerID, change.ServerID).
				Start(wbxml.SyncApplicationData).
				Data(wbxml.EmailRead, read).
				End().
				End()
		case models.ChangeDelete:
			e.Start(wbxml.SyncDelete).
				Data(wbxml.SyncServerID, change.ServerID).
				End()
		default:
			h.log.Warn().Int("kind", int(change.Kind)).Msg("skipping unknown pending change kind")
			continue
		}
		h.sent = append(h.sent, change.ID)
	}
	e.End()
	return nil
}

func (h *mailSyncHandler) ParseResponse(ctx context.Context, body io.Reader, collection models.Collection) (SyncOutcome, error) {
	outcome, err := parseSyncResponse(ctx, body, collection)
	if err != nil {
		return outcome, err
	}
	if outcome.Status <= 1 {
		outcome.AckedPending = h.sent
	}
	return outcome, nil
}
