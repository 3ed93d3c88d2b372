package service

import (
	"context"
	"io"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

// contactsSyncHandler builds and parses Sync bodies for address-book
// folders. Contacts never filter by age, so no FilterType is emitted; the
// initial cycle declares an empty Supported list, which tells the server
// every unset field is ghosted rather than cleared.
type contactsSyncHandler struct {
	version float64
	log     *logger.Logger
}

// NewContactsSyncHandler returns a contacts handler for the given
// negotiated protocol version.
func NewContactsSyncHandler(version float64, log *logger.Logger) CollectionSyncHandler {
	return &contactsSyncHandler{version: version, log: log}
}

func (h *contactsSyncHandler) FolderClassName() string { return "Contacts" }

func (h *contactsSyncHandler) BuildRequest(_ context.Context, collection models.Collection, initial bool, numWindows int) ([]byte, error) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.SyncSync).Start(wbxml.SyncCollections).Start(wbxml.SyncCollection)
	emitClass(e, h.version, h.FolderClassName())
	e.Data(wbxml.SyncSyncKey, collection.SyncKey)
	e.Data(wbxml.SyncCollectionID, collection.ServerID)

	if initial {
		e.Tag(wbxml.SyncSupported)
	} else {
		e.Tag(wbxml.SyncGetChanges)
		e.Data(wbxml.SyncWindowSize, formatWindowSize(numWindows))

		e.Start(wbxml.SyncOptions)
		emitBodyPreference(e, h.version)
		e.End()
	}

	e.End().End().End()
	return e.Bytes()
}

func (h *contactsSyncHandler) ParseResponse(ctx context.Context, body io.Reader, collection models.Collection) (SyncOutcome, error) {
	return parseSyncResponse(ctx, body, collection)
}
