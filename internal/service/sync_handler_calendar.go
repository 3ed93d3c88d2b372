package service

import (
	"context"
	"io"
	"strconv"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

// calendarSyncHandler builds and parses Sync bodies for event folders.
// Calendar collections carry no upsync commands; their distinguishing
// option is the lookback filter, which supports the wider three- and
// six-month windows mail does not.
type calendarSyncHandler struct {
	version float64
	log     *logger.Logger
}

// NewCalendarSyncHandler returns a calendar handler for the given
// negotiated protocol version.
func NewCalendarSyncHandler(version float64, log *logger.Logger) CollectionSyncHandler {
	return &calendarSyncHandler{version: version, log: log}
}

func (h *calendarSyncHandler) FolderClassName() string { return "Calendar" }

func (h *calendarSyncHandler) BuildRequest(_ context.Context, collection models.Collection, initial bool, numWindows int) ([]byte, error) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.SyncSync).Start(wbxml.SyncCollections).Start(wbxml.SyncCollection)
	emitClass(e, h.version, h.FolderClassName())
	e.Data(wbxml.SyncSyncKey, collection.SyncKey)
	e.Data(wbxml.SyncCollectionID, collection.ServerID)

	if !initial {
		e.Tag(wbxml.SyncGetChanges)
		e.Data(wbxml.SyncWindowSize, formatWindowSize(numWindows))

		e.Start(wbxml.SyncOptions)
		e.Data(wbxml.SyncFilterType, strconv.Itoa(h.lookback(collection)))
		emitBodyPreference(e, h.version)
		e.End()
	}

	e.End().End().End()
	return e.Bytes()
}

// lookback defaults to the two-week window when the collection has no
// explicit policy; an unbounded calendar sync is never wanted.
func (h *calendarSyncHandler) lookback(collection models.Collection) int {
	if collection.Lookback == models.FilterAll {
		return models.FilterTwoWeeks
	}
	return collection.Lookback
}

func (h *calendarSyncHandler) ParseResponse(ctx context.Context, body io.Reader, collection models.Collection) (SyncOutcome, error) {
	return parseSyncResponse(ctx, body, collection)
}
