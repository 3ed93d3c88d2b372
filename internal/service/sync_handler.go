package service

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

const (
	// baseWindowSize items per MoreAvailable round-trip; scaled by
	// numWindows when the server stalls on an unchanged key, capped at the
	// protocol maximum of 512.
	baseWindowSize = 25
	maxWindowSize  = 512

	// mailTruncationSize is the body-truncation preference in bytes for
	// protocol 12.0 and later.
	mailTruncationSize = "200000"

	// legacyTruncation is the Truncation code used below 12.0 (7 = no
	// truncation of plain-text bodies).
	legacyTruncation = "7"
)

func windowSize(numWindows int) int {
	if numWindows < 1 {
		numWindows = 1
	}
	size := numWindows * baseWindowSize
	if size > maxWindowSize {
		size = maxWindowSize
	}
	return size
}

// emitClass writes the Class discriminator on protocol versions below
// 12.1. From 12.1 on the element must be omitted entirely; servers reject
// it. This is a compatibility rule, not a preference.
func emitClass(e *wbxml.Encoder, version float64, class string) {
	if version < models.VersionExchange2007SDouble {
		e.Data(wbxml.SyncClass, class)
	}
}

// emitBodyPreference writes the body/truncation options block appropriate
// for the protocol version.
func emitBodyPreference(e *wbxml.Encoder, version float64) {
	if version >= models.VersionExchange2007Double {
		e.Start(wbxml.BaseBodyPreference).
			Data(wbxml.BaseType, "2").
			Data(wbxml.BaseTruncationSize, mailTruncationSize).
			End()
		return
	}
	e.Data(wbxml.SyncTruncation, legacyTruncation)
}

// parseSyncResponse walks one Sync response and extracts the collection
// status, the newly issued sync key, and the MoreAvailable marker.
// ApplicationData and Responses subtrees are skipped: item-level field
// mapping happens outside this core.
func parseSyncResponse(_ context.Context, body io.Reader, _ models.Collection) (SyncOutcome, error) {
	var outcome SyncOutcome

	d := wbxml.NewDecoder(body)
	root, ok, err := d.NextTag(-1)
	if err != nil {
		return outcome, err
	}
	if !ok || root != wbxml.SyncSync {
		return outcome, fmt.Errorf("%w: expected Sync root, got %s", ErrMalformedResponse, root)
	}

	for {
		t, ok, err := d.NextTag(wbxml.SyncSync)
		if err != nil {
			return outcome, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if !ok {
			return outcome, nil
		}

		switch t {
		case wbxml.SyncSyncKey:
			key, err := d.Value()
			if err != nil {
				return outcome, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			if outcome.NewSyncKey == "" {
				outcome.NewSyncKey = key
			}
		case wbxml.SyncStatus:
			status, err := d.ValueInt()
			if err != nil {
				return outcome, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			if outcome.Status == 0 {
				outcome.Status = status
			}
		case wbxml.SyncMoreAvailable:
			outcome.MoreAvailable = true
		case wbxml.SyncApplicationData, wbxml.SyncResponses:
			if err := d.Skip(); err != nil {
				return outcome, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
		}
	}
}

func formatWindowSize(numWindows int) string {
	return strconv.Itoa(windowSize(numWindows))
}
