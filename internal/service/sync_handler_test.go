// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Roman Kataev

package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/mock"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

// requestScan is a decoded view of one built Sync request: the first value
// of every known leaf element plus presence marks for empty tags.
type requestScan struct {
	values map[wbxml.Tag]string
	seen   map[wbxml.Tag]bool
}

func scanRequest(t *testing.T, body []byte) *requestScan {
	t.Helper()

	d := wbxml.NewDecoder(bytes.NewReader(body))
	root, ok, err := d.NextTag(-1)
	if err != nil || !ok || root != wbxml.SyncSync {
		t.Fatalf("request does not start with a Sync root: %v", err)
	}

	leaf := map[wbxml.Tag]bool{
		wbxml.SyncSyncKey: true, wbxml.SyncCollectionID: true,
		wbxml.SyncFilterType: true, wbxml.SyncWindowSize: true,
		wbxml.SyncClass: true, wbxml.SyncTruncation: true,
		wbxml.BaseType: true, wbxml.BaseTruncationSize: true,
		wbxml.SyncServerID: true, wbxml.EmailRead: true,
	}

	s := &requestScan{values: map[wbxml.Tag]string{}, seen: map[wbxml.Tag]bool{}}
	for {
		tag, ok, err := d.NextTag(wbxml.SyncSync)
		if err != nil {
			t.Fatalf("walking request: %v", err)
		}
		if !ok {
			return s
		}
		s.seen[tag] = true
		if leaf[tag] {
			v, err := d.Value()
			if err != nil {
				t.Fatalf("reading %s: %v", tag, err)
			}
			if _, dup := s.values[tag]; !dup {
				s.values[tag] = v
			}
		}
	}
}

// The Class discriminator is mandatory below protocol 12.1 and forbidden
// from 12.1 on.
func TestMailRequestClassDependsOnVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	pending := mock.NewMockPendingChangeRepository(ctrl)
	pending.EXPECT().ListForCollection(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	collection := models.Collection{ID: 3, ServerID: "5", SyncKey: "1", Type: models.Mail}

	old := NewMailSyncHandler(models.VersionExchange2007Double, pending, logger.Nop())
	body, err := old.BuildRequest(context.Background(), collection, false, 1)
	if err != nil {
		t.Fatalf("building 12.0 request: %v", err)
	}
	scan := scanRequest(t, body)
	if scan.values[wbxml.SyncClass] != "Email" {
		t.Fatalf("12.0 request must carry Class Email, got %q", scan.values[wbxml.SyncClass])
	}
	if scan.values[wbxml.SyncSyncKey] != "1" || scan.values[wbxml.SyncCollectionID] != "5" {
		t.Fatalf("unexpected key/collection: %q/%q", scan.values[wbxml.SyncSyncKey], scan.values[wbxml.SyncCollectionID])
	}

	modern := NewMailSyncHandler(models.VersionExchange2007SDouble, pending, logger.Nop())
	body, err = modern.BuildRequest(context.Background(), collection, false, 1)
	if err != nil {
		t.Fatalf("building 12.1 request: %v", err)
	}
	scan = scanRequest(t, body)
	if scan.seen[wbxml.SyncClass] {
		t.Fatal("12.1 request must not carry a Class element")
	}
	if bytes.Contains(body, []byte("Email\x00")) {
		t.Fatal("12.1 request still contains the literal class string")
	}
}

func TestMailInitialRequestShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	pending := mock.NewMockPendingChangeRepository(ctrl)

	h := NewMailSyncHandler(models.VersionExchange2010SDouble, pending, logger.Nop())
	collection := models.Collection{ID: 3, ServerID: "5", SyncKey: "0", Type: models.Mail}

	body, err := h.BuildRequest(context.Background(), collection, true, 1)
	if err != nil {
		t.Fatalf("building initial request: %v", err)
	}
	scan := scanRequest(t, body)

	if scan.values[wbxml.SyncSyncKey] != "0" {
		t.Fatalf("initial request must carry key 0, got %q", scan.values[wbxml.SyncSyncKey])
	}
	if scan.seen[wbxml.SyncGetChanges] || scan.seen[wbxml.SyncWindowSize] || scan.seen[wbxml.SyncCommands] {
		t.Fatal("initial request must not carry delta elements")
	}
	if scan.values[wbxml.BaseType] != "2" || scan.values[wbxml.BaseTruncationSize] != mailTruncationSize {
		t.Fatalf("unexpected body preference: type %q size %q", scan.values[wbxml.BaseType], scan.values[wbxml.BaseTruncationSize])
	}
}

func TestMailLegacyTruncationBelow120(t *testing.T) {
	ctrl := gomock.NewController(t)
	pending := mock.NewMockPendingChangeRepository(ctrl)

	h := NewMailSyncHandler(models.VersionExchange2003Double, pending, logger.Nop())
	collection := models.Collection{ID: 3, ServerID: "5", SyncKey: "0", Type: models.Mail}

	body, err := h.BuildRequest(context.Background(), collection, true, 1)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	scan := scanRequest(t, body)
	if scan.values[wbxml.SyncTruncation] != legacyTruncation {
		t.Fatalf("expected legacy Truncation %q, got %q", legacyTruncation, scan.values[wbxml.SyncTruncation])
	}
	if scan.seen[wbxml.BaseBodyPreference] {
		t.Fatal("2.5 request must not carry a BodyPreference block")
	}
}

func TestMailRequestCarriesPendingChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	pending := mock.NewMockPendingChangeRepository(ctrl)
	pending.EXPECT().ListForCollection(gomock.Any(), int64(3)).Return([]models.PendingChange{
		{ID: 11, CollectionID: 3, ServerID: "m1", Kind: models.ChangeReadFlag, Read: true},
		{ID: 12, CollectionID: 3, ServerID: "m2", Kind: models.ChangeDelete},
	}, nil)

	h := NewMailSyncHandler(models.VersionExchange2010SDouble, pending, logger.Nop())
	collection := models.Collection{ID: 3, ServerID: "5", SyncKey: "k4", Type: models.Mail, Lookback: models.FilterTwoWeeks}

	body, err := h.BuildRequest(context.Background(), collection, false, 1)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	scan := scanRequest(t, body)
	if !scan.seen[wbxml.SyncCommands] || !scan.seen[wbxml.SyncChange] || !scan.seen[wbxml.SyncDelete] {
		t.Fatal("request is missing the upsync command block")
	}
	if scan.values[wbxml.EmailRead] != "1" {
		t.Fatalf("expected read flag 1, got %q", scan.values[wbxml.EmailRead])
	}
	if !bytes.Contains(body, []byte("m1\x00")) || !bytes.Contains(body, []byte("m2\x00")) {
		t.Fatal("request is missing pending change server ids")
	}

	// The carried ids are reported as acknowledged only after a successful
	// parse of the same cycle.
	e := wbxml.NewEncoder()
	e.Start(wbxml.SyncSync).Start(wbxml.SyncCollections).Start(wbxml.SyncCollection).
		Data(wbxml.SyncSyncKey, "k5").
		Data(wbxml.SyncStatus, "1").
		End().End().End()
	resp, err := e.Bytes()
	if err != nil {
		t.Fatalf("encoding response fixture: %v", err)
	}

	outcome, err := h.ParseResponse(context.Background(), bytes.NewReader(resp), collection)
	if err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if len(outcome.AckedPending) != 2 || outcome.AckedPending[0] != 11 || outcome.AckedPending[1] != 12 {
		t.Fatalf("expected acked ids [11 12], got %v", outcome.AckedPending)
	}
}

func TestParseSyncResponseIssuesFirstKey(t *testing.T) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.SyncSync).Start(wbxml.SyncCollections).Start(wbxml.SyncCollection).
		Data(wbxml.SyncSyncKey, "abc123").
		Data(wbxml.SyncCollectionID, "5").
		Data(wbxml.SyncStatus, "1").
		End().End().End()
	body, err := e.Bytes()
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	outcome, err := parseSyncResponse(context.Background(), bytes.NewReader(body), models.Collection{SyncKey: "0"})
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if outcome.NewSyncKey != "abc123" || outcome.Status != 1 || outcome.MoreAvailable {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestParseSyncResponseMoreAvailable(t *testing.T) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.SyncSync).Start(wbxml.SyncCollections).Start(wbxml.SyncCollection).
		Data(wbxml.SyncSyncKey, "k2").
		Data(wbxml.SyncStatus, "1").
		Tag(wbxml.SyncMoreAvailable).
		Start(wbxml.SyncCommands).
		Start(wbxml.SyncAdd).
		Data(wbxml.SyncServerID, "m9").
		Start(wbxml.SyncApplicationData).Data(wbxml.EmailRead, "0").End().
		End().
		End().
		End().End().End()
	body, err := e.Bytes()
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	outcome, err := parseSyncResponse(context.Background(), bytes.NewReader(body), models.Collection{})
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if !outcome.MoreAvailable || outcome.NewSyncKey != "k2" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestParseSyncResponseEmptyStream(t *testing.T) {
	_, err := parseSyncResponse(context.Background(), strings.NewReader(""), models.Collection{})
	if !errors.Is(err, wbxml.ErrEmptyStream) {
		t.Fatalf("expected ErrEmptyStream, got %v", err)
	}
}

func TestParseSyncResponseWrongRoot(t *testing.T) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.PingPing).Data(wbxml.PingStatus, "1").End()
	body, err := e.Bytes()
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	_, err = parseSyncResponse(context.Background(), bytes.NewReader(body), models.Collection{})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestContactsInitialRequestDeclaresSupported(t *testing.T) {
	h := NewContactsSyncHandler(models.VersionExchange2010SDouble, logger.Nop())
	body, err := h.BuildRequest(context.Background(), models.Collection{ServerID: "9", SyncKey: "0", Type: models.Contacts}, true, 1)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	scan := scanRequest(t, body)
	if !scan.seen[wbxml.SyncSupported] {
		t.Fatal("initial contacts request must declare Supported")
	}
	if scan.seen[wbxml.SyncFilterType] {
		t.Fatal("contacts request must not carry a FilterType")
	}
}

func TestCalendarRequestDefaultsLookback(t *testing.T) {
	h := NewCalendarSyncHandler(models.VersionExchange2010SDouble, logger.Nop())
	body, err := h.BuildRequest(context.Background(), models.Collection{ServerID: "8", SyncKey: "k1", Type: models.Calendar, Lookback: models.FilterAll}, false, 1)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	scan := scanRequest(t, body)
	if scan.values[wbxml.SyncFilterType] != "4" {
		t.Fatalf("expected default two-week lookback, got %q", scan.values[wbxml.SyncFilterType])
	}
}

func TestWindowSizeEscalation(t *testing.T) {
	cases := []struct {
		numWindows int
		want       int
	}{
		{0, 25}, {1, 25}, {2, 50}, {13, 325}, {100, 512},
	}
	for _, c := range cases {
		if got := windowSize(c.numWindows); got != c.want {
			t.Errorf("windowSize(%d) = %d, want %d", c.numWindows, got, c.want)
		}
	}
}
