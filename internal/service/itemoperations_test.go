package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/mock"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

func TestFetchAttachmentItemOperations(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := mock.NewMockConnection(ctrl)
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}

	conn.EXPECT().ProtocolVersionDouble().Return(models.VersionExchange2010SDouble)

	var sentBody []byte
	conn.EXPECT().SendCommand(gomock.Any(), "ItemOperations", gomock.Any(), time.Second).DoAndReturn(
		func(_ context.Context, _ string, body []byte, _ time.Duration) (*adapter.Envelope, error) {
			sentBody = body
			e := wbxml.NewEncoder()
			e.Start(wbxml.ItemOpsItemOperations).
				Data(wbxml.ItemOpsStatus, "1").
				Start(wbxml.ItemOpsResponse).
				Start(wbxml.ItemOpsFetch).
				Data(wbxml.ItemOpsStatus, "1").
				Start(wbxml.ItemOpsProperties).
				Data(wbxml.ItemOpsData, base64.StdEncoding.EncodeToString(payload)).
				End().End().End().End()
			resp, err := e.Bytes()
			if err != nil {
				t.Fatalf("encoding fixture: %v", err)
			}
			return adapter.NewEnvelope(http.StatusOK, nil, io.NopCloser(bytes.NewReader(resp))), nil
		})

	s := NewAttachmentService(time.Second, logger.Nop())
	got, err := s.Fetch(context.Background(), conn, "att-ref-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("decoded payload mismatch: %v", got)
	}

	// The request names the mailbox store and the file reference.
	for _, want := range []string{"Mailbox\x00", "att-ref-1\x00"} {
		if !bytes.Contains(sentBody, []byte(want)) {
			t.Fatalf("request body is missing %q", want)
		}
	}
}

func TestFetchAttachmentRejectedStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := mock.NewMockConnection(ctrl)

	conn.EXPECT().ProtocolVersionDouble().Return(models.VersionExchange2010SDouble)
	conn.EXPECT().SendCommand(gomock.Any(), "ItemOperations", gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, []byte, time.Duration) (*adapter.Envelope, error) {
			e := wbxml.NewEncoder()
			e.Start(wbxml.ItemOpsItemOperations).Data(wbxml.ItemOpsStatus, "14").End()
			resp, err := e.Bytes()
			if err != nil {
				t.Fatalf("encoding fixture: %v", err)
			}
			return adapter.NewEnvelope(http.StatusOK, nil, io.NopCloser(bytes.NewReader(resp))), nil
		})

	s := NewAttachmentService(time.Second, logger.Nop())
	if _, err := s.Fetch(context.Background(), conn, "att-ref-1"); err == nil {
		t.Fatal("expected a rejection error")
	}
}

// 2.5 servers serve the attachment bytes directly through GetAttachment.
func TestFetchAttachmentLegacyProtocol(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := mock.NewMockConnection(ctrl)
	payload := []byte("raw attachment bytes")

	conn.EXPECT().ProtocolVersionDouble().Return(models.VersionExchange2003Double)
	conn.EXPECT().SendCommand(gomock.Any(), "GetAttachment&AttachmentName=folder%2Fitem%2Fatt", nil, time.Second).
		Return(adapter.NewEnvelope(http.StatusOK, nil, io.NopCloser(bytes.NewReader(payload))), nil)

	s := NewAttachmentService(time.Second, logger.Nop())
	got, err := s.Fetch(context.Background(), conn, "folder/item/att")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: %q", got)
	}
}
