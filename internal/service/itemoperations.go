package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

const itemOpsStatusSuccess = 1

// AttachmentService fetches message attachments. 12.x and later servers
// serve them through ItemOperations with the payload base64-encoded inline;
// 2.5 servers serve the raw bytes through the GetAttachment command.
type AttachmentService struct {
	requestTimeout time.Duration
	log            *logger.Logger
}

// NewAttachmentService constructs the attachment fetcher.
func NewAttachmentService(requestTimeout time.Duration, log *logger.Logger) *AttachmentService {
	return &AttachmentService{requestTimeout: requestTimeout, log: log}
}

// Fetch retrieves one attachment by its file reference (the AirSyncBase
// FileReference on 12.0+, the attachment name on 2.5) and returns its raw
// bytes.
func (s *AttachmentService) Fetch(ctx context.Context, conn adapter.Connection, fileReference string) ([]byte, error) {
	if conn.ProtocolVersionDouble() >= models.VersionExchange2007Double {
		return s.fetchItemOperations(ctx, conn, fileReference)
	}
	return s.fetchLegacy(ctx, conn, fileReference)
}

func (s *AttachmentService) fetchItemOperations(ctx context.Context, conn adapter.Connection, fileReference string) ([]byte, error) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.ItemOpsItemOperations).
		Start(wbxml.ItemOpsFetch).
		Data(wbxml.ItemOpsStore, "Mailbox").
		Data(wbxml.BaseFileReference, fileReference).
		End().End()
	body, err := e.Bytes()
	if err != nil {
		return nil, err
	}

	envelope, err := conn.SendCommand(ctx, "ItemOperations", body, s.requestTimeout)
	if err != nil {
		return nil, err
	}
	defer envelope.Close()

	if envelope.Classify() != adapter.StatusOK {
		return nil, fmt.Errorf("attachment fetch: server answered HTTP %d", envelope.StatusCode())
	}

	reader, err := envelope.Body()
	if err != nil {
		return nil, err
	}
	return parseItemOperationsFetch(reader)
}

// parseItemOperationsFetch walks the response and returns the decoded
// payload of the first Data element after validating every Status on the
// path to it.
func parseItemOperationsFetch(body io.Reader) ([]byte, error) {
	d := wbxml.NewDecoder(body)
	root, ok, err := d.NextTag(-1)
	if err != nil {
		return nil, err
	}
	if !ok || root != wbxml.ItemOpsItemOperations {
		return nil, fmt.Errorf("%w: expected ItemOperations root, got %s", ErrMalformedResponse, root)
	}

	var data []byte
	for {
		t, ok, err := d.NextTag(wbxml.ItemOpsItemOperations)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if !ok {
			if data == nil {
				return nil, fmt.Errorf("%w: no attachment data in response", ErrMalformedResponse)
			}
			return data, nil
		}

		switch t {
		case wbxml.ItemOpsStatus:
			status, err := d.ValueInt()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			if status != itemOpsStatusSuccess {
				return nil, fmt.Errorf("attachment fetch rejected with status %d", status)
			}
		case wbxml.ItemOpsData:
			encoded, err := d.ValueBytes()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			decoded, err := base64.StdEncoding.DecodeString(string(encoded))
			if err != nil {
				return nil, fmt.Errorf("%w: attachment payload is not base64: %v", ErrMalformedResponse, err)
			}
			data = decoded
		}
	}
}

// fetchLegacy uses the 2.5-era GetAttachment command, whose response body
// is the attachment itself.
func (s *AttachmentService) fetchLegacy(ctx context.Context, conn adapter.Connection, name string) ([]byte, error) {
	cmd := "GetAttachment&AttachmentName=" + url.QueryEscape(name)
	envelope, err := conn.SendCommand(ctx, cmd, nil, s.requestTimeout)
	if err != nil {
		return nil, err
	}
	defer envelope.Close()

	if envelope.Classify() != adapter.StatusOK {
		return nil, fmt.Errorf("attachment fetch: server answered HTTP %d", envelope.StatusCode())
	}

	reader, err := envelope.Body()
	if err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}
