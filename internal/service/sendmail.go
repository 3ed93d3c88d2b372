package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

const contentTypeRFC822 = "message/rfc822"

// SendMailService submits outgoing messages. 14.x servers take a WBXML
// ComposeMail body; older servers take the raw RFC 822 message with the
// routing carried in query arguments.
type SendMailService struct {
	requestTimeout time.Duration
	log            *logger.Logger
}

// NewSendMailService constructs the outgoing mail service.
func NewSendMailService(requestTimeout time.Duration, log *logger.Logger) *SendMailService {
	return &SendMailService{requestTimeout: requestTimeout, log: log}
}

// SendMail submits a new message.
func (s *SendMailService) SendMail(ctx context.Context, conn adapter.Connection, mime []byte, saveInSent bool) error {
	if conn.ProtocolVersionDouble() >= models.VersionExchange2010Double {
		return s.sendCompose(ctx, conn, "SendMail", wbxml.ComposeSendMail, mime, saveInSent, "", "")
	}

	cmd := "SendMail"
	if saveInSent {
		cmd += "&SaveInSent=T"
	}
	return s.sendLegacy(ctx, conn, cmd, mime)
}

// SmartReply submits a reply to the message identified by collectionID and
// itemID; the server prepends the original message body server-side.
func (s *SendMailService) SmartReply(ctx context.Context, conn adapter.Connection, mime []byte, collectionID, itemID string, saveInSent bool) error {
	return s.smartSend(ctx, conn, "SmartReply", wbxml.ComposeSmartReply, mime, collectionID, itemID, saveInSent)
}

// SmartForward submits a forward of the message identified by collectionID
// and itemID; the server attaches the original server-side, attachments
// included.
func (s *SendMailService) SmartForward(ctx context.Context, conn adapter.Connection, mime []byte, collectionID, itemID string, saveInSent bool) error {
	return s.smartSend(ctx, conn, "SmartForward", wbxml.ComposeSmartForward, mime, collectionID, itemID, saveInSent)
}

func (s *SendMailService) smartSend(ctx context.Context, conn adapter.Connection, cmd string, root wbxml.Tag, mime []byte, collectionID, itemID string, saveInSent bool) error {
	if conn.ProtocolVersionDouble() >= models.VersionExchange2010Double {
		return s.sendCompose(ctx, conn, cmd, root, mime, saveInSent, collectionID, itemID)
	}

	cmd += "&ItemId=" + url.QueryEscape(itemID) + "&CollectionId=" + url.QueryEscape(collectionID)
	if saveInSent {
		cmd += "&SaveInSent=T"
	}
	return s.sendLegacy(ctx, conn, cmd, mime)
}

// sendCompose issues the 14.x WBXML form of SendMail, SmartReply or
// SmartForward. collectionID and itemID are empty for a plain send.
func (s *SendMailService) sendCompose(ctx context.Context, conn adapter.Connection, cmd string, root wbxml.Tag, mime []byte, saveInSent bool, collectionID, itemID string) error {
	e := wbxml.NewEncoder()
	e.Start(root)
	e.Data(wbxml.ComposeClientID, uuid.NewString())
	if saveInSent {
		e.Tag(wbxml.ComposeSaveInSentItems)
	}
	if itemID != "" {
		e.Start(wbxml.ComposeSource).
			Data(wbxml.ComposeFolderID, collectionID).
			Data(wbxml.ComposeItemID, itemID).
			End()
	}
	e.Start(wbxml.ComposeMIME).Opaque(mime).End()
	e.End()
	body, err := e.Bytes()
	if err != nil {
		return err
	}

	envelope, err := conn.SendCommand(ctx, cmd, body, s.requestTimeout)
	if err != nil {
		return err
	}
	return s.checkSendResponse(envelope)
}

// sendLegacy issues the pre-14.0 form: the raw message as the request body.
func (s *SendMailService) sendLegacy(ctx context.Context, conn adapter.Connection, cmd string, mime []byte) error {
	envelope, err := conn.SendRaw(ctx, cmd, contentTypeRFC822, mime, s.requestTimeout)
	if err != nil {
		return err
	}
	return s.checkSendResponse(envelope)
}

// checkSendResponse validates the reply. A successful send answers HTTP 200
// with an empty body; a body carries an error status.
func (s *SendMailService) checkSendResponse(envelope *adapter.Envelope) error {
	defer envelope.Close()

	switch envelope.Classify() {
	case adapter.StatusOK:
	case adapter.StatusAuthError:
		return fmt.Errorf("send mail: %w", adapter.ErrNetwork)
	default:
		return fmt.Errorf("send mail: server answered HTTP %d", envelope.StatusCode())
	}

	if envelope.Empty() {
		return nil
	}

	body, err := envelope.Body()
	if err != nil {
		return err
	}

	d := wbxml.NewDecoder(body)
	root, ok, err := d.NextTag(-1)
	if err != nil || !ok {
		// Servers occasionally pad a success with an unparseable stub.
		return nil
	}
	for {
		t, ok, err := d.NextTag(root)
		if err != nil || !ok {
			return nil
		}
		if t == wbxml.ComposeStatus {
			status, err := d.ValueInt()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			if status != 1 {
				return fmt.Errorf("send mail rejected with status %d", status)
			}
		}
	}
}
