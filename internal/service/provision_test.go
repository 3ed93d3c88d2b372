package service

import (
	"bytes"
	"context"
	"errors"
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

func provisionEnvelope(build func(e *wbxml.Encoder)) *adapter.Envelope {
	e := wbxml.NewEncoder()
	build(e)
	body, err := e.Bytes()
	if err != nil {
		panic(err)
	}
	return adapter.NewEnvelope(http.StatusOK, nil, io.NopCloser(bytes.NewReader(body)))
}

func TestProvisionHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	conn := mock.NewMockConnection(ctrl)
	account := models.Account{ID: 7, PolicyKey: "old"}

	conn.EXPECT().ProtocolVersionDouble().Return(models.VersionExchange2010SDouble)

	var requests [][]byte
	conn.EXPECT().SendCommand(gomock.Any(), "Provision", gomock.Any(), time.Second).DoAndReturn(
		func(_ context.Context, _ string, body []byte, _ time.Duration) (*adapter.Envelope, error) {
			requests = append(requests, body)
			if len(requests) == 1 {
				return provisionEnvelope(func(e *wbxml.Encoder) {
					e.Start(wbxml.ProvisionProvision).
						Data(wbxml.ProvisionStatus, "1").
						Start(wbxml.ProvisionPolicies).
						Start(wbxml.ProvisionPolicy).
						Data(wbxml.ProvisionPolicyType, models.PolicyTypeWBXML).
						Data(wbxml.ProvisionStatus, "1").
						Data(wbxml.ProvisionPolicyKey, "temp-key").
						Start(wbxml.ProvisionData).
						Start(wbxml.ProvisionEASProvisionDoc).
						Data(wbxml.ProvisionDevicePassword, "0").
						Data(wbxml.ProvisionMaxAttachment, "1048576").
						End().End().
						End().End().End()
				}), nil
			}
			return provisionEnvelope(func(e *wbxml.Encoder) {
				e.Start(wbxml.ProvisionProvision).
					Data(wbxml.ProvisionStatus, "1").
					Start(wbxml.ProvisionPolicies).
					Start(wbxml.ProvisionPolicy).
					Data(wbxml.ProvisionPolicyType, models.PolicyTypeWBXML).
					Data(wbxml.ProvisionStatus, "1").
					Data(wbxml.ProvisionPolicyKey, "final-key").
					End().End().End()
			}), nil
		}).Times(2)

	// The acknowledge round-trip must go out under the temporary key.
	staged := account
	staged.PolicyKey = "temp-key"
	conn.EXPECT().SetAccount(staged)

	accounts.EXPECT().UpdatePolicyKey(gomock.Any(), int64(7), "final-key").Return(nil)
	accounts.EXPECT().UpdateSecurityHold(gomock.Any(), int64(7), false).Return(nil)

	s := NewProvisionService(accounts, time.Second, logger.Nop())
	got, err := s.Provision(context.Background(), conn, account)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if got.PolicyKey != "final-key" || got.SecurityHold {
		t.Fatalf("unexpected account state: %+v", got)
	}

	// The acknowledge body echoes the temporary key with status 1.
	if !bytes.Contains(requests[1], []byte("temp-key\x00")) {
		t.Fatal("acknowledge request does not echo the temporary key")
	}
}

func TestProvisionRemoteWipeSetsHold(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	conn := mock.NewMockConnection(ctrl)

	conn.EXPECT().ProtocolVersionDouble().Return(models.VersionExchange2010SDouble)
	conn.EXPECT().SendCommand(gomock.Any(), "Provision", gomock.Any(), gomock.Any()).
		Return(provisionEnvelope(func(e *wbxml.Encoder) {
			e.Start(wbxml.ProvisionProvision).
				Data(wbxml.ProvisionStatus, "1").
				Tag(wbxml.ProvisionRemoteWipe).
				End()
		}), nil)
	accounts.EXPECT().UpdateSecurityHold(gomock.Any(), int64(7), true).Return(nil)

	s := NewProvisionService(accounts, time.Second, logger.Nop())
	got, err := s.Provision(context.Background(), conn, models.Account{ID: 7})
	if !errors.Is(err, ErrRemoteWipeRequested) {
		t.Fatalf("expected ErrRemoteWipeRequested, got %v", err)
	}
	if !got.SecurityHold {
		t.Fatal("account should be on security hold after a wipe demand")
	}
}

func TestProvisionServerRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	conn := mock.NewMockConnection(ctrl)

	conn.EXPECT().ProtocolVersionDouble().Return(models.VersionExchange2010SDouble)
	conn.EXPECT().SendCommand(gomock.Any(), "Provision", gomock.Any(), gomock.Any()).
		Return(provisionEnvelope(func(e *wbxml.Encoder) {
			e.Start(wbxml.ProvisionProvision).Data(wbxml.ProvisionStatus, "2").End()
		}), nil)

	s := NewProvisionService(accounts, time.Second, logger.Nop())
	_, err := s.Provision(context.Background(), conn, models.Account{ID: 7})
	if !errors.Is(err, ErrProvisioningFailed) {
		t.Fatalf("expected ErrProvisioningFailed, got %v", err)
	}
}

// An acknowledge failure restores the connection's original account so the
// stale temporary key does not leak into later requests.
func TestProvisionAcknowledgeFailureRestoresAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	conn := mock.NewMockConnection(ctrl)
	account := models.Account{ID: 7, PolicyKey: "old"}

	conn.EXPECT().ProtocolVersionDouble().Return(models.VersionExchange2010SDouble)

	first := conn.EXPECT().SendCommand(gomock.Any(), "Provision", gomock.Any(), gomock.Any()).
		Return(provisionEnvelope(func(e *wbxml.Encoder) {
			e.Start(wbxml.ProvisionProvision).
				Data(wbxml.ProvisionStatus, "1").
				Data(wbxml.ProvisionPolicyKey, "temp-key").
				End()
		}), nil)
	conn.EXPECT().SendCommand(gomock.Any(), "Provision", gomock.Any(), gomock.Any()).
		Return(adapter.NewEnvelope(http.StatusInternalServerError, nil, nil), nil).After(first)

	staged := account
	staged.PolicyKey = "temp-key"
	stage := conn.EXPECT().SetAccount(staged)
	conn.EXPECT().SetAccount(account).After(stage)

	s := NewProvisionService(accounts, time.Second, logger.Nop())
	_, err := s.Provision(context.Background(), conn, account)
	if !errors.Is(err, ErrProvisioningFailed) {
		t.Fatalf("expected ErrProvisioningFailed, got %v", err)
	}
}

func TestParseProvisionResponsePolicySettings(t *testing.T) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.ProvisionProvision).
		Data(wbxml.ProvisionStatus, "1").
		Start(wbxml.ProvisionPolicies).
		Start(wbxml.ProvisionPolicy).
		Data(wbxml.ProvisionStatus, "1").
		Data(wbxml.ProvisionPolicyKey, "k").
		Start(wbxml.ProvisionData).
		Start(wbxml.ProvisionEASProvisionDoc).
		Data(wbxml.ProvisionDevicePassword, "1").
		Data(wbxml.ProvisionMaxInactivity, "300").
		Data(wbxml.ProvisionMaxAttachment, "2048").
		Data(wbxml.ProvisionDeviceEncryption, "1").
		End().End().End().End().End()
	body, err := e.Bytes()
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	challenge, err := parseProvisionResponse(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if challenge.TemporaryPolicyKey != "k" {
		t.Fatalf("expected policy key k, got %q", challenge.TemporaryPolicyKey)
	}
	p := challenge.Policies
	if !p.DevicePasswordEnabled || p.MaxInactivityLockSec != 300 || p.MaxAttachmentSize != 2048 || !p.RequireDeviceEncryption {
		t.Fatalf("unexpected policy set: %+v", p)
	}
}
