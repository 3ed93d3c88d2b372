// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Roman Kataev

package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/store"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

// ProvisionService runs the two-step Provision exchange: request the
// policy set (receiving a temporary key), then acknowledge it (receiving
// the final key the server expects in X-MS-PolicyKey from then on).
type ProvisionService struct {
	accounts       store.AccountRepository
	requestTimeout time.Duration
	log            *logger.Logger
}

// NewProvisionService constructs the provisioning subsystem.
func NewProvisionService(accounts store.AccountRepository, requestTimeout time.Duration, log *logger.Logger) *ProvisionService {
	return &ProvisionService{
		accounts:       accounts,
		requestTimeout: requestTimeout,
		log:            log,
	}
}

// Provision implements [Provisioner]. On success the returned account
// carries the final policy key, already persisted and with any security
// hold cleared. A remote-wipe demand sets the hold instead and fails with
// ErrRemoteWipeRequested.
func (s *ProvisionService) Provision(ctx context.Context, conn adapter.Connection, account models.Account) (models.Account, error) {
	log := s.log.WithAccount(account.ID)

	policyType := models.PolicyTypeWBXML
	if conn.ProtocolVersionDouble() < models.VersionExchange2007Double {
		policyType = models.PolicyTypeWAPXML
	}

	challenge, err := s.challenge(ctx, conn, policyType)
	if err != nil {
		return account, err
	}

	if challenge.RemoteWipe {
		log.Warn().Msg("server demanded a remote wipe; placing account on security hold")
		if err := s.accounts.UpdateSecurityHold(ctx, account.ID, true); err != nil {
			log.Err(err).Msg("persisting security hold")
		}
		account.SecurityHold = true
		return account, ErrRemoteWipeRequested
	}

	// The acknowledge round-trip must carry the temporary key.
	staged := account
	staged.PolicyKey = challenge.TemporaryPolicyKey
	conn.SetAccount(staged)

	finalKey, err := s.acknowledge(ctx, conn, challenge)
	if err != nil {
		conn.SetAccount(account)
		return account, err
	}

	if err := s.accounts.UpdatePolicyKey(ctx, account.ID, finalKey); err != nil {
		return account, err
	}
	if err := s.accounts.UpdateSecurityHold(ctx, account.ID, false); err != nil {
		log.Err(err).Msg("clearing security hold")
	}

	account.PolicyKey = finalKey
	account.SecurityHold = false
	log.Info().Msg("provisioning completed")
	return account, nil
}

// challenge requests the policy set and returns the server's challenge.
func (s *ProvisionService) challenge(ctx context.Context, conn adapter.Connection, policyType string) (models.ProvisionChallenge, error) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.ProvisionProvision).
		Start(wbxml.ProvisionPolicies).
		Start(wbxml.ProvisionPolicy).
		Data(wbxml.ProvisionPolicyType, policyType).
		End().End().End()
	body, err := e.Bytes()
	if err != nil {
		return models.ProvisionChallenge{}, err
	}

	envelope, err := conn.SendCommand(ctx, "Provision", body, s.requestTimeout)
	if err != nil {
		return models.ProvisionChallenge{}, err
	}
	defer envelope.Close()

	if envelope.Classify() != adapter.StatusOK {
		return models.ProvisionChallenge{}, fmt.Errorf("%w: HTTP %d", ErrProvisioningFailed, envelope.StatusCode())
	}

	reader, err := envelope.Body()
	if err != nil {
		return models.ProvisionChallenge{}, err
	}

	challenge, err := parseProvisionResponse(reader)
	if err != nil {
		return models.ProvisionChallenge{}, err
	}
	challenge.PolicyType = policyType
	if !challenge.RemoteWipe && challenge.TemporaryPolicyKey == "" {
		return models.ProvisionChallenge{}, fmt.Errorf("%w: no policy key issued", ErrProvisioningFailed)
	}
	return challenge, nil
}

// acknowledge confirms the policy set and returns the final policy key.
func (s *ProvisionService) acknowledge(ctx context.Context, conn adapter.Connection, challenge models.ProvisionChallenge) (string, error) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.ProvisionProvision).
		Start(wbxml.ProvisionPolicies).
		Start(wbxml.ProvisionPolicy).
		Data(wbxml.ProvisionPolicyType, challenge.PolicyType).
		Data(wbxml.ProvisionPolicyKey, challenge.TemporaryPolicyKey).
		Data(wbxml.ProvisionStatus, "1").
		End().End().End()
	body, err := e.Bytes()
	if err != nil {
		return "", err
	}

	envelope, err := conn.SendCommand(ctx, "Provision", body, s.requestTimeout)
	if err != nil {
		return "", err
	}
	defer envelope.Close()

	if envelope.Classify() != adapter.StatusOK {
		return "", fmt.Errorf("%w: acknowledge answered HTTP %d", ErrProvisioningFailed, envelope.StatusCode())
	}

	reader, err := envelope.Body()
	if err != nil {
		return "", err
	}

	acked, err := parseProvisionResponse(reader)
	if err != nil {
		return "", err
	}
	if acked.TemporaryPolicyKey == "" {
		return "", fmt.Errorf("%w: acknowledge issued no final key", ErrProvisioningFailed)
	}
	return acked.TemporaryPolicyKey, nil
}

// parseProvisionResponse extracts the status, issued policy key, remote
// wipe marker, and the policy settings this client inspects. Unknown
// settings are skipped.
func parseProvisionResponse(body io.Reader) (models.ProvisionChallenge, error) {
	var challenge models.ProvisionChallenge

	d := wbxml.NewDecoder(body)
	root, ok, err := d.NextTag(-1)
	if err != nil {
		return challenge, err
	}
	if !ok || root != wbxml.ProvisionProvision {
		return challenge, fmt.Errorf("%w: expected Provision root, got %s", ErrMalformedResponse, root)
	}

	status := 0
	for {
		t, ok, err := d.NextTag(wbxml.ProvisionProvision)
		if err != nil {
			return challenge, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if !ok {
			break
		}

		switch t {
		case wbxml.ProvisionStatus:
			v, err := d.ValueInt()
			if err != nil {
				return challenge, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			if status == 0 {
				status = v
			}
		case wbxml.ProvisionPolicyKey:
			key, err := d.Value()
			if err != nil {
				return challenge, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			if challenge.TemporaryPolicyKey == "" {
				challenge.TemporaryPolicyKey = key
			}
		case wbxml.ProvisionRemoteWipe:
			challenge.RemoteWipe = true
			_ = d.Skip()
		case wbxml.ProvisionDevicePassword:
			v, err := d.ValueInt()
			if err == nil {
				challenge.Policies.DevicePasswordEnabled = v == 1
			}
		case wbxml.ProvisionMaxInactivity:
			v, err := d.ValueInt()
			if err == nil {
				challenge.Policies.MaxInactivityLockSec = v
			}
		case wbxml.ProvisionMaxAttachment:
			v, err := d.ValueInt()
			if err == nil {
				challenge.Policies.MaxAttachmentSize = v
			}
		case wbxml.ProvisionDeviceEncryption:
			v, err := d.ValueInt()
			if err == nil {
				challenge.Policies.RequireDeviceEncryption = v == 1
			}
		}
	}

	if status > models.ProvisionStatusOK {
		return challenge, fmt.Errorf("%w: server status %d", ErrProvisioningFailed, status)
	}
	return challenge, nil
}
