// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Roman Kataev

package adapter

import (
	"context"
	"time"

	"github.com/rkataev/go-eas-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mocks.go -package=mock

// Connection is the transport contract the service layer works against.
// *Conn is the production implementation.
type Connection interface {
	// SendCommand POSTs one WBXML command body. cmd may carry extra query
	// arguments after an ampersand.
	SendCommand(ctx context.Context, cmd string, body []byte, timeout time.Duration) (*Envelope, error)

	// SendRaw is SendCommand with an explicit content type.
	SendRaw(ctx context.Context, cmd, contentType string, body []byte, timeout time.Duration) (*Envelope, error)

	// SendOptions issues the protocol discovery OPTIONS round-trip.
	SendOptions(ctx context.Context, timeout time.Duration) (*Envelope, error)

	// Stop interrupts the pending request, or pre-aborts the next one.
	Stop(reason models.StopReason)

	// ProtocolVersion returns the cached protocol version header value.
	ProtocolVersion() string

	// ProtocolVersionDouble returns the numeric protocol version.
	ProtocolVersionDouble() float64

	// InvalidateProtocolVersion drops the cached version.
	InvalidateProtocolVersion()

	// Account returns the connection's current account snapshot.
	Account() models.Account

	// SetAccount replaces the account snapshot.
	SetAccount(account models.Account)
}
