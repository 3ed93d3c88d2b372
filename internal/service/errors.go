// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Roman Kataev

package service

import "errors"

var (
	// ErrMalformedResponse reports a response whose expected root element
	// or structure is absent. Fatal for the current cycle.
	ErrMalformedResponse = errors.New("malformed server response")

	// ErrProvisioningFailed reports that a required provisioning exchange
	// could not be completed.
	ErrProvisioningFailed = errors.New("provisioning failed")

	// ErrRemoteWipeRequested reports that the server demanded a device wipe
	// instead of a policy set. The account is placed on security hold.
	ErrRemoteWipeRequested = errors.New("remote wipe requested")

	// ErrSecurityHold reports an attempt to run non-provisioning traffic
	// while the account is on security hold.
	ErrSecurityHold = errors.New("account is under security hold")

	// ErrNoProtocolOverlap reports that the server advertises no protocol
	// version this client can speak.
	ErrNoProtocolOverlap = errors.New("no mutually supported protocol version")
)
