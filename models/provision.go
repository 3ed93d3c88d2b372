// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Roman Kataev

package models

// Policy type identifiers sent in the Provision PolicyType element.
// Servers before protocol 12.0 only understand the WAP XML form.
const (
	PolicyTypeWAPXML = "MS-WAP-Provisioning-XML"
	PolicyTypeWBXML  = "MS-EAS-Provisioning-WBXML"
)

// Provision status codes from the wire Status element.
const (
	ProvisionStatusOK            = 1
	ProvisionStatusProtocolError = 2
	ProvisionStatusServerError   = 3
)

// ProvisionChallenge is the ephemeral result of a Provision request: the
// server's required policy set and the temporary policy key that must be
// acknowledged before regular traffic can resume. Consumed by the
// acknowledge exchange and discarded afterwards.
type ProvisionChallenge struct {
	// PolicyType echoes the requested policy document format.
	PolicyType string

	// TemporaryPolicyKey is the key issued by the initial Provision
	// response, valid only for the acknowledge round-trip.
	TemporaryPolicyKey string

	// RemoteWipe is set when the server demanded a device wipe instead of
	// a policy set. The account must be placed on security hold.
	RemoteWipe bool

	// Policies carries the subset of policy settings this client
	// interprets. Unknown settings are acknowledged but not enforced.
	Policies PolicySet
}

// PolicySet is the subset of EAS provisioning policy settings the client
// inspects. All other settings are accepted as-is.
type PolicySet struct {
	DevicePasswordEnabled   bool
	MaxInactivityLockSec    int
	RequireDeviceEncryption bool
	MaxAttachmentSize       int
}
