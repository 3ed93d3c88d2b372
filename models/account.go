package models

import "time"

// SyncKeyInitial is the sentinel sync key meaning "no sync state exists yet".
// A request built with this key asks the server to issue the first real key.
// A cycle is an initial sync iff the collection's current key equals this
// value.
const SyncKeyInitial = "0"

// Account represents one Exchange ActiveSync account: identity, credentials,
// the negotiated protocol version, and the account-level (folder hierarchy)
// sync key. Accounts are created by external provisioning; this core mutates
// only ProtocolVersion, SyncKey, PolicyKey and SecurityHold.
type Account struct {
	// ID is the internal unique identifier of the account.
	ID int64 `json:"-"`

	// EmailAddress is the primary address, also used as the EAS User query
	// parameter unless HostAuth.Username overrides it.
	EmailAddress string `json:"email_address"`

	// DeviceID is the stable device identifier reported to the server in
	// every request. Generated once at account creation.
	DeviceID string `json:"device_id"`

	// ProtocolVersion is the negotiated EAS version string ("2.5" .. "14.1").
	// Empty until validation has completed.
	ProtocolVersion string `json:"protocol_version"`

	// SyncKey is the account-level sync key covering the folder hierarchy
	// (FolderSync), independent of every per-collection key.
	// SyncKeyInitial means the hierarchy has never been synced.
	SyncKey string `json:"sync_key"`

	// PolicyKey is the security policy key issued by the last successful
	// Provision exchange. Sent in the X-MS-PolicyKey header when non-empty.
	PolicyKey string `json:"policy_key"`

	// SecurityHold suspends all non-provisioning traffic for the account
	// until the required policies have been acknowledged.
	SecurityHold bool `json:"security_hold"`

	// HostAuth carries the server endpoint and credentials.
	HostAuth HostAuth `json:"host_auth"`

	// CreatedAt is the timestamp when the account record was created.
	CreatedAt time.Time `json:"created_at"`
}

// HostAuth holds the server endpoint and credential set for one account.
type HostAuth struct {
	// Address is the server host name, without scheme.
	Address string `json:"address"`

	// Port is the TCP port; 0 selects the scheme default.
	Port int `json:"port"`

	// Username and Password form the HTTP basic-auth credential pair.
	Username string `json:"username"`
	Password string `json:"-"`

	// UseSSL selects https. EAS servers in practice always require it.
	UseSSL bool `json:"use_ssl"`

	// TrustAll disables certificate verification. Only for test servers.
	TrustAll bool `json:"trust_all"`
}

// CacheKey returns the identity under which transport state (TCP connection
// pools) may be shared between accounts pointing at the same server.
func (h HostAuth) CacheKey() string {
	scheme := "http"
	if h.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + h.Username + "@" + h.Address
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// ProtocolVersionDouble returns the numeric value of the account's protocol
// version used for feature gating, or 0 if no version has been negotiated.
func (a Account) ProtocolVersionDouble() float64 {
	return VersionDouble(a.ProtocolVersion)
}
