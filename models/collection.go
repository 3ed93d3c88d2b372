package models

// CollectionType selects which sync handler variant applies to a collection.
type CollectionType int

const (
	// Mail is a message folder (inbox, user folders).
	Mail CollectionType = 1

	// Calendar is an event folder.
	Calendar CollectionType = 2

	// Contacts is an address-book folder.
	Contacts CollectionType = 3
)

// String returns the EAS folder class name for the collection type, used as
// the Class discriminator on protocol versions below 12.1 and in Ping folder
// entries on all versions.
func (t CollectionType) String() string {
	switch t {
	case Mail:
		return "Email"
	case Calendar:
		return "Calendar"
	case Contacts:
		return "Contacts"
	default:
		return "Email"
	}
}

// Collection is one synchronizable server folder. Its sync key is
// independent of the account's hierarchy key and is replaced only by a value
// returned from a successful, fully parsed server response for that exact
// key; on any failure the prior key is retained.
type Collection struct {
	// ID is the internal unique identifier of the collection.
	ID int64 `json:"-"`

	// AccountID references the owning account.
	AccountID int64 `json:"account_id"`

	// ServerID is the server-assigned opaque folder identifier.
	ServerID string `json:"server_id"`

	// DisplayName is the server-reported folder name.
	DisplayName string `json:"display_name"`

	// Type selects the sync handler variant.
	Type CollectionType `json:"type"`

	// SyncKey is the per-collection sync key. SyncKeyInitial means the
	// collection has never completed an initial sync.
	SyncKey string `json:"sync_key"`

	// SyncEnabled marks the collection as enabled for background sync and
	// therefore eligible for aggregated Ping requests.
	SyncEnabled bool `json:"sync_enabled"`

	// Lookback is the FilterType window for mail and calendar collections
	// (one of the FilterType* constants); ignored for contacts.
	Lookback int `json:"lookback"`
}

// InitialSync reports whether the next cycle for the collection is an
// initial sync.
func (c Collection) InitialSync() bool {
	return c.SyncKey == SyncKeyInitial || c.SyncKey == ""
}

// TableName returns the name of the database table
// associated with the Collection model.
func (c Collection) TableName() string {
	return "collections"
}

// FilterType values for the AirSync Options FilterType element. The
// three-month and six-month windows are valid for calendar only.
const (
	FilterAll         = 0
	FilterOneDay      = 1
	FilterThreeDays   = 2
	FilterOneWeek     = 3
	FilterTwoWeeks    = 4
	FilterOneMonth    = 5
	FilterThreeMonths = 6
	FilterSixMonths   = 7
)

// PendingChangeKind discriminates queued local changes awaiting upsync.
type PendingChangeKind int

const (
	// ChangeReadFlag flips the message read state on the server.
	ChangeReadFlag PendingChangeKind = 1

	// ChangeDelete removes the item on the server.
	ChangeDelete PendingChangeKind = 2
)

// PendingChange is a queued local mutation emitted as an upsync command on
// the next non-initial sync of its collection. Cleared only after the server
// acknowledges the cycle that carried it.
type PendingChange struct {
	ID           int64             `json:"-"`
	CollectionID int64             `json:"collection_id"`
	ServerID     string            `json:"server_id"`
	Kind         PendingChangeKind `json:"kind"`
	Read         bool              `json:"read"`
}

// TableName returns the name of the database table
// associated with the PendingChange model.
func (p PendingChange) TableName() string {
	return "pending_changes"
}
