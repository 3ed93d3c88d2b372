// Package wbxml implements the binary XML encoding used by Exchange
// ActiveSync command bodies ([MS-ASWBXML]).
//
// The package exposes a streaming, tag-by-tag [Encoder] and [Decoder]
// rather than a document model: EAS responses can be large and the sync
// layer only ever inspects a handful of elements per command, skipping the
// rest. Tags are identified by [Tag] constants that combine the code page
// and the in-page token, mirroring the protocol's page-switching scheme.
package wbxml

// Tag identifies a WBXML element: the upper bits select the code page, the
// low six bits are the in-page token.
type Tag int

// Page returns the code page the tag belongs to.
func (t Tag) Page() int { return int(t) >> 6 }

// Token returns the in-page token value without the content bit.
func (t Tag) Token() byte { return byte(t) & 0x3f }

// String returns the element name when the tag is one this client emits or
// matches, or a page:token form otherwise.
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "page" + itoa(t.Page()) + ":0x" + hexByte(t.Token())
}

// Code pages used by the modeled commands.
const (
	PageAirSync         = 0
	PageContacts        = 1
	PageEmail           = 2
	PageCalendar        = 4
	PageFolderHierarchy = 7
	PagePing            = 13
	PageProvision       = 14
	PageAirSyncBase     = 17
	PageItemOperations  = 20
	PageComposeMail     = 21
)

// AirSync (code page 0).
const (
	SyncSync            = Tag(PageAirSync<<6 | 0x05)
	SyncResponses       = Tag(PageAirSync<<6 | 0x06)
	SyncAdd             = Tag(PageAirSync<<6 | 0x07)
	SyncChange          = Tag(PageAirSync<<6 | 0x08)
	SyncDelete          = Tag(PageAirSync<<6 | 0x09)
	SyncFetch           = Tag(PageAirSync<<6 | 0x0A)
	SyncSyncKey         = Tag(PageAirSync<<6 | 0x0B)
	SyncClientID        = Tag(PageAirSync<<6 | 0x0C)
	SyncServerID        = Tag(PageAirSync<<6 | 0x0D)
	SyncStatus          = Tag(PageAirSync<<6 | 0x0E)
	SyncCollection      = Tag(PageAirSync<<6 | 0x0F)
	SyncClass           = Tag(PageAirSync<<6 | 0x10)
	SyncCollectionID    = Tag(PageAirSync<<6 | 0x12)
	SyncGetChanges      = Tag(PageAirSync<<6 | 0x13)
	SyncMoreAvailable   = Tag(PageAirSync<<6 | 0x14)
	SyncWindowSize      = Tag(PageAirSync<<6 | 0x15)
	SyncCommands        = Tag(PageAirSync<<6 | 0x16)
	SyncOptions         = Tag(PageAirSync<<6 | 0x17)
	SyncFilterType      = Tag(PageAirSync<<6 | 0x18)
	SyncTruncation      = Tag(PageAirSync<<6 | 0x19)
	SyncConflict        = Tag(PageAirSync<<6 | 0x1B)
	SyncCollections     = Tag(PageAirSync<<6 | 0x1C)
	SyncApplicationData = Tag(PageAirSync<<6 | 0x1D)
	SyncDeletesAsMoves  = Tag(PageAirSync<<6 | 0x1E)
	SyncSupported       = Tag(PageAirSync<<6 | 0x20)
	SyncSoftDelete      = Tag(PageAirSync<<6 | 0x21)
	SyncMIMESupport     = Tag(PageAirSync<<6 | 0x22)
	SyncMIMETruncation  = Tag(PageAirSync<<6 | 0x23)
	SyncWait            = Tag(PageAirSync<<6 | 0x24)
	SyncLimit           = Tag(PageAirSync<<6 | 0x25)
	SyncPartial         = Tag(PageAirSync<<6 | 0x26)
)

// Email (code page 2). Only the read flag is emitted for upsync; the rest
// of the page is skipped during parsing.
const (
	EmailRead = Tag(PageEmail<<6 | 0x15)
)

// FolderHierarchy (code page 7).
const (
	FolderFolders      = Tag(PageFolderHierarchy<<6 | 0x05)
	FolderFolder       = Tag(PageFolderHierarchy<<6 | 0x06)
	FolderDisplayName  = Tag(PageFolderHierarchy<<6 | 0x07)
	FolderServerID     = Tag(PageFolderHierarchy<<6 | 0x08)
	FolderParentID     = Tag(PageFolderHierarchy<<6 | 0x09)
	FolderType         = Tag(PageFolderHierarchy<<6 | 0x0A)
	FolderResponse     = Tag(PageFolderHierarchy<<6 | 0x0B)
	FolderStatus       = Tag(PageFolderHierarchy<<6 | 0x0C)
	FolderContentClass = Tag(PageFolderHierarchy<<6 | 0x0D)
	FolderChanges      = Tag(PageFolderHierarchy<<6 | 0x0E)
	FolderAdd          = Tag(PageFolderHierarchy<<6 | 0x0F)
	FolderDelete       = Tag(PageFolderHierarchy<<6 | 0x10)
	FolderUpdate       = Tag(PageFolderHierarchy<<6 | 0x11)
	FolderSyncKey      = Tag(PageFolderHierarchy<<6 | 0x12)
	FolderCreate       = Tag(PageFolderHierarchy<<6 | 0x13)
	FolderDeleteCmd    = Tag(PageFolderHierarchy<<6 | 0x14)
	FolderUpdateCmd    = Tag(PageFolderHierarchy<<6 | 0x15)
	FolderSync         = Tag(PageFolderHierarchy<<6 | 0x16)
	FolderCount        = Tag(PageFolderHierarchy<<6 | 0x17)
)

// Ping (code page 13).
const (
	PingPing              = Tag(PagePing<<6 | 0x05)
	PingAutdState         = Tag(PagePing<<6 | 0x06)
	PingStatus            = Tag(PagePing<<6 | 0x07)
	PingHeartbeatInterval = Tag(PagePing<<6 | 0x08)
	PingFolders           = Tag(PagePing<<6 | 0x09)
	PingFolder            = Tag(PagePing<<6 | 0x0A)
	PingID                = Tag(PagePing<<6 | 0x0B)
	PingClass             = Tag(PagePing<<6 | 0x0C)
	PingMaxFolders        = Tag(PagePing<<6 | 0x0D)
)

// Provision (code page 14). Individual policy settings beyond these are
// skipped generically by the decoder.
const (
	ProvisionProvision        = Tag(PageProvision<<6 | 0x05)
	ProvisionPolicies         = Tag(PageProvision<<6 | 0x06)
	ProvisionPolicy           = Tag(PageProvision<<6 | 0x07)
	ProvisionPolicyType       = Tag(PageProvision<<6 | 0x08)
	ProvisionPolicyKey        = Tag(PageProvision<<6 | 0x09)
	ProvisionData             = Tag(PageProvision<<6 | 0x0A)
	ProvisionStatus           = Tag(PageProvision<<6 | 0x0B)
	ProvisionRemoteWipe       = Tag(PageProvision<<6 | 0x0C)
	ProvisionEASProvisionDoc  = Tag(PageProvision<<6 | 0x0D)
	ProvisionDevicePassword   = Tag(PageProvision<<6 | 0x0E)
	ProvisionMaxInactivity    = Tag(PageProvision<<6 | 0x13)
	ProvisionMaxAttachment    = Tag(PageProvision<<6 | 0x15)
	ProvisionDeviceEncryption = Tag(PageProvision<<6 | 0x2E)
)

// AirSyncBase (code page 17).
const (
	BaseBodyPreference = Tag(PageAirSyncBase<<6 | 0x05)
	BaseType           = Tag(PageAirSyncBase<<6 | 0x06)
	BaseTruncationSize = Tag(PageAirSyncBase<<6 | 0x07)
	BaseAllOrNone      = Tag(PageAirSyncBase<<6 | 0x08)
	BaseBody           = Tag(PageAirSyncBase<<6 | 0x0A)
	BaseData           = Tag(PageAirSyncBase<<6 | 0x0B)
	BaseFileReference  = Tag(PageAirSyncBase<<6 | 0x11)
)

// ItemOperations (code page 20).
const (
	ItemOpsItemOperations = Tag(PageItemOperations<<6 | 0x05)
	ItemOpsFetch          = Tag(PageItemOperations<<6 | 0x06)
	ItemOpsStore          = Tag(PageItemOperations<<6 | 0x07)
	ItemOpsOptions        = Tag(PageItemOperations<<6 | 0x08)
	ItemOpsRange          = Tag(PageItemOperations<<6 | 0x09)
	ItemOpsTotal          = Tag(PageItemOperations<<6 | 0x0A)
	ItemOpsProperties     = Tag(PageItemOperations<<6 | 0x0B)
	ItemOpsData           = Tag(PageItemOperations<<6 | 0x0C)
	ItemOpsStatus         = Tag(PageItemOperations<<6 | 0x0D)
	ItemOpsResponse       = Tag(PageItemOperations<<6 | 0x0E)
)

// ComposeMail (code page 21).
const (
	ComposeSendMail        = Tag(PageComposeMail<<6 | 0x05)
	ComposeSmartForward    = Tag(PageComposeMail<<6 | 0x06)
	ComposeSmartReply      = Tag(PageComposeMail<<6 | 0x07)
	ComposeSaveInSentItems = Tag(PageComposeMail<<6 | 0x08)
	ComposeReplaceMime     = Tag(PageComposeMail<<6 | 0x09)
	ComposeSource          = Tag(PageComposeMail<<6 | 0x0B)
	ComposeFolderID        = Tag(PageComposeMail<<6 | 0x0C)
	ComposeItemID          = Tag(PageComposeMail<<6 | 0x0D)
	ComposeLongID          = Tag(PageComposeMail<<6 | 0x0E)
	ComposeMIME            = Tag(PageComposeMail<<6 | 0x10)
	ComposeClientID        = Tag(PageComposeMail<<6 | 0x11)
	ComposeStatus          = Tag(PageComposeMail<<6 | 0x12)
)

var tagNames = map[Tag]string{
	SyncSync: "Sync", SyncResponses: "Responses", SyncAdd: "Add",
	SyncChange: "Change", SyncDelete: "Delete", SyncFetch: "Fetch",
	SyncSyncKey: "SyncKey", SyncClientID: "ClientId", SyncServerID: "ServerId",
	SyncStatus: "Status", SyncCollection: "Collection", SyncClass: "Class",
	SyncCollectionID: "CollectionId", SyncGetChanges: "GetChanges",
	SyncMoreAvailable: "MoreAvailable", SyncWindowSize: "WindowSize",
	SyncCommands: "Commands", SyncOptions: "Options",
	SyncFilterType: "FilterType", SyncTruncation: "Truncation",
	SyncConflict: "Conflict", SyncCollections: "Collections",
	SyncApplicationData: "ApplicationData", SyncDeletesAsMoves: "DeletesAsMoves",
	SyncSupported: "Supported", SyncSoftDelete: "SoftDelete",
	SyncMIMESupport: "MIMESupport", SyncMIMETruncation: "MIMETruncation",
	SyncWait: "Wait", SyncLimit: "Limit", SyncPartial: "Partial",

	EmailRead: "Read",

	FolderFolders: "Folders", FolderFolder: "Folder",
	FolderDisplayName: "DisplayName", FolderServerID: "ServerId",
	FolderParentID: "ParentId", FolderType: "Type", FolderResponse: "Response",
	FolderStatus: "Status", FolderContentClass: "ContentClass",
	FolderChanges: "Changes", FolderAdd: "Add", FolderDelete: "Delete",
	FolderUpdate: "Update", FolderSyncKey: "SyncKey",
	FolderCreate: "FolderCreate", FolderDeleteCmd: "FolderDelete",
	FolderUpdateCmd: "FolderUpdate", FolderSync: "FolderSync",
	FolderCount: "Count",

	PingPing: "Ping", PingAutdState: "AutdState", PingStatus: "Status",
	PingHeartbeatInterval: "HeartbeatInterval", PingFolders: "Folders",
	PingFolder: "Folder", PingID: "Id", PingClass: "Class",
	PingMaxFolders: "MaxFolders",

	ProvisionProvision: "Provision", ProvisionPolicies: "Policies",
	ProvisionPolicy: "Policy", ProvisionPolicyType: "PolicyType",
	ProvisionPolicyKey: "PolicyKey", ProvisionData: "Data",
	ProvisionStatus: "Status", ProvisionRemoteWipe: "RemoteWipe",
	ProvisionEASProvisionDoc: "EASProvisionDoc",
	ProvisionDevicePassword:  "DevicePasswordEnabled",
	ProvisionMaxInactivity:   "MaxInactivityTimeDeviceLock",
	ProvisionMaxAttachment:   "MaxAttachmentSize",
	ProvisionDeviceEncryption: "RequireDeviceEncryption",

	BaseBodyPreference: "BodyPreference", BaseType: "Type",
	BaseTruncationSize: "TruncationSize", BaseAllOrNone: "AllOrNone",
	BaseBody: "Body", BaseData: "Data", BaseFileReference: "FileReference",

	ItemOpsItemOperations: "ItemOperations", ItemOpsFetch: "Fetch",
	ItemOpsStore: "Store", ItemOpsOptions: "Options", ItemOpsRange: "Range",
	ItemOpsTotal: "Total", ItemOpsProperties: "Properties",
	ItemOpsData: "Data", ItemOpsStatus: "Status", ItemOpsResponse: "Response",

	ComposeSendMail: "SendMail", ComposeSmartForward: "SmartForward",
	ComposeSmartReply: "SmartReply", ComposeSaveInSentItems: "SaveInSentItems",
	ComposeReplaceMime: "ReplaceMime", ComposeSource: "Source",
	ComposeFolderID: "FolderId", ComposeItemID: "ItemId",
	ComposeLongID: "LongId", ComposeMIME: "Mime", ComposeClientID: "ClientId",
	ComposeStatus: "Status",
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	var b [8]byte
	i := len(b)
	for v > 0 {
		i--
		b[i] = byte('0' + v%10)
		v /= 10
	}
	return string(b[i:])
}

func hexByte(v byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[v>>4], digits[v&0x0f]})
}
