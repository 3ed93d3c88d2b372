package store

import (
	"context"

	"github.com/rkataev/go-eas-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository persists account identity and the account-level sync
// state (hierarchy key, negotiated version, policy key, security hold).
type AccountRepository interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	GetAccount(ctx context.Context, id int64) (models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	UpdateSyncKey(ctx context.Context, id int64, syncKey string) error
	UpdateProtocolVersion(ctx context.Context, id int64, version string) error
	UpdatePolicyKey(ctx context.Context, id int64, policyKey string) error
	UpdateSecurityHold(ctx context.Context, id int64, hold bool) error
	DeleteAccount(ctx context.Context, id int64) error
}

// CollectionRepository persists the folder hierarchy and per-collection
// sync keys.
type CollectionRepository interface {
	GetCollection(ctx context.Context, id int64) (models.Collection, error)
	GetCollectionByServerID(ctx context.Context, accountID int64, serverID string) (models.Collection, error)
	ListCollections(ctx context.Context, accountID int64) ([]models.Collection, error)
	ListPingCollections(ctx context.Context, accountID int64) ([]models.Collection, error)
	UpsertCollection(ctx context.Context, collection models.Collection) error
	DeleteCollection(ctx context.Context, accountID int64, serverID string) error
	UpdateSyncKey(ctx context.Context, id int64, syncKey string) error
	ResetSyncKeys(ctx context.Context, accountID int64) error
}

// PendingChangeRepository queues local mutations awaiting upsync.
type PendingChangeRepository interface {
	Add(ctx context.Context, change models.PendingChange) error
	ListForCollection(ctx context.Context, collectionID int64) ([]models.PendingChange, error)
	Delete(ctx context.Context, collectionID int64, ids []int64) error
}
