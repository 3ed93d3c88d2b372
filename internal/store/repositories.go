package store

import "github.com/rkataev/go-eas-sync/internal/logger"

// Repositories bundles the sync-state repositories handed to the service
// layer.
type Repositories struct {
	Accounts       AccountRepository
	Collections    CollectionRepository
	PendingChanges PendingChangeRepository
}

// NewRepositories constructs every repository over one shared database
// handle.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		Accounts:       NewAccountRepository(db, logger),
		Collections:    NewCollectionRepository(db, logger),
		PendingChanges: NewPendingChangeRepository(db, logger),
	}
}
