package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rkataev/go-eas-sync/internal/adapter"
	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/internal/store"
	"github.com/rkataev/go-eas-sync/internal/wbxml"
	"github.com/rkataev/go-eas-sync/models"
)

// EAS folder type codes reported by FolderSync ([MS-ASCMD] FolderType).
const (
	folderTypeUserGeneric  = 1
	folderTypeInbox        = 2
	folderTypeDrafts       = 3
	folderTypeDeleted      = 4
	folderTypeSent         = 5
	folderTypeOutbox       = 6
	folderTypeCalendar     = 8
	folderTypeContacts     = 9
	folderTypeUserMail     = 12
	folderTypeUserCalendar = 13
	folderTypeUserContacts = 14
)

// folderSyncStatusInvalidKey means the server discarded the hierarchy
// state; the client must restart from the initial key and re-sync every
// collection.
const folderSyncStatusInvalidKey = 9

// FolderSyncService maintains the account's folder hierarchy: it issues
// the FolderSync command, applies reported adds, updates and deletes to
// the collection table, and advances the account-level sync key.
type FolderSyncService struct {
	accounts       store.AccountRepository
	collections    store.CollectionRepository
	requestTimeout time.Duration
	log            *logger.Logger
}

// NewFolderSyncService constructs the hierarchy sync service.
func NewFolderSyncService(accounts store.AccountRepository, collections store.CollectionRepository, requestTimeout time.Duration, log *logger.Logger) *FolderSyncService {
	return &FolderSyncService{
		accounts:       accounts,
		collections:    collections,
		requestTimeout: requestTimeout,
		log:            log,
	}
}

// folderChange is one hierarchy delta entry.
type folderChange struct {
	add      bool
	delete   bool
	serverID string
	name     string
	easType  int
}

// FolderSync runs one hierarchy sync for the account. When the server
// reports the stored hierarchy key invalid, all local sync state is reset
// and the hierarchy is refetched once from scratch.
func (s *FolderSyncService) FolderSync(ctx context.Context, conn adapter.Connection, account models.Account) error {
	log := s.log.WithAccount(account.ID)

	key := account.SyncKey
	if key == "" {
		key = models.SyncKeyInitial
	}

	for attempt := 0; attempt < 2; attempt++ {
		newKey, changes, err := s.roundTrip(ctx, conn, key)
		if err != nil {
			var invalid *invalidHierarchyKeyError
			if errors.As(err, &invalid) && attempt == 0 {
				log.Warn().Msg("server invalidated the folder hierarchy; resetting sync state")
				if err := s.collections.ResetSyncKeys(ctx, account.ID); err != nil {
					return err
				}
				if err := s.accounts.UpdateSyncKey(ctx, account.ID, models.SyncKeyInitial); err != nil {
					return err
				}
				key = models.SyncKeyInitial
				continue
			}
			return err
		}

		if err := s.apply(ctx, account.ID, changes, log); err != nil {
			return err
		}
		if newKey != "" && newKey != key {
			if err := s.accounts.UpdateSyncKey(ctx, account.ID, newKey); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: hierarchy key rejected twice", ErrMalformedResponse)
}

type invalidHierarchyKeyError struct{}

func (*invalidHierarchyKeyError) Error() string { return "invalid folder hierarchy sync key" }

func (s *FolderSyncService) roundTrip(ctx context.Context, conn adapter.Connection, key string) (string, []folderChange, error) {
	e := wbxml.NewEncoder()
	e.Start(wbxml.FolderSync).Data(wbxml.FolderSyncKey, key).End()
	body, err := e.Bytes()
	if err != nil {
		return "", nil, err
	}

	envelope, err := conn.SendCommand(ctx, "FolderSync", body, s.requestTimeout)
	if err != nil {
		return "", nil, err
	}
	defer envelope.Close()

	switch envelope.Classify() {
	case adapter.StatusOK:
	case adapter.StatusAuthError:
		return "", nil, fmt.Errorf("folder sync: %w", adapter.ErrNetwork)
	default:
		return "", nil, fmt.Errorf("%w: folder sync answered HTTP %d", ErrMalformedResponse, envelope.StatusCode())
	}

	reader, err := envelope.Body()
	if err != nil {
		return "", nil, err
	}
	return parseFolderSyncResponse(reader)
}

func parseFolderSyncResponse(body io.Reader) (string, []folderChange, error) {
	d := wbxml.NewDecoder(body)
	root, ok, err := d.NextTag(-1)
	if err != nil {
		return "", nil, err
	}
	if !ok || root != wbxml.FolderSync {
		return "", nil, fmt.Errorf("%w: expected FolderSync root, got %s", ErrMalformedResponse, root)
	}

	var (
		newKey  string
		changes []folderChange
		current *folderChange
	)

	for {
		t, ok, err := d.NextTag(wbxml.FolderSync)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if !ok {
			return newKey, changes, nil
		}

		switch t {
		case wbxml.FolderStatus:
			status, err := d.ValueInt()
			if err != nil {
				return "", nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			if status == folderSyncStatusInvalidKey {
				return "", nil, &invalidHierarchyKeyError{}
			}
			if status != 1 {
				return "", nil, fmt.Errorf("%w: folder sync status %d", ErrMalformedResponse, status)
			}
		case wbxml.FolderSyncKey:
			newKey, err = d.Value()
			if err != nil {
				return "", nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
		case wbxml.FolderAdd, wbxml.FolderUpdate:
			changes = append(changes, folderChange{add: true})
			current = &changes[len(changes)-1]
		case wbxml.FolderDelete:
			changes = append(changes, folderChange{delete: true})
			current = &changes[len(changes)-1]
		case wbxml.FolderServerID:
			v, err := d.Value()
			if err != nil {
				return "", nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			if current != nil {
				current.serverID = v
			}
		case wbxml.FolderDisplayName:
			v, err := d.Value()
			if err != nil {
				return "", nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			if current != nil {
				current.name = v
			}
		case wbxml.FolderType:
			v, err := d.ValueInt()
			if err != nil {
				return "", nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			if current != nil {
				current.easType = v
			}
		}
	}
}

// apply writes one batch of hierarchy deltas to the collection table.
// Folder types outside the three synchronizable classes are ignored.
func (s *FolderSyncService) apply(ctx context.Context, accountID int64, changes []folderChange, log *logger.Logger) error {
	for _, change := range changes {
		if change.delete {
			if err := s.collections.DeleteCollection(ctx, accountID, change.serverID); err != nil {
				return err
			}
			continue
		}

		collectionType, syncEnabled, ok := mapFolderType(change.easType)
		if !ok {
			log.Debug().Int("eas_type", change.easType).Str("server_id", change.serverID).Msg("ignoring unsupported folder type")
			continue
		}

		err := s.collections.UpsertCollection(ctx, models.Collection{
			AccountID:   accountID,
			ServerID:    change.serverID,
			DisplayName: change.name,
			Type:        collectionType,
			SyncKey:     models.SyncKeyInitial,
			SyncEnabled: syncEnabled,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// mapFolderType maps an EAS folder type onto the handler class, reporting
// whether background sync is enabled by default: primary folders are, user
// created ones start disabled.
func mapFolderType(easType int) (models.CollectionType, bool, bool) {
	switch easType {
	case folderTypeInbox:
		return models.Mail, true, true
	case folderTypeUserGeneric, folderTypeUserMail:
		return models.Mail, false, true
	case folderTypeCalendar:
		return models.Calendar, true, true
	case folderTypeUserCalendar:
		return models.Calendar, false, true
	case folderTypeContacts:
		return models.Contacts, true, true
	case folderTypeUserContacts:
		return models.Contacts, false, true
	default:
		return 0, false, false
	}
}
