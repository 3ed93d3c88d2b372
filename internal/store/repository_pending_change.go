package store

import (
	"context"
	"fmt"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/models"
)

// pendingChangeRepository is the SQLite-backed implementation of
// [PendingChangeRepository].
type pendingChangeRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewPendingChangeRepository constructs a [PendingChangeRepository] backed
// by the provided database connection and logger.
func NewPendingChangeRepository(db *DB, logger *logger.Logger) PendingChangeRepository {
	logger.Debug().Msg("creating pending change repository")
	return &pendingChangeRepository{
		db:     db,
		logger: logger,
	}
}

// Add queues one local mutation for upsync on the next non-initial sync of
// its collection.
func (r *pendingChangeRepository) Add(ctx context.Context, change models.PendingChange) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, addPendingChange,
		change.CollectionID,
		change.ServerID,
		change.Kind,
		change.Read,
	)
	if err != nil {
		log.Err(err).Str("func", "*pendingChangeRepository.Add").Msg("error: inserting pending change")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// ListForCollection returns the queued changes of a collection, oldest
// first.
func (r *pendingChangeRepository) ListForCollection(ctx context.Context, collectionID int64) ([]models.PendingChange, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listPendingChanges, collectionID)
	if err != nil {
		log.Err(err).Str("func", "*pendingChangeRepository.ListForCollection").Msg("error: querying pending changes")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var changes []models.PendingChange
	for rows.Next() {
		var change models.PendingChange
		if err = rows.Scan(&change.ID, &change.CollectionID, &change.ServerID, &change.Kind, &change.Read); err != nil {
			log.Err(err).Str("func", "*pendingChangeRepository.ListForCollection").Msg("error: scanning pending change")
			return nil, err
		}
		changes = append(changes, change)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return changes, nil
}

// Delete removes acknowledged changes by id. Called only after the server
// acknowledged the sync cycle that carried them.
func (r *pendingChangeRepository) Delete(ctx context.Context, collectionID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	query, args, err := buildDeletePendingChangesQuery(collectionID, ids)
	if err != nil {
		return fmt.Errorf("building pending change delete: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*pendingChangeRepository.Delete").Msg("error: deleting pending changes")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}
