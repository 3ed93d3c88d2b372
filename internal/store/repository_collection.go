// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Roman Kataev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/models"
)

// collectionRepository is the SQLite-backed implementation of
// [CollectionRepository].
type collectionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCollectionRepository constructs a [CollectionRepository] backed by the
// provided database connection and logger.
func NewCollectionRepository(db *DB, logger *logger.Logger) CollectionRepository {
	logger.Debug().Msg("creating collection repository")
	return &collectionRepository{
		db:     db,
		logger: logger,
	}
}

// GetCollection retrieves one collection by its internal id.
func (r *collectionRepository) GetCollection(ctx context.Context, id int64) (models.Collection, error) {
	row := r.db.QueryRowContext(ctx, getCollection, id)
	return r.scanOne(ctx, row)
}

// GetCollectionByServerID retrieves one collection by its server-assigned
// folder id within an account.
func (r *collectionRepository) GetCollectionByServerID(ctx context.Context, accountID int64, serverID string) (models.Collection, error) {
	row := r.db.QueryRowContext(ctx, getCollectionByServerID, accountID, serverID)
	return r.scanOne(ctx, row)
}

func (r *collectionRepository) scanOne(ctx context.Context, row *sql.Row) (models.Collection, error) {
	log := logger.FromContext(ctx)

	var collection models.Collection
	err := scanCollection(row.Scan, &collection)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Collection{}, ErrCollectionNotFound
		}
		log.Err(err).Str("func", "*collectionRepository.scanOne").Msg("error: scanning collection")
		return models.Collection{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return collection, nil
}

// ListCollections returns every collection of the account.
func (r *collectionRepository) ListCollections(ctx context.Context, accountID int64) ([]models.Collection, error) {
	return r.list(ctx, accountID, false)
}

// ListPingCollections returns the collections eligible for aggregated Ping
// requests, i.e. those enabled for background sync.
func (r *collectionRepository) ListPingCollections(ctx context.Context, accountID int64) ([]models.Collection, error) {
	return r.list(ctx, accountID, true)
}

func (r *collectionRepository) list(ctx context.Context, accountID int64, pingOnly bool) ([]models.Collection, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCollectionsQuery(accountID, pingOnly)
	if err != nil {
		return nil, fmt.Errorf("building collection query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*collectionRepository.list").Msg("error: querying collections")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		var collection models.Collection
		if err = scanCollection(rows.Scan, &collection); err != nil {
			log.Err(err).Str("func", "*collectionRepository.list").Msg("error: scanning collection")
			return nil, err
		}
		collections = append(collections, collection)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return collections, nil
}

// UpsertCollection inserts a folder reported by the hierarchy sync, or
// refreshes its display name and type if it already exists. The sync key
// of an existing row is never touched here.
func (r *collectionRepository) UpsertCollection(ctx context.Context, collection models.Collection) error {
	log := logger.FromContext(ctx)

	syncKey := collection.SyncKey
	if syncKey == "" {
		syncKey = models.SyncKeyInitial
	}

	_, err := r.db.ExecContext(ctx, upsertCollection,
		collection.AccountID,
		collection.ServerID,
		collection.DisplayName,
		collection.Type,
		syncKey,
		collection.SyncEnabled,
		collection.Lookback,
	)
	if err != nil {
		log.Err(err).Str("func", "*collectionRepository.UpsertCollection").Msg("error: upserting collection")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// DeleteCollection removes a folder deleted on the server, together with
// its queued pending changes.
func (r *collectionRepository) DeleteCollection(ctx context.Context, accountID int64, serverID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteCollection, accountID, serverID); err != nil {
		log.Err(err).Str("func", "*collectionRepository.DeleteCollection").Msg("error: deleting collection")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// UpdateSyncKey replaces the per-collection sync key. Called only with a
// key taken from a successful, fully parsed server response.
func (r *collectionRepository) UpdateSyncKey(ctx context.Context, id int64, syncKey string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateCollectionSyncKey, syncKey, id)
	if err != nil {
		log.Err(err).Str("func", "*collectionRepository.UpdateSyncKey").Msg("error: updating sync key")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrCollectionNotFound
	}

	return nil
}

// ResetSyncKeys resets every collection of the account to the initial sync
// key, forcing full re-syncs after the server invalidated the hierarchy.
func (r *collectionRepository) ResetSyncKeys(ctx context.Context, accountID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, resetCollectionSyncKeys, accountID); err != nil {
		log.Err(err).Str("func", "*collectionRepository.ResetSyncKeys").Msg("error: resetting sync keys")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func scanCollection(scan func(...any) error, collection *models.Collection) error {
	return scan(
		&collection.ID,
		&collection.AccountID,
		&collection.ServerID,
		&collection.DisplayName,
		&collection.Type,
		&collection.SyncKey,
		&collection.SyncEnabled,
		&collection.Lookback,
	)
}
