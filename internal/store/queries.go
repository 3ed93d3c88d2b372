// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Roman Kataev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	accountColumns = `id, email_address, device_id, protocol_version, sync_key, policy_key, security_hold,
		address, port, username, password, use_ssl, trust_all, created_at`

	createAccount = `
		INSERT INTO accounts (
			email_address,
			device_id,
			protocol_version,
			sync_key,
			policy_key,
			security_hold,
			address,
			port,
			username,
			password,
			use_ssl,
			trust_all
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at;`

	getAccount = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = ?;`

	getAccountByEmail = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE email_address = ?;`

	listAccounts = `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY id;`

	updateAccountSyncKey = `
		UPDATE accounts SET sync_key = ?
		WHERE id = ?;`

	updateAccountProtocolVersion = `
		UPDATE accounts SET protocol_version = ?
		WHERE id = ?;`

	updateAccountPolicyKey = `
		UPDATE accounts SET policy_key = ?
		WHERE id = ?;`

	updateAccountSecurityHold = `
		UPDATE accounts SET security_hold = ?
		WHERE id = ?;`

	deleteAccount = `
		DELETE FROM accounts
		WHERE id = ?;`

	collectionColumns = `id, account_id, server_id, display_name, type, sync_key, sync_enabled, lookback`

	getCollection = `
		SELECT ` + collectionColumns + `
		FROM collections
		WHERE id = ?;`

	getCollectionByServerID = `
		SELECT ` + collectionColumns + `
		FROM collections
		WHERE account_id = ? AND server_id = ?;`

	upsertCollection = `
		INSERT INTO collections (
			account_id,
			server_id,
			display_name,
			type,
			sync_key,
			sync_enabled,
			lookback
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id, server_id) DO UPDATE SET
			display_name = excluded.display_name,
			type         = excluded.type;`

	deleteCollection = `
		DELETE FROM collections
		WHERE account_id = ? AND server_id = ?;`

	updateCollectionSyncKey = `
		UPDATE collections SET sync_key = ?
		WHERE id = ?;`

	resetCollectionSyncKeys = `
		UPDATE collections SET sync_key = '0'
		WHERE account_id = ?;`

	addPendingChange = `
		INSERT INTO pending_changes (collection_id, server_id, kind, read)
		VALUES (?, ?, ?, ?);`

	listPendingChanges = `
		SELECT id, collection_id, server_id, kind, read
		FROM pending_changes
		WHERE collection_id = ?
		ORDER BY id;`
)

// buildListCollectionsQuery builds the collection listing for an account,
// optionally restricted to the ping-eligible subset.
func buildListCollectionsQuery(accountID int64, pingOnly bool) (string, []any, error) {
	builder := sq.
		Select("id", "account_id", "server_id", "display_name", "type", "sync_key", "sync_enabled", "lookback").
		From("collections").
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("id")

	if pingOnly {
		builder = builder.Where(sq.Eq{"sync_enabled": true})
	}

	return builder.ToSql()
}

// buildDeletePendingChangesQuery builds the acknowledgement delete for a
// set of pending change ids. squirrel expands the id slice into an IN
// clause.
func buildDeletePendingChangesQuery(collectionID int64, ids []int64) (string, []any, error) {
	return sq.
		Delete("pending_changes").
		Where(sq.Eq{"collection_id": collectionID}).
		Where(sq.Eq{"id": ids}).
		ToSql()
}
