package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/models"
)

// accountRepository is the SQLite-backed implementation of
// [AccountRepository]. All methods obtain a context-scoped logger via
// [logger.FromContext] for structured tracing of database interactions.
type accountRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount persists a new account record and returns it with the
// server-assigned ID and CreatedAt.
//
// A unique-constraint violation on the email address maps to
// [ErrAccountAlreadyExists].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createAccount,
		account.EmailAddress,
		account.DeviceID,
		account.ProtocolVersion,
		account.SyncKey,
		account.PolicyKey,
		account.SecurityHold,
		account.HostAuth.Address,
		account.HostAuth.Port,
		account.HostAuth.Username,
		account.HostAuth.Password,
		account.HostAuth.UseSSL,
		account.HostAuth.TrustAll,
	)

	if err := row.Scan(&account.ID, &account.CreatedAt); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: inserting account")

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return models.Account{}, ErrAccountAlreadyExists
		}
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return account, nil
}

// GetAccount retrieves one account by its internal id.
func (r *accountRepository) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	return r.getAccount(ctx, getAccount, id)
}

// GetAccountByEmail retrieves one account by its primary email address.
func (r *accountRepository) GetAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.getAccount(ctx, getAccountByEmail, email)
}

func (r *accountRepository) getAccount(ctx context.Context, query string, arg any) (models.Account, error) {
	log := logger.FromContext(ctx)

	var account models.Account
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := scanAccount(row.Scan, &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.getAccount").Msg("error: scanning account")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return account, nil
}

// ListAccounts returns every configured account, oldest first.
func (r *accountRepository) ListAccounts(ctx context.Context) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAccounts)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ListAccounts").Msg("error: querying accounts")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err = scanAccount(rows.Scan, &account); err != nil {
			log.Err(err).Str("func", "*accountRepository.ListAccounts").Msg("error: scanning account")
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return accounts, nil
}

// UpdateSyncKey replaces the account-level (folder hierarchy) sync key.
func (r *accountRepository) UpdateSyncKey(ctx context.Context, id int64, syncKey string) error {
	return r.exec(ctx, "UpdateSyncKey", updateAccountSyncKey, syncKey, id)
}

// UpdateProtocolVersion records the negotiated protocol version.
func (r *accountRepository) UpdateProtocolVersion(ctx context.Context, id int64, version string) error {
	return r.exec(ctx, "UpdateProtocolVersion", updateAccountProtocolVersion, version, id)
}

// UpdatePolicyKey records the policy key issued by a Provision exchange.
func (r *accountRepository) UpdatePolicyKey(ctx context.Context, id int64, policyKey string) error {
	return r.exec(ctx, "UpdatePolicyKey", updateAccountPolicyKey, policyKey, id)
}

// UpdateSecurityHold sets or clears the security hold flag.
func (r *accountRepository) UpdateSecurityHold(ctx context.Context, id int64, hold bool) error {
	return r.exec(ctx, "UpdateSecurityHold", updateAccountSecurityHold, hold, id)
}

// DeleteAccount removes the account and, through foreign keys, its
// collections and pending changes.
func (r *accountRepository) DeleteAccount(ctx context.Context, id int64) error {
	return r.exec(ctx, "DeleteAccount", deleteAccount, id)
}

func (r *accountRepository) exec(ctx context.Context, op, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository."+op).Msg("error: executing update")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// scanAccount reads one accountColumns row through the given scan
// function, shared between QueryRow and Rows iteration.
func scanAccount(scan func(...any) error, account *models.Account) error {
	return scan(
		&account.ID,
		&account.EmailAddress,
		&account.DeviceID,
		&account.ProtocolVersion,
		&account.SyncKey,
		&account.PolicyKey,
		&account.SecurityHold,
		&account.HostAuth.Address,
		&account.HostAuth.Port,
		&account.HostAuth.Username,
		&account.HostAuth.Password,
		&account.HostAuth.UseSSL,
		&account.HostAuth.TrustAll,
		&account.CreatedAt,
	)
}
