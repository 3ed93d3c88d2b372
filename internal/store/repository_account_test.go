package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/models"
)

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &accountRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func accountRows(account models.Account) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{
			"id", "email_address", "device_id", "protocol_version", "sync_key",
			"policy_key", "security_hold", "address", "port", "username",
			"password", "use_ssl", "trust_all", "created_at",
		}).
		AddRow(
			account.ID, account.EmailAddress, account.DeviceID,
			account.ProtocolVersion, account.SyncKey, account.PolicyKey,
			account.SecurityHold, account.HostAuth.Address,
			account.HostAuth.Port, account.HostAuth.Username,
			account.HostAuth.Password, account.HostAuth.UseSSL,
			account.HostAuth.TrustAll, account.CreatedAt,
		)
}

func sampleAccount() models.Account {
	return models.Account{
		ID:              7,
		EmailAddress:    "user@example.com",
		DeviceID:        "device123",
		ProtocolVersion: models.VersionExchange2010S,
		SyncKey:         "1234",
		PolicyKey:       "8899",
		HostAuth: models.HostAuth{
			Address:  "eas.example.com",
			Port:     443,
			Username: "user@example.com",
			Password: "secret",
			UseSSL:   true,
		},
		CreatedAt: time.Now(),
	}
}

func TestCreateAccount_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	account := sampleAccount()
	account.ID = 0

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, now)

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(
			account.EmailAddress, account.DeviceID, account.ProtocolVersion,
			account.SyncKey, account.PolicyKey, account.SecurityHold,
			account.HostAuth.Address, account.HostAuth.Port,
			account.HostAuth.Username, account.HostAuth.Password,
			account.HostAuth.UseSSL, account.HostAuth.TrustAll,
		).
		WillReturnRows(rows)

	created, err := repo.CreateAccount(context.Background(), account)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("expected ID=7, got %d", created.ID)
	}
}

func TestCreateAccount_Duplicate(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint})

	_, err := repo.CreateAccount(context.Background(), sampleAccount())
	if !errors.Is(err, ErrAccountAlreadyExists) {
		t.Fatalf("expected ErrAccountAlreadyExists, got %v", err)
	}
}

func TestGetAccount_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	account := sampleAccount()
	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(account.ID).
		WillReturnRows(accountRows(account))

	found, err := repo.GetAccount(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.EmailAddress != account.EmailAddress {
		t.Errorf("expected email %s, got %s", account.EmailAddress, found.EmailAddress)
	}
	if found.HostAuth.Address != account.HostAuth.Address {
		t.Errorf("expected address %s, got %s", account.HostAuth.Address, found.HostAuth.Address)
	}
}

func TestGetAccount_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetAccount(context.Background(), 404)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestGetAccount_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM accounts").
		WillReturnError(errors.New("db network error"))

	_, err := repo.GetAccount(context.Background(), 1)
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestListAccounts(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	first := sampleAccount()
	second := sampleAccount()
	second.ID = 8
	second.EmailAddress = "other@example.com"

	rows := accountRows(first).
		AddRow(
			second.ID, second.EmailAddress, second.DeviceID,
			second.ProtocolVersion, second.SyncKey, second.PolicyKey,
			second.SecurityHold, second.HostAuth.Address,
			second.HostAuth.Port, second.HostAuth.Username,
			second.HostAuth.Password, second.HostAuth.UseSSL,
			second.HostAuth.TrustAll, second.CreatedAt,
		)

	mock.ExpectQuery("SELECT (.+) FROM accounts").WillReturnRows(rows)

	accounts, err := repo.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[1].EmailAddress != "other@example.com" {
		t.Errorf("unexpected second account: %+v", accounts[1])
	}
}

func TestUpdateSyncKey_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts SET sync_key").
		WithArgs("42", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateSyncKey(context.Background(), 7, "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateSyncKey_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts SET sync_key").
		WithArgs("42", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateSyncKey(context.Background(), 404, "42")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUpdateSecurityHold(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts SET security_hold").
		WithArgs(true, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateSecurityHold(context.Background(), 7, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
