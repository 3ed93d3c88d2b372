package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rkataev/go-eas-sync/internal/logger"
	"github.com/rkataev/go-eas-sync/migrations"
)

// DB wraps the sync-state SQLite handle.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewDB opens (creating if necessary) the SQLite database at dsn and
// enables foreign-key enforcement. An empty dsn selects an in-memory
// database.
func NewDB(dsn string, log *logger.Logger) (*DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	log.Debug().Str("dsn", dsn).Msg("opened sync-state database")
	return &DB{DB: sqlDB, logger: log}, nil
}

// Migrate brings the schema up to date.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
