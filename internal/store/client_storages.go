package store

import (
	"context"
	"fmt"

	"github.com/eunio-health/eunio-sync/internal/config"
	"github.com/eunio-health/eunio-sync/internal/logger"
)

// ClientStorages groups all client-side repositories into a single value
// that can be passed around the service layer: the entity store, the change
// journal, per-type sync cursors, and conflict records.
type ClientStorages struct {
	// Entities is the SQLite-backed local store of syncable health records.
	Entities EntityRepository

	// Journal is the durable log of pending local mutations.
	Journal JournalRepository

	// Cursors holds the per-entity-type pull watermarks.
	Cursors CursorRepository

	// Conflicts holds materialized conflicts awaiting resolution.
	Conflicts ConflictRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.MigrateClient].
//  3. Constructs and returns a [ClientStorages] value wired to fresh
//     repositories sharing one connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClient(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Entities:  NewEntityRepository(db, logger),
		Journal:   NewJournalRepository(db, logger),
		Cursors:   NewCursorRepository(db, logger),
		Conflicts: NewConflictRepository(db, logger),
	}, nil
}
