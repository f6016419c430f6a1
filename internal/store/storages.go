package store

import (
	"context"
	"fmt"

	"github.com/eunio-health/eunio-sync/internal/config"
	"github.com/eunio-health/eunio-sync/internal/logger"
)

// Storages groups all server-side repositories into a single value that can
// be passed around the service layer.
type Storages struct {
	// Entities is the Postgres-backed per-user document store.
	Entities RemoteEntityRepository

	// Users is the account store.
	Users UserRepository
}

// NewStorages initialises the server storage layer: connects to Postgres,
// runs pending schema migrations, and wires the repositories to one shared
// connection pool.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.MigrateServer(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Entities: NewRemoteEntityRepository(db, logger),
		Users:    NewUserRepository(db, logger),
	}, nil
}
