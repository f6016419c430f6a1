package store

import (
	"context"
	"time"

	"github.com/eunio-health/eunio-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// EntityRepository is the local store of syncable entities. It is the
// app's write target outside of sync and the coordinator's write target
// during the Advancing phase.
type EntityRepository interface {
	// GetEntity returns a single entity or ErrEntityNotFound.
	GetEntity(ctx context.Context, userID int64, id string) (models.SyncableEntity, error)

	// SaveEntities upserts the given entities as-is, including their
	// SyncState. Used by the app's write path and by tests.
	SaveEntities(ctx context.Context, userID int64, entities ...models.SyncableEntity) error

	// MarkClean records a confirmed push: sets sync_state to clean and
	// stores remoteUpdatedAt, but only if no journal entry remains for the
	// entity other than the confirmed change ids, which are about to be
	// acknowledged. An entity edited again while its older change was in
	// flight stays pending.
	MarkClean(ctx context.Context, userID int64, entityID string, remoteUpdatedAt time.Time, confirmed []int64) error

	// ApplyMerge is the Advancing phase's transactional multi-write: merged
	// entities, new conflict records, and journal entries for resolutions
	// that must be re-pushed all commit atomically or not at all.
	ApplyMerge(ctx context.Context, userID int64, entities []models.SyncableEntity, conflicts []models.ConflictRecord, rePush []models.ChangeRecord) error
}

// JournalRepository is the durable log of pending local mutations.
// Append-only from the app's perspective, drain-only from the sync
// coordinator's perspective; both may run concurrently.
type JournalRepository interface {
	// Append durably records one local mutation and returns its change id.
	// Never blocks on the network.
	Append(ctx context.Context, userID int64, rec models.ChangeRecord) (int64, error)

	// PendingSince returns all pending records for the entity type, ordered
	// by occurred_at ascending with ties broken by insertion order.
	// Reading does not mutate the journal.
	PendingSince(ctx context.Context, userID int64, entityType models.EntityType) ([]models.ChangeRecord, error)

	// Acknowledge removes exactly the given records. Partial acknowledgment
	// is legal: callers acknowledge only what the remote store confirmed.
	Acknowledge(ctx context.Context, userID int64, changeIDs []int64) error
}

// CursorRepository stores the per-entity-type watermark of the last
// successfully synced remote timestamp.
type CursorRepository interface {
	// GetCursor returns the watermark, or the zero time if the entity type
	// has never synced.
	GetCursor(ctx context.Context, userID int64, entityType models.EntityType) (time.Time, error)

	// Advance moves the watermark forward. Moving it backwards returns
	// ErrCursorRegression and never mutates state.
	Advance(ctx context.Context, userID int64, entityType models.EntityType, ts time.Time) error
}

// ConflictRepository stores materialized conflicts awaiting resolution.
type ConflictRepository interface {
	SaveConflict(ctx context.Context, userID int64, c models.ConflictRecord) error
	ListOpenConflicts(ctx context.Context, userID int64) ([]models.ConflictRecord, error)

	// ResolveConflict removes the record, keeping the chosen resolution in
	// the log only. Conflict rows exist only while unresolved.
	ResolveConflict(ctx context.Context, userID int64, id int64, resolution string) error
}
