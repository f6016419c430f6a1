package models

import (
	"encoding/json"
	"time"
)

// EntityType identifies the kind of health record an entity carries.
// The sync engine treats payloads as opaque; the type is used only for
// routing, cursor bookkeeping, and merge policy lookups.
type EntityType string

const (
	EntityUser     EntityType = "user"
	EntityCycle    EntityType = "cycle"
	EntityDailyLog EntityType = "daily_log"
	EntityInsight  EntityType = "insight"
	EntitySettings EntityType = "settings"
)

// EntityTypes lists every syncable entity type in the order sync cycles
// process them. The order is stable so that cursor advancement and push
// batching are deterministic across runs.
var EntityTypes = []EntityType{
	EntityUser,
	EntityCycle,
	EntityDailyLog,
	EntityInsight,
	EntitySettings,
}

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityUser, EntityCycle, EntityDailyLog, EntityInsight, EntitySettings:
		return true
	}
	return false
}

// SyncState describes where a locally stored entity stands relative to the
// remote store.
type SyncState string

const (
	// StateClean means local and remote copies agree: LocalUpdatedAt is not
	// newer than RemoteUpdatedAt and no journal entry exists for the entity.
	StateClean SyncState = "clean"

	// StatePendingPush means the entity has local edits that have not yet
	// been confirmed by the remote store.
	StatePendingPush SyncState = "pending_push"

	// StatePendingConflict means both sides changed since the last sync and
	// the conflict resolver could not merge automatically; a ConflictRecord
	// exists for the entity.
	StatePendingConflict SyncState = "pending_conflict"

	// StateDeleted marks a tombstone: the entity was deleted locally and the
	// deletion still has to propagate (or has propagated) to the remote store.
	StateDeleted SyncState = "deleted"
)

// SyncableEntity is a versioned local record managed by the sync engine.
// Payload is an opaque serialized blob; the engine never interprets it except
// inside the conflict resolver's optional field-level merge.
type SyncableEntity struct {
	// ID is the globally unique identifier of the record, assigned by the
	// device that created it.
	ID string `json:"id"`

	// UserID is the owner of the record.
	UserID int64 `json:"user_id"`

	// Type is the entity kind; drives per-type cursors and merge policy.
	Type EntityType `json:"type"`

	// Payload is the serialized record content. Stored and transmitted as-is.
	Payload json.RawMessage `json:"payload"`

	// LocalUpdatedAt is the wall-clock time of the last local edit.
	LocalUpdatedAt time.Time `json:"local_updated_at"`

	// RemoteUpdatedAt is the remote store's timestamp for the copy this
	// device last saw. Nil until the entity has synced at least once.
	RemoteUpdatedAt *time.Time `json:"remote_updated_at,omitempty"`

	// DeviceID identifies the device that produced the last local edit.
	// Used as the deterministic tie-break in last-write-wins resolution.
	DeviceID string `json:"device_id"`

	// SyncState is mutated only by the sync coordinator.
	SyncState SyncState `json:"sync_state"`
}

// Deleted reports whether the entity is a tombstone.
func (e SyncableEntity) Deleted() bool {
	return e.SyncState == StateDeleted
}

// RemoteEntity is the remote store's representation of a record, as returned
// by pull queries.
type RemoteEntity struct {
	ID      string          `json:"id"`
	Type    EntityType      `json:"type"`
	Payload json.RawMessage `json:"payload"`

	// RemoteUpdatedAt is the edit timestamp assigned by the device that
	// wrote the version. The resolver's last-write-wins comparisons run on
	// this axis.
	RemoteUpdatedAt time.Time `json:"remote_updated_at"`

	// ServerUpdatedAt is assigned by the server at commit time and is the
	// axis pull pagination and sync cursors move along. A device-assigned
	// timestamp cannot serve here: an offline edit stamped in the past
	// would land behind every other device's cursor and never be pulled.
	ServerUpdatedAt time.Time `json:"server_updated_at"`

	DeviceID string `json:"device_id"`
	Deleted  bool   `json:"deleted"`
}
