package models

import (
	"encoding/json"
	"time"
)

// ConflictRecord is materialized when the conflict resolver cannot merge a
// local and a remote version automatically. It preserves both payloads in
// full so neither side's data is lost while the conflict awaits resolution.
type ConflictRecord struct {
	// ID is the database identifier, assigned on insert.
	ID int64 `json:"id"`

	// EntityID is the entity both versions belong to.
	EntityID string `json:"entity_id"`

	// Type is the conflicted entity's kind.
	Type EntityType `json:"entity_type"`

	// LocalPayload is the local version's payload at detection time.
	LocalPayload json.RawMessage `json:"local_payload"`

	// RemotePayload is the remote version's payload at detection time.
	RemotePayload json.RawMessage `json:"remote_payload"`

	// LocalUpdatedAt and RemoteUpdatedAt are the competing edit timestamps.
	LocalUpdatedAt  time.Time `json:"local_updated_at"`
	RemoteUpdatedAt time.Time `json:"remote_updated_at"`

	// DetectedAt is when the resolver flagged the conflict.
	DetectedAt time.Time `json:"detected_at"`

	// Resolution is nil while the conflict is open. Once resolved (by the
	// resolver's policy or an explicit user choice) it records which side
	// won or how the record was merged, and the row is removed.
	Resolution *string `json:"resolution,omitempty"`
}
