package models

import "time"

// ChangeOp is the kind of local mutation recorded in the change journal.
type ChangeOp string

const (
	OpCreate ChangeOp = "create"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// ChangeRecord is one entry in the change journal: a single pending local
// mutation awaiting confirmation from the remote store.
//
// Records are created on every local write and removed only after the remote
// store confirms persistence. A push batch acknowledges records
// individually, so partial acknowledgment after a partially rejected batch
// is legal.
type ChangeRecord struct {
	// ChangeID is the journal's own monotonically increasing identifier,
	// assigned on append. It is what Acknowledge operates on.
	ChangeID int64 `json:"change_id"`

	// EntityID is the identifier of the mutated entity.
	EntityID string `json:"entity_id"`

	// Type is the mutated entity's kind.
	Type EntityType `json:"entity_type"`

	// Operation is what happened locally: create, update, or delete.
	Operation ChangeOp `json:"operation"`

	// OccurredAt is when the mutation happened on this device. Pending
	// records are drained in OccurredAt order (ties broken by ChangeID) to
	// preserve causal ordering of edits to the same entity.
	OccurredAt time.Time `json:"occurred_at"`

	// DeviceID identifies the device that made the mutation.
	DeviceID string `json:"device_id"`
}
