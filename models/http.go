package models

import (
	"encoding/json"
	"time"
)

// PushItem is one change record on the wire, carrying the entity payload
// snapshot the remote store should upsert. Deletes carry a nil payload and
// are applied as tombstones.
type PushItem struct {
	ChangeID  int64           `json:"change_id"`
	EntityID  string          `json:"entity_id"`
	Type      EntityType      `json:"entity_type"`
	Operation ChangeOp        `json:"operation"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeviceID  string          `json:"device_id"`
}

// PushRequest is one atomic chunk of change records. The server writes the
// whole chunk in a single transaction or none of it, so re-sending a chunk
// after a transient failure is always safe (upserts are idempotent, keyed
// by entity id).
type PushRequest struct {
	Items  []PushItem `json:"items"`
	Length int        `json:"length"`
}

// PushStatus is the per-record outcome of a push chunk.
type PushStatus string

const (
	// PushCommitted: the record is durably written server-side.
	PushCommitted PushStatus = "committed"
	// PushRejected: the record is permanently refused (schema violation);
	// re-sending it unchanged will never succeed.
	PushRejected PushStatus = "rejected"
	// PushRetryable: a transient server-side condition; retrying the whole
	// chunk is safe.
	PushRetryable PushStatus = "retryable"
)

// PushResult reports the outcome for a single pushed record.
type PushResult struct {
	ChangeID int64      `json:"change_id"`
	EntityID string     `json:"entity_id"`
	Status   PushStatus `json:"status"`
	Reason   string     `json:"reason,omitempty"`
}

// PushResponse carries per-record outcomes for one pushed chunk.
type PushResponse struct {
	Results []PushResult `json:"results"`
	Length  int          `json:"length"`
}

// PullQuery names one page of the pull range: entities of Type committed
// strictly after the (Since, AfterID) keyset position on the server commit
// axis, at most Limit of them.
type PullQuery struct {
	Type    EntityType
	Since   time.Time
	AfterID string
	Limit   int
}

// PullResponse is one page of remote entities committed since the requested
// timestamp, ordered by (server_updated_at, id) ascending. HasMore tells the
// client to request the next page keyed by the last entity in Entities.
type PullResponse struct {
	Entities []RemoteEntity `json:"entities"`
	Length   int            `json:"length"`
	HasMore  bool           `json:"has_more"`
}
