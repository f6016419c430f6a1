package models

import "time"

// SyncCursor is the per-entity-type watermark of the last successfully
// synced remote timestamp. A zero LastSyncedAt means the type has never
// completed a pull.
//
// The cursor is monotonically non-decreasing and is advanced only by the
// sync coordinator at the end of a successful pull, to the maximum
// RemoteUpdatedAt actually observed and applied in that pull.
type SyncCursor struct {
	Type         EntityType `json:"entity_type"`
	LastSyncedAt time.Time  `json:"last_synced_at"`
}
