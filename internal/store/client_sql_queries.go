// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eunio Health

package store

const (
	upsertEntity = `
		INSERT INTO entities (
			id,
			user_id,
			entity_type,
			payload,
			local_updated_at,
			remote_updated_at,
			device_id,
			sync_state
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, id) DO UPDATE SET
			entity_type       = excluded.entity_type,
			payload           = excluded.payload,
			local_updated_at  = excluded.local_updated_at,
			remote_updated_at = excluded.remote_updated_at,
			device_id         = excluded.device_id,
			sync_state        = excluded.sync_state;`

	getEntity = `
		SELECT
			id,
			user_id,
			entity_type,
			payload,
			local_updated_at,
			remote_updated_at,
			device_id,
			sync_state
		FROM entities
		WHERE user_id = $1 AND id = $2;`

	appendChange = `
		INSERT INTO change_journal (
			user_id,
			entity_id,
			entity_type,
			operation,
			occurred_at,
			device_id
		) VALUES ($1, $2, $3, $4, $5, $6);`

	pendingChanges = `
		SELECT
			change_id,
			entity_id,
			entity_type,
			operation,
			occurred_at,
			device_id
		FROM change_journal
		WHERE user_id = $1 AND entity_type = $2
		ORDER BY occurred_at ASC, change_id ASC;`

	getCursor = `
		SELECT last_synced_at
		FROM sync_cursors
		WHERE user_id = $1 AND entity_type = $2;`

	// Advancing relies on the upsert's WHERE clause: an older timestamp
	// matches no row, RowsAffected reports 0, and the caller surfaces the
	// invariant violation.
	advanceCursor = `
		INSERT INTO sync_cursors (user_id, entity_type, last_synced_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, entity_type) DO UPDATE SET
			last_synced_at = excluded.last_synced_at
		WHERE excluded.last_synced_at >= sync_cursors.last_synced_at;`

	insertConflict = `
		INSERT INTO conflict_records (
			user_id,
			entity_id,
			entity_type,
			local_payload,
			remote_payload,
			local_updated_at,
			remote_updated_at,
			detected_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	listOpenConflicts = `
		SELECT
			id,
			entity_id,
			entity_type,
			local_payload,
			remote_payload,
			local_updated_at,
			remote_updated_at,
			detected_at
		FROM conflict_records
		WHERE user_id = $1 AND resolution IS NULL
		ORDER BY detected_at ASC, id ASC;`

	deleteConflict = `
		DELETE FROM conflict_records
		WHERE user_id = $1 AND id = $2;`
)
