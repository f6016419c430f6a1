// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eunio Health

package store

const (
	// Last-write-wins guard on the device edit timestamp: a push carrying
	// an older updated_at than the stored row leaves the row untouched. The
	// record is still reported committed; the client will pull the newer
	// copy and resolve. server_updated_at is stamped with the commit time
	// so the write is visible past every device's cursor regardless of how
	// old the edit itself is.
	upsertRemoteEntity = `
		INSERT INTO entities (
			user_id,
			id,
			entity_type,
			payload,
			updated_at,
			server_updated_at,
			device_id,
			deleted
		) VALUES ($1, $2, $3, $4, $5, now(), $6, $7)
		ON CONFLICT (user_id, id) DO UPDATE SET
			entity_type       = EXCLUDED.entity_type,
			payload           = EXCLUDED.payload,
			updated_at        = EXCLUDED.updated_at,
			server_updated_at = now(),
			device_id         = EXCLUDED.device_id,
			deleted           = EXCLUDED.deleted
		WHERE entities.updated_at <= EXCLUDED.updated_at;`

	createUser = `
		INSERT INTO users (login, password_hash)
		VALUES ($1, $2)
		RETURNING user_id, login, password_hash, created_at;`

	getUserByLogin = `
		SELECT user_id, login, password_hash, created_at
		FROM users
		WHERE login = $1;`
)
