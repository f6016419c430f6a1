// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eunio Health

package service

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/eunio-health/eunio-sync/models"
)

// fieldClockKey is the payload key holding per-field edit timestamps.
// Payloads that carry it on both sides are merged field by field; payloads
// without it fall back to whole-record last-write-wins.
const fieldClockKey = "fieldUpdatedAt"

// ConflictResolver decides, for each (local, remote) pair the pull phase
// produced, which version survives. It is pure: no storage, no network,
// deterministic for a given input. Two devices resolving the same pair reach
// the same verdict, which is what keeps multi-device state convergent.
type ConflictResolver struct {
	nonMergeable map[models.EntityType]bool
}

// NewConflictResolver builds a resolver. Entity types listed in nonMergeable
// never merge automatically: when both sides changed, a ConflictRecord is
// produced instead.
func NewConflictResolver(nonMergeable []string) *ConflictResolver {
	idx := make(map[models.EntityType]bool, len(nonMergeable))
	for _, t := range nonMergeable {
		idx[models.EntityType(t)] = true
	}
	return &ConflictResolver{nonMergeable: idx}
}

// Resolve produces the verdict for one entity.
//
// The decision ladder:
//  1. Local unchanged since its last-seen remote version: remote wins.
//  2. Remote not newer than the version local already saw: local wins.
//  3. Both changed. Non-mergeable types produce a ConflictRecord. Deletes
//     and payloads without field clocks go to whole-record last-write-wins
//     with the lexicographically greater device id breaking timestamp ties.
//     Payloads carrying field clocks on both sides merge field by field.
//
// Outcomes that change the local copy relative to what the remote store
// holds set RequiresPush so the coordinator journals a follow-up push.
func (r *ConflictResolver) Resolve(local models.SyncableEntity, remote models.RemoteEntity, now time.Time) models.Resolution {
	baseline := time.Time{}
	if local.RemoteUpdatedAt != nil {
		baseline = *local.RemoteUpdatedAt
	}

	localChanged := local.LocalUpdatedAt.After(baseline)
	remoteChanged := local.RemoteUpdatedAt == nil || remote.RemoteUpdatedAt.After(baseline)

	if !localChanged {
		return r.acceptRemote(local, remote)
	}
	if !remoteChanged {
		return models.Resolution{Outcome: models.ResolutionLocal, Entity: &local}
	}

	// Both sides changed since the last sync.
	if r.nonMergeable[local.Type] {
		return r.materializeConflict(local, remote, now)
	}

	if local.Deleted() || remote.Deleted {
		return r.lastWriteWins(local, remote)
	}

	if merged, ok := r.mergeFields(local, remote); ok {
		return merged
	}

	return r.lastWriteWins(local, remote)
}

// acceptRemote writes the remote version locally, verbatim.
func (r *ConflictResolver) acceptRemote(local models.SyncableEntity, remote models.RemoteEntity) models.Resolution {
	e := entityFromRemote(local.UserID, remote)
	return models.Resolution{Outcome: models.ResolutionRemote, Entity: &e}
}

// lastWriteWins keeps the side with the newer edit timestamp. Equal
// timestamps are broken by device id: the lexicographically greater id wins
// on every device, so the tie-break never diverges.
func (r *ConflictResolver) lastWriteWins(local models.SyncableEntity, remote models.RemoteEntity) models.Resolution {
	localWins := local.LocalUpdatedAt.After(remote.RemoteUpdatedAt)
	if local.LocalUpdatedAt.Equal(remote.RemoteUpdatedAt) {
		localWins = local.DeviceID > remote.DeviceID
	}

	if !localWins {
		return r.acceptRemote(local, remote)
	}

	// Local survives, but the remote store now holds the losing version.
	// Record the remote timestamp we resolved against and push again.
	winner := local
	winner.RemoteUpdatedAt = &remote.RemoteUpdatedAt
	winner.SyncState = models.StatePendingPush
	return models.Resolution{Outcome: models.ResolutionLocal, Entity: &winner, RequiresPush: true}
}

// mergeFields attempts a field-level merge. It succeeds only when both
// payloads are JSON objects carrying a field clock; otherwise ok is false
// and the caller falls back to last-write-wins.
func (r *ConflictResolver) mergeFields(local models.SyncableEntity, remote models.RemoteEntity) (models.Resolution, bool) {
	localFields, localClock, ok := decodeClockedPayload(local.Payload)
	if !ok {
		return models.Resolution{}, false
	}
	remoteFields, remoteClock, ok := decodeClockedPayload(remote.Payload)
	if !ok {
		return models.Resolution{}, false
	}

	merged := make(map[string]json.RawMessage, len(localFields)+len(remoteFields))
	mergedClock := make(map[string]time.Time, len(localClock)+len(remoteClock))
	for k, v := range remoteFields {
		merged[k] = v
		mergedClock[k] = remoteClock[k]
	}
	for k, v := range localFields {
		lt, rt := localClock[k], remoteClock[k]
		localWins := lt.After(rt)
		if lt.Equal(rt) {
			localWins = local.DeviceID > remote.DeviceID
		}
		if _, exists := merged[k]; !exists || localWins {
			merged[k] = v
			mergedClock[k] = lt
		}
	}

	payload, err := encodeClockedPayload(merged, mergedClock)
	if err != nil {
		return models.Resolution{}, false
	}

	e := local
	e.Payload = payload
	e.RemoteUpdatedAt = &remote.RemoteUpdatedAt
	if local.LocalUpdatedAt.Before(remote.RemoteUpdatedAt) {
		e.LocalUpdatedAt = remote.RemoteUpdatedAt
	}

	// A merge identical to the remote copy needs no follow-up push.
	if bytes.Equal(normalizeJSON(payload), normalizeJSON(remote.Payload)) {
		e.SyncState = models.StateClean
		return models.Resolution{Outcome: models.ResolutionMerged, Entity: &e}, true
	}

	e.SyncState = models.StatePendingPush
	return models.Resolution{Outcome: models.ResolutionMerged, Entity: &e, RequiresPush: true}, true
}

func (r *ConflictResolver) materializeConflict(local models.SyncableEntity, remote models.RemoteEntity, now time.Time) models.Resolution {
	return models.Resolution{
		Outcome: models.ResolutionConflict,
		Conflict: &models.ConflictRecord{
			EntityID:        local.ID,
			Type:            local.Type,
			LocalPayload:    local.Payload,
			RemotePayload:   remote.Payload,
			LocalUpdatedAt:  local.LocalUpdatedAt,
			RemoteUpdatedAt: remote.RemoteUpdatedAt,
			DetectedAt:      now,
		},
	}
}

// entityFromRemote converts a pulled remote entity into its local
// representation. The copy is clean: local and remote timestamps agree.
func entityFromRemote(userID int64, remote models.RemoteEntity) models.SyncableEntity {
	ts := remote.RemoteUpdatedAt
	state := models.StateClean
	if remote.Deleted {
		state = models.StateDeleted
	}

	return models.SyncableEntity{
		ID:              remote.ID,
		UserID:          userID,
		Type:            remote.Type,
		Payload:         remote.Payload,
		LocalUpdatedAt:  ts,
		RemoteUpdatedAt: &ts,
		DeviceID:        remote.DeviceID,
		SyncState:       state,
	}
}

func decodeClockedPayload(payload json.RawMessage) (map[string]json.RawMessage, map[string]time.Time, bool) {
	if len(payload) == 0 {
		return nil, nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, nil, false
	}

	rawClock, ok := fields[fieldClockKey]
	if !ok {
		return nil, nil, false
	}

	var clock map[string]time.Time
	if err := json.Unmarshal(rawClock, &clock); err != nil {
		return nil, nil, false
	}

	delete(fields, fieldClockKey)
	return fields, clock, true
}

func encodeClockedPayload(fields map[string]json.RawMessage, clock map[string]time.Time) (json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}

	rawClock, err := json.Marshal(clock)
	if err != nil {
		return nil, err
	}
	out[fieldClockKey] = rawClock

	return json.Marshal(out)
}

// normalizeJSON re-marshals a payload so key order and whitespace do not
// affect equality checks. Invalid input is returned as-is.
func normalizeJSON(payload json.RawMessage) []byte {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return payload
	}
	out, err := json.Marshal(v)
	if err != nil {
		return payload
	}
	return out
}
