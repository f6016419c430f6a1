// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eunio Health

package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eunio-health/eunio-sync/models"
)

var resolverNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func ts(offsetSec int) time.Time {
	return resolverNow.Add(time.Duration(offsetSec) * time.Second)
}

func tsPtr(offsetSec int) *time.Time {
	t := ts(offsetSec)
	return &t
}

func localEntity(updated time.Time, baseline *time.Time, deviceID string, payload string) models.SyncableEntity {
	return models.SyncableEntity{
		ID:              "entity-1",
		UserID:          42,
		Type:            models.EntityDailyLog,
		Payload:         json.RawMessage(payload),
		LocalUpdatedAt:  updated,
		RemoteUpdatedAt: baseline,
		DeviceID:        deviceID,
		SyncState:       models.StatePendingPush,
	}
}

func remoteEntity(updated time.Time, deviceID string, payload string) models.RemoteEntity {
	return models.RemoteEntity{
		ID:              "entity-1",
		Type:            models.EntityDailyLog,
		Payload:         json.RawMessage(payload),
		RemoteUpdatedAt: updated,
		DeviceID:        deviceID,
	}
}

// ── remote wins / local wins ─────────────────────────────────────────────────

func TestResolver_RemoteWins_LocalUnchanged(t *testing.T) {
	r := NewConflictResolver(nil)

	// Local copy is untouched since its last sync at t-100; remote moved on.
	local := localEntity(ts(-100), tsPtr(-100), "device-a", `{"mood":"ok"}`)
	remote := remoteEntity(ts(-10), "device-b", `{"mood":"great"}`)

	res := r.Resolve(local, remote, resolverNow)

	require.Equal(t, models.ResolutionRemote, res.Outcome)
	require.NotNil(t, res.Entity)
	assert.False(t, res.RequiresPush)
	assert.JSONEq(t, `{"mood":"great"}`, string(res.Entity.Payload))
	assert.Equal(t, models.StateClean, res.Entity.SyncState)
	assert.Equal(t, ts(-10), *res.Entity.RemoteUpdatedAt)
}

func TestResolver_LocalWins_RemoteStale(t *testing.T) {
	r := NewConflictResolver(nil)

	// Remote copy is the one this device already saw; only local moved.
	local := localEntity(ts(-5), tsPtr(-50), "device-a", `{"mood":"meh"}`)
	remote := remoteEntity(ts(-50), "device-b", `{"mood":"ok"}`)

	res := r.Resolve(local, remote, resolverNow)

	require.Equal(t, models.ResolutionLocal, res.Outcome)
	require.NotNil(t, res.Entity)
	assert.False(t, res.RequiresPush, "the pending journal entry already covers this edit")
	assert.JSONEq(t, `{"mood":"meh"}`, string(res.Entity.Payload))
}

// ── last-write-wins on divergence ────────────────────────────────────────────

func TestResolver_LWW_RemoteNewer(t *testing.T) {
	r := NewConflictResolver(nil)

	// Local edited at t-100 against a t-150 baseline, remote edited at t-20.
	local := localEntity(ts(-100), tsPtr(-150), "device-a", `{"note":"local"}`)
	remote := remoteEntity(ts(-20), "device-b", `{"note":"remote"}`)

	res := r.Resolve(local, remote, resolverNow)

	require.Equal(t, models.ResolutionRemote, res.Outcome)
	assert.JSONEq(t, `{"note":"remote"}`, string(res.Entity.Payload))
}

func TestResolver_LWW_LocalNewer_RequiresPush(t *testing.T) {
	r := NewConflictResolver(nil)

	local := localEntity(ts(-10), tsPtr(-150), "device-a", `{"note":"local"}`)
	remote := remoteEntity(ts(-100), "device-b", `{"note":"remote"}`)

	res := r.Resolve(local, remote, resolverNow)

	require.Equal(t, models.ResolutionLocal, res.Outcome)
	assert.True(t, res.RequiresPush, "remote store holds the losing version")
	assert.JSONEq(t, `{"note":"local"}`, string(res.Entity.Payload))
	assert.Equal(t, models.StatePendingPush, res.Entity.SyncState)
	assert.Equal(t, ts(-100), *res.Entity.RemoteUpdatedAt)
}

func TestResolver_LWW_TimestampTie_GreaterDeviceIDWins(t *testing.T) {
	r := NewConflictResolver(nil)

	tests := []struct {
		name         string
		localDevice  string
		remoteDevice string
		wantOutcome  models.ResolutionOutcome
	}{
		{"local has greater device id", "device-b", "device-a", models.ResolutionLocal},
		{"remote has greater device id", "device-a", "device-b", models.ResolutionRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := localEntity(ts(-10), tsPtr(-150), tt.localDevice, `{"note":"local"}`)
			remote := remoteEntity(ts(-10), tt.remoteDevice, `{"note":"remote"}`)

			res := r.Resolve(local, remote, resolverNow)

			assert.Equal(t, tt.wantOutcome, res.Outcome)
		})
	}
}

func TestResolver_NeverSyncedLocal_BothChanged(t *testing.T) {
	r := NewConflictResolver(nil)

	// Entity created offline on this device while another device already
	// pushed its own copy: no baseline exists, both sides count as changed.
	local := localEntity(ts(-5), nil, "device-a", `{"note":"local"}`)
	remote := remoteEntity(ts(-50), "device-b", `{"note":"remote"}`)

	res := r.Resolve(local, remote, resolverNow)

	require.Equal(t, models.ResolutionLocal, res.Outcome)
	assert.True(t, res.RequiresPush)
}

// ── deletes ──────────────────────────────────────────────────────────────────

func TestResolver_RemoteDelete_LocalUnchanged(t *testing.T) {
	r := NewConflictResolver(nil)

	local := localEntity(ts(-100), tsPtr(-100), "device-a", `{"note":"kept"}`)
	local.SyncState = models.StateClean
	remote := remoteEntity(ts(-10), "device-b", `{"note":"kept"}`)
	remote.Deleted = true

	res := r.Resolve(local, remote, resolverNow)

	require.Equal(t, models.ResolutionRemote, res.Outcome)
	assert.Equal(t, models.StateDeleted, res.Entity.SyncState)
}

func TestResolver_RemoteDelete_VsNewerLocalEdit(t *testing.T) {
	r := NewConflictResolver(nil)

	// Delete on another device at t-50, edit here at t-10: the edit wins
	// and travels back so the record is resurrected remotely.
	local := localEntity(ts(-10), tsPtr(-150), "device-a", `{"note":"edited"}`)
	remote := remoteEntity(ts(-50), "device-b", `{}`)
	remote.Deleted = true

	res := r.Resolve(local, remote, resolverNow)

	require.Equal(t, models.ResolutionLocal, res.Outcome)
	assert.True(t, res.RequiresPush)
	assert.False(t, res.Entity.Deleted())
}

// ── field-level merge ────────────────────────────────────────────────────────

func TestResolver_FieldMerge_BothSidesContribute(t *testing.T) {
	r := NewConflictResolver(nil)

	localPayload := `{
		"mood": "tired",
		"sleep": 6,
		"fieldUpdatedAt": {
			"mood": "2026-08-01T11:59:30Z",
			"sleep": "2026-08-01T11:58:00Z"
		}
	}`
	remotePayload := `{
		"mood": "fine",
		"sleep": 8,
		"fieldUpdatedAt": {
			"mood": "2026-08-01T11:58:30Z",
			"sleep": "2026-08-01T11:59:00Z"
		}
	}`

	local := localEntity(ts(-30), tsPtr(-300), "device-a", localPayload)
	remote := remoteEntity(ts(-60), "device-b", remotePayload)

	res := r.Resolve(local, remote, resolverNow)

	require.Equal(t, models.ResolutionMerged, res.Outcome)
	require.NotNil(t, res.Entity)
	assert.True(t, res.RequiresPush)

	var merged map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(res.Entity.Payload, &merged))

	// mood was edited later locally, sleep later remotely.
	assert.JSONEq(t, `"tired"`, string(merged["mood"]))
	assert.JSONEq(t, `8`, string(merged["sleep"]))

	var clock map[string]time.Time
	require.NoError(t, json.Unmarshal(merged["fieldUpdatedAt"], &clock))
	assert.Equal(t, time.Date(2026, 8, 1, 11, 59, 30, 0, time.UTC), clock["mood"])
	assert.Equal(t, time.Date(2026, 8, 1, 11, 59, 0, 0, time.UTC), clock["sleep"])
}

func TestResolver_FieldMerge_DisjointFieldsUnion(t *testing.T) {
	r := NewConflictResolver(nil)

	localPayload := `{"mood":"calm","fieldUpdatedAt":{"mood":"2026-08-01T11:50:00Z"}}`
	remotePayload := `{"steps":9000,"fieldUpdatedAt":{"steps":"2026-08-01T11:55:00Z"}}`

	local := localEntity(ts(-30), tsPtr(-300), "device-a", localPayload)
	remote := remoteEntity(ts(-60), "device-b", remotePayload)

	res := r.Resolve(local, remote, resolverNow)

	require.Equal(t, models.ResolutionMerged, res.Outcome)

	var merged map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(res.Entity.Payload, &merged))
	assert.JSONEq(t, `"calm"`, string(merged["mood"]))
	assert.JSONEq(t, `9000`, string(merged["steps"]))
}

func TestResolver_MissingFieldClock_FallsBackToLWW(t *testing.T) {
	r := NewConflictResolver(nil)

	// Local payload carries no field clock: whole-record LWW applies
	// and the newer remote wins wholesale.
	local := localEntity(ts(-100), tsPtr(-300), "device-a", `{"mood":"tired"}`)
	remote := remoteEntity(ts(-10), "device-b", `{"mood":"fine","fieldUpdatedAt":{"mood":"2026-08-01T11:59:00Z"}}`)

	res := r.Resolve(local, remote, resolverNow)

	require.Equal(t, models.ResolutionRemote, res.Outcome)
	assert.JSONEq(t, string(remote.Payload), string(res.Entity.Payload))
}

// ── non-mergeable types ──────────────────────────────────────────────────────

func TestResolver_NonMergeableType_ProducesConflict(t *testing.T) {
	r := NewConflictResolver([]string{"daily_log"})

	local := localEntity(ts(-10), tsPtr(-150), "device-a", `{"note":"local"}`)
	remote := remoteEntity(ts(-20), "device-b", `{"note":"remote"}`)

	res := r.Resolve(local, remote, resolverNow)

	require.Equal(t, models.ResolutionConflict, res.Outcome)
	assert.Nil(t, res.Entity)
	require.NotNil(t, res.Conflict)

	// Both payloads survive in full: no data loss while unresolved.
	assert.JSONEq(t, `{"note":"local"}`, string(res.Conflict.LocalPayload))
	assert.JSONEq(t, `{"note":"remote"}`, string(res.Conflict.RemotePayload))
	assert.Equal(t, ts(-10), res.Conflict.LocalUpdatedAt)
	assert.Equal(t, ts(-20), res.Conflict.RemoteUpdatedAt)
	assert.Equal(t, resolverNow, res.Conflict.DetectedAt)
}

func TestResolver_NonMergeableType_OneSidedChangeStillAutomatic(t *testing.T) {
	r := NewConflictResolver([]string{"daily_log"})

	// Only the remote moved: nothing diverged, so no conflict is needed
	// even for a non-mergeable type.
	local := localEntity(ts(-100), tsPtr(-100), "device-a", `{"note":"old"}`)
	remote := remoteEntity(ts(-10), "device-b", `{"note":"new"}`)

	res := r.Resolve(local, remote, resolverNow)

	assert.Equal(t, models.ResolutionRemote, res.Outcome)
}

// ── determinism ──────────────────────────────────────────────────────────────

func TestResolver_Deterministic(t *testing.T) {
	r := NewConflictResolver(nil)

	local := localEntity(ts(-10), tsPtr(-150), "device-a", `{"note":"local"}`)
	remote := remoteEntity(ts(-10), "device-b", `{"note":"remote"}`)

	first := r.Resolve(local, remote, resolverNow)
	for i := 0; i < 5; i++ {
		again := r.Resolve(local, remote, resolverNow)
		assert.Equal(t, first.Outcome, again.Outcome)
	}
}
