// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eunio Health

package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/eunio-health/eunio-sync/internal/config"
	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/mock"
	"github.com/eunio-health/eunio-sync/internal/store"
	"github.com/eunio-health/eunio-sync/models"
)

// newSQLiteStorages opens a throwaway SQLite database in a temp directory and
// runs the real client migrations against it, so the cycle below exercises
// the actual SQL the daemon runs, not mocks.
func newSQLiteStorages(t *testing.T) *store.ClientStorages {
	t.Helper()

	cfg := config.ClientStorage{
		DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "sync.db")},
	}
	storages, err := store.NewClientStorages(cfg, logger.Nop())
	require.NoError(t, err)
	return storages
}

// TestSyncCoordinator_SQLite_FullCycleThenQuiet runs one full cycle against
// real SQLite repositories followed by a second cycle with nothing to do,
// and inspects the durable end state: the pushed entity is clean with its
// confirmed timestamp recorded, the journal is empty, the pulled entity is
// present, and the second cycle moves neither the journal nor the cursor.
func TestSyncCoordinator_SQLite_FullCycleThenQuiet(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	const userID int64 = 42
	editedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	remoteEditAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	committedAt := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	storages := newSQLiteStorages(t)

	local := models.SyncableEntity{
		ID:             "cycle-local",
		UserID:         userID,
		Type:           models.EntityCycle,
		Payload:        json.RawMessage(`{"day":12}`),
		LocalUpdatedAt: editedAt,
		DeviceID:       "device-a",
		SyncState:      models.StatePendingPush,
	}
	require.NoError(t, storages.Entities.SaveEntities(ctx, userID, local))

	_, err := storages.Journal.Append(ctx, userID, models.ChangeRecord{
		EntityID:   local.ID,
		Type:       models.EntityCycle,
		Operation:  models.OpCreate,
		OccurredAt: editedAt,
		DeviceID:   "device-a",
	})
	require.NoError(t, err)

	gateway := mock.NewMockRemoteGateway(ctrl)
	gateway.EXPECT().
		PushBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, items []models.PushItem) ([]models.PushResult, error) {
			results := make([]models.PushResult, len(items))
			for i, item := range items {
				results[i] = models.PushResult{
					ChangeID: item.ChangeID,
					EntityID: item.EntityID,
					Status:   models.PushCommitted,
				}
			}
			return results, nil
		}).
		Times(1)
	gateway.EXPECT().
		PullSince(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entityType models.EntityType, since time.Time) ([]models.RemoteEntity, error) {
			if entityType != models.EntityCycle || !since.Before(committedAt) {
				return nil, nil
			}
			return []models.RemoteEntity{{
				ID:              "cycle-remote",
				Type:            models.EntityCycle,
				Payload:         json.RawMessage(`{"day":13}`),
				RemoteUpdatedAt: remoteEditAt,
				ServerUpdatedAt: committedAt,
				DeviceID:        "device-b",
			}}, nil
		}).
		AnyTimes()

	cfg := config.Sync{
		DeviceID:         "device-a",
		BatchSize:        10,
		RetryBaseDelay:   time.Millisecond,
		RetryMaxDelay:    time.Millisecond,
		RetryMaxAttempts: 2,
	}
	coordinator := NewSyncCoordinator(storages, gateway, cfg, logger.Nop())

	report, err := coordinator.Sync(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pushed)
	assert.Equal(t, 1, report.Pulled)
	assert.Zero(t, report.Conflicts)

	pushed, err := storages.Entities.GetEntity(ctx, userID, "cycle-local")
	require.NoError(t, err)
	assert.Equal(t, models.StateClean, pushed.SyncState)
	require.NotNil(t, pushed.RemoteUpdatedAt)
	assert.WithinDuration(t, editedAt, *pushed.RemoteUpdatedAt, time.Second)

	pulled, err := storages.Entities.GetEntity(ctx, userID, "cycle-remote")
	require.NoError(t, err)
	assert.Equal(t, models.StateClean, pulled.SyncState)
	assert.Equal(t, "device-b", pulled.DeviceID)

	for _, entityType := range models.EntityTypes {
		pending, err := storages.Journal.PendingSince(ctx, userID, entityType)
		require.NoError(t, err)
		assert.Empty(t, pending, "journal should be drained for %s", entityType)
	}

	cursor, err := storages.Cursors.GetCursor(ctx, userID, models.EntityCycle)
	require.NoError(t, err)
	assert.WithinDuration(t, committedAt, cursor, time.Second)

	// Quiet cycle: nothing pending, nothing newer remotely. PushBatch must
	// not fire again (Times(1) above) and the cursor must not move.
	report, err = coordinator.Sync(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, report.Pushed)
	assert.Zero(t, report.Pulled)

	after, err := storages.Cursors.GetCursor(ctx, userID, models.EntityCycle)
	require.NoError(t, err)
	assert.WithinDuration(t, cursor, after, 0)
}
