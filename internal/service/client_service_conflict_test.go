package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/eunio-health/eunio-sync/internal/mock"
	"github.com/eunio-health/eunio-sync/models"
)

func newTestConflictService(t *testing.T, ctrl *gomock.Controller) (ConflictService, *mock.MockEntityRepository, *mock.MockJournalRepository, *mock.MockConflictRepository) {
	t.Helper()
	entities := mock.NewMockEntityRepository(ctrl)
	journal := mock.NewMockJournalRepository(ctrl)
	conflicts := mock.NewMockConflictRepository(ctrl)
	svc := NewConflictService(entities, journal, conflicts, "device-a")
	return svc, entities, journal, conflicts
}

func openConflict() models.ConflictRecord {
	return models.ConflictRecord{
		ID:              11,
		EntityID:        "e1",
		Type:            models.EntityDailyLog,
		LocalPayload:    json.RawMessage(`{"note":"mine"}`),
		RemotePayload:   json.RawMessage(`{"note":"theirs"}`),
		LocalUpdatedAt:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		RemoteUpdatedAt: time.Date(2026, 8, 1, 10, 5, 0, 0, time.UTC),
	}
}

func TestConflictService_Resolve_ChooseRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, entities, _, conflicts := newTestConflictService(t, ctrl)
	ctx := context.Background()
	conflict := openConflict()

	conflicts.EXPECT().ListOpenConflicts(ctx, int64(42)).Return([]models.ConflictRecord{conflict}, nil)
	entities.EXPECT().GetEntity(ctx, int64(42), "e1").
		Return(models.SyncableEntity{ID: "e1", UserID: 42, Type: models.EntityDailyLog, SyncState: models.StatePendingConflict}, nil)
	entities.EXPECT().SaveEntities(ctx, int64(42), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, got ...models.SyncableEntity) error {
			require.Len(t, got, 1)
			assert.JSONEq(t, `{"note":"theirs"}`, string(got[0].Payload))
			assert.Equal(t, models.StateClean, got[0].SyncState)
			assert.Equal(t, conflict.RemoteUpdatedAt, *got[0].RemoteUpdatedAt)
			// A clean entity must not look locally edited: the adopted
			// version keeps the remote edit timestamp, otherwise the next
			// remote change would take the both-changed path and LWW could
			// re-push stale data.
			assert.Equal(t, conflict.RemoteUpdatedAt, got[0].LocalUpdatedAt)
			return nil
		})
	conflicts.EXPECT().ResolveConflict(ctx, int64(42), int64(11), ConflictChooseRemote).Return(nil)

	require.NoError(t, svc.Resolve(ctx, 42, 11, ConflictChooseRemote))
}

func TestConflictService_Resolve_ChooseLocalJournalsPush(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, entities, journal, conflicts := newTestConflictService(t, ctrl)
	ctx := context.Background()
	conflict := openConflict()

	conflicts.EXPECT().ListOpenConflicts(ctx, int64(42)).Return([]models.ConflictRecord{conflict}, nil)
	entities.EXPECT().GetEntity(ctx, int64(42), "e1").
		Return(models.SyncableEntity{ID: "e1", UserID: 42, Type: models.EntityDailyLog, SyncState: models.StatePendingConflict}, nil)
	entities.EXPECT().SaveEntities(ctx, int64(42), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, got ...models.SyncableEntity) error {
			assert.JSONEq(t, `{"note":"mine"}`, string(got[0].Payload))
			assert.Equal(t, models.StatePendingPush, got[0].SyncState)
			return nil
		})

	// The local winner must travel back to the remote store.
	journal.EXPECT().Append(ctx, int64(42), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, rec models.ChangeRecord) (int64, error) {
			assert.Equal(t, "e1", rec.EntityID)
			assert.Equal(t, models.OpUpdate, rec.Operation)
			return 9, nil
		})
	conflicts.EXPECT().ResolveConflict(ctx, int64(42), int64(11), ConflictChooseLocal).Return(nil)

	require.NoError(t, svc.Resolve(ctx, 42, 11, ConflictChooseLocal))
}

func TestConflictService_Resolve_InvalidChoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestConflictService(t, ctrl)

	err := svc.Resolve(context.Background(), 42, 11, "merge")
	assert.ErrorIs(t, err, ErrInvalidConflictChoice)
}

func TestConflictService_Resolve_UnknownConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, conflicts := newTestConflictService(t, ctrl)
	ctx := context.Background()

	conflicts.EXPECT().ListOpenConflicts(ctx, int64(42)).Return([]models.ConflictRecord{openConflict()}, nil)

	err := svc.Resolve(ctx, 42, 999, ConflictChooseLocal)
	assert.ErrorIs(t, err, ErrConflictNotFound)
}

func TestConflictService_ListOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, conflicts := newTestConflictService(t, ctrl)
	ctx := context.Background()
	want := []models.ConflictRecord{openConflict()}

	conflicts.EXPECT().ListOpenConflicts(ctx, int64(42)).Return(want, nil)

	got, err := svc.ListOpen(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
