package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/mock"
	"github.com/eunio-health/eunio-sync/models"
)

type countingWorker struct {
	runs int
}

func (w *countingWorker) Run() { w.runs++ }

func TestWorkers_RunStartsEveryWorker(t *testing.T) {
	first := &countingWorker{}
	second := &countingWorker{}

	w := &Workers{workers: []Worker{first, second}}
	w.Run()

	assert.Equal(t, 1, first.runs)
	assert.Equal(t, 1, second.runs)
}

func TestSyncJobWorker_DelegatesToJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockClientSyncJob(ctrl)

	ctx := context.Background()
	job.EXPECT().Start(ctx, int64(42), time.Minute)

	newSyncJobWorker(ctx, job, 42, time.Minute).Run()
}

func TestConnectivityWatcher_TriggersCatchUpSyncOnFlip(t *testing.T) {
	ctrl := gomock.NewController(t)
	connectivity := mock.NewMockConnectivityChecker(ctrl)
	coordinator := mock.NewMockSyncCoordinator(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	synced := make(chan struct{})

	// The initial probe reports an offline-to-online flip.
	connectivity.EXPECT().Probe(gomock.Any()).Return(true)
	connectivity.EXPECT().Probe(gomock.Any()).Return(false).AnyTimes()
	coordinator.EXPECT().Sync(gomock.Any(), int64(42)).
		DoAndReturn(func(context.Context, int64) (models.SyncReport, error) {
			close(synced)
			return models.SyncReport{}, nil
		})

	w := newConnectivityWatcher(ctx, connectivity, coordinator, 42, 5*time.Millisecond, logger.Nop())
	w.Run()

	select {
	case <-synced:
	case <-time.After(time.Second):
		t.Fatal("catch-up sync was not triggered")
	}
}

func TestConnectivityWatcher_NoSyncWhileStateUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	connectivity := mock.NewMockConnectivityChecker(ctrl)
	coordinator := mock.NewMockSyncCoordinator(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// No flip, so the coordinator must never be invoked.
	connectivity.EXPECT().Probe(gomock.Any()).Return(false).AnyTimes()

	w := newConnectivityWatcher(ctx, connectivity, coordinator, 42, 5*time.Millisecond, logger.Nop())
	w.Run()

	time.Sleep(30 * time.Millisecond)
}

func TestConnectivityWatcher_StopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	connectivity := mock.NewMockConnectivityChecker(ctrl)
	coordinator := mock.NewMockSyncCoordinator(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	probed := make(chan struct{}, 64)
	connectivity.EXPECT().Probe(gomock.Any()).
		DoAndReturn(func(context.Context) bool {
			probed <- struct{}{}
			return false
		}).AnyTimes()

	w := newConnectivityWatcher(ctx, connectivity, coordinator, 42, 5*time.Millisecond, logger.Nop())
	w.Run()

	select {
	case <-probed:
	case <-time.After(time.Second):
		t.Fatal("watcher never probed")
	}

	cancel()
	time.Sleep(20 * time.Millisecond)

	// Drain anything in flight, then verify the ticker loop has stopped.
	for len(probed) > 0 {
		<-probed
	}
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, probed)
}
