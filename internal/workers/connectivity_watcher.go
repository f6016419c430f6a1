package workers

import (
	"context"
	"time"

	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/service"
)

// connectivityWatcher probes the remote store on an interval and triggers an
// immediate sync cycle when reachability flips from offline to online, so a
// device coming back from a dead zone catches up without waiting for the
// next scheduled tick.
type connectivityWatcher struct {
	ctx          context.Context
	connectivity service.ConnectivityChecker
	coordinator  service.SyncCoordinator
	userID       int64
	interval     time.Duration
	logger       *logger.Logger
}

func newConnectivityWatcher(ctx context.Context, connectivity service.ConnectivityChecker, coordinator service.SyncCoordinator, userID int64, interval time.Duration, log *logger.Logger) *connectivityWatcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &connectivityWatcher{
		ctx:          ctx,
		connectivity: connectivity,
		coordinator:  coordinator,
		userID:       userID,
		interval:     interval,
		logger:       log,
	}
}

func (w *connectivityWatcher) Run() {
	go func() {
		// Probe once up front so the sync job does not wait a full interval
		// before its first gate check can pass.
		w.probe()

		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-t.C:
				w.probe()
			}
		}
	}()
}

func (w *connectivityWatcher) probe() {
	cameOnline := w.connectivity.Probe(w.ctx)
	if !cameOnline {
		return
	}

	w.logger.Info().Int64("userID", w.userID).Msg("remote store reachable again, triggering sync")
	if _, err := w.coordinator.Sync(w.ctx, w.userID); err != nil {
		w.logger.Error().Str("func", "connectivityWatcher.probe").Err(err).Msg("catch-up sync failed")
	}
}
