package workers

import (
	"context"

	"github.com/eunio-health/eunio-sync/internal/config"
	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the daemon's background workers: the periodic sync
// job and the connectivity watcher that triggers a catch-up sync when the
// remote store comes back into reach.
func NewWorkers(ctx context.Context, services *service.ClientServices, userID int64, cfg config.Sync, log *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		newSyncJobWorker(ctx, services.SyncJob, userID, cfg.Interval),
		newConnectivityWatcher(ctx, services.Connectivity, services.Coordinator, userID, cfg.ProbeInterval, log),
	}}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
