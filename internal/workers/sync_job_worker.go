package workers

import (
	"context"
	"time"

	"github.com/eunio-health/eunio-sync/internal/service"
)

// syncJobWorker adapts the service-layer sync job to the Worker contract.
type syncJobWorker struct {
	ctx      context.Context
	job      service.ClientSyncJob
	userID   int64
	interval time.Duration
}

func newSyncJobWorker(ctx context.Context, job service.ClientSyncJob, userID int64, interval time.Duration) *syncJobWorker {
	return &syncJobWorker{ctx: ctx, job: job, userID: userID, interval: interval}
}

func (w *syncJobWorker) Run() {
	w.job.Start(w.ctx, w.userID, w.interval)
}
