package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-save-sync/internal/service"
)

// SyncTimer drives the auto-sync timer for as long as it runs.
type SyncTimer struct {
	job      service.ClientSyncJob
	interval time.Duration
}

func NewSyncTimer(job service.ClientSyncJob, interval time.Duration) *SyncTimer {
	return &SyncTimer{job: job, interval: interval}
}

func (s *SyncTimer) Run(ctx context.Context) {
	s.job.Start(ctx, s.interval)
	<-ctx.Done()
	s.job.Stop()
}
