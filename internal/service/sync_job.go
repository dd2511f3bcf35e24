package service

import (
	"context"
	"sync"
	"time"
)

const defaultSyncInterval = 30 * time.Second

type clientSyncJob struct {
	ticker SyncTicker

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a job that calls ticker.Tick on a timer. The job
// is idle until Start is called.
func NewClientSyncJob(ticker SyncTicker) ClientSyncJob {
	return &clientSyncJob{ticker: ticker}
}

// Start implements ClientSyncJob. The goroutine exits when ctx is cancelled
// or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.ticker.Tick(jobCtx)
			}
		}
	}()
}

// Stop implements ClientSyncJob. Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
