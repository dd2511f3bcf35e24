// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-save-sync/internal/mock"
)

// countingWorker records how many times Run was called and blocks until
// the context is done.
type countingWorker struct {
	runs atomic.Int32
}

func (w *countingWorker) Run(ctx context.Context) {
	w.runs.Add(1)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &countingWorker{}, &countingWorker{}, &countingWorker{}
	ws := NewWorkers(w1, w2, w3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return w1.runs.Load() == 1 && w2.runs.Load() == 1 && w3.runs.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// returns at once with nothing to wait for
	ws.Run(context.Background())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	ws.Run(context.Background())
}

func TestSyncTimer_StartsAndStopsJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockClientSyncJob(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	gomock.InOrder(
		job.EXPECT().Start(ctx, 20*time.Second),
		job.EXPECT().Stop(),
	)

	done := make(chan struct{})
	go func() {
		NewSyncTimer(job, 20*time.Second).Run(ctx)
		close(done)
	}()

	cancel()
	<-done
}

type scriptedProber struct {
	mu      sync.Mutex
	results []error
	calls   int
}

func (p *scriptedProber) ProbeReady(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls >= len(p.results) {
		return p.results[len(p.results)-1]
	}
	err := p.results[p.calls]
	p.calls++
	return err
}

type recordingListener struct {
	mu      sync.Mutex
	changes []bool
}

func (l *recordingListener) OnConnectivityChange(_ context.Context, online bool) {
	l.mu.Lock()
	l.changes = append(l.changes, online)
	l.mu.Unlock()
}

func (l *recordingListener) snapshot() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]bool(nil), l.changes...)
}
