// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-save-sync/internal/adapter"
	"github.com/MKhiriev/go-save-sync/internal/logger"
)

const defaultProbeInterval = 15 * time.Second

// Prober checks whether the backend can be reached.
type Prober interface {
	ProbeReady(ctx context.Context) error
}

// ConnectivityListener receives connectivity transitions.
type ConnectivityListener interface {
	OnConnectivityChange(ctx context.Context, online bool)
}

// ConnectivityWatcher stands in for the OS network events a desktop host
// would deliver. It probes the backend on an interval and reports a change
// only when the answer flips between reachable and unreachable. A warming
// backend counts as reachable.
type ConnectivityWatcher struct {
	prober   Prober
	listener ConnectivityListener
	interval time.Duration
	logger   *logger.Logger
}

func NewConnectivityWatcher(prober Prober, listener ConnectivityListener, interval time.Duration, logger *logger.Logger) *ConnectivityWatcher {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	return &ConnectivityWatcher{prober: prober, listener: listener, interval: interval, logger: logger}
}

func (c *ConnectivityWatcher) Run(ctx context.Context) {
	t := time.NewTicker(c.interval)
	defer t.Stop()

	online := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		err := c.prober.ProbeReady(ctx)
		if ctx.Err() != nil {
			return
		}

		reachable := !errors.Is(err, adapter.ErrNetworkUnavailable)
		if reachable == online {
			continue
		}
		online = reachable

		c.logger.Info().Bool("online", online).Msg("connectivity changed")
		c.listener.OnConnectivityChange(ctx, online)
	}
}
