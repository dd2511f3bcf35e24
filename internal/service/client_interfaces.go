package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-save-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// GameHost is the game layer seen by the sync controller.
type GameHost interface {
	// Snapshot returns the current save payload. An empty payload means
	// there is no local save yet.
	Snapshot(ctx context.Context) (models.SavePayload, error)

	// Apply replaces the game state with payload.
	Apply(ctx context.Context, payload models.SavePayload) error

	// HasIrreversibleActivity reports whether loading a save now would
	// destroy progress that cannot be recreated.
	HasIrreversibleActivity(ctx context.Context) bool

	// VirtualScore summarises payload for the cloud save listing.
	VirtualScore(payload models.SavePayload) float64
}

// SyncTicker is what the periodic job drives.
type SyncTicker interface {
	Tick(ctx context.Context)
}

// ClientSyncJob runs the auto-sync timer in the background.
type ClientSyncJob interface {
	// Start launches the timer goroutine. Any running timer is stopped
	// first. A non-positive interval defaults to 30 seconds.
	Start(ctx context.Context, interval time.Duration)

	// Stop stops the timer and waits for the goroutine to exit.
	Stop()
}
