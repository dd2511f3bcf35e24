package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-save-sync/internal/adapter"
	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/envelope"
	"github.com/MKhiriev/go-save-sync/internal/gamehost"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/service"
	"github.com/MKhiriev/go-save-sync/internal/store"
	"github.com/MKhiriev/go-save-sync/internal/utils"
	"github.com/MKhiriev/go-save-sync/internal/workers"
)

// App holds the wired client: local storage, the cloud gateway, the game
// host and the sync controller on top of them.
type App struct {
	cfg *config.ClientConfig

	storages   *store.ClientStorages
	gateway    adapter.CloudGateway
	host       *gamehost.FileHost
	controller *service.SyncController

	logger *logger.Logger
}

// NewApp wires the client from cfg. Nothing talks to the network until
// Start.
func NewApp(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	gateway, err := adapter.NewHTTPCloudGateway(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("create cloud gateway: %w", err)
	}

	host, err := gamehost.NewFileHost(cfg.Game.SaveFile, logger)
	if err != nil {
		return nil, fmt.Errorf("create game host: %w", err)
	}

	clock := utils.SystemClock{}
	storages := store.NewClientStorages(ctx, cfg.Storage, envelope.NewCodec(nil, clock.Now), clock, logger)

	controller := service.NewSyncController(
		storages,
		gateway,
		host,
		service.NewBackoffScheduler(cfg.Workers.BackoffLadder, cfg.Workers.BackoffJitter),
		cfg.App.Version,
		clock,
		logger,
	)

	return &App{
		cfg:        cfg,
		storages:   storages,
		gateway:    gateway,
		host:       host,
		controller: controller,
		logger:     logger,
	}, nil
}

// Controller returns the sync controller.
func (a *App) Controller() *service.SyncController {
	return a.controller
}

// SaveFile returns the game save location.
func (a *App) SaveFile() string {
	return a.host.Path()
}

// Start restores the session and runs the bootstrap when auto-sync is on.
func (a *App) Start(ctx context.Context) {
	a.controller.Start(ctx)
}

// Run keeps auto-sync running until ctx is done. On the way out the host is
// reported hidden, which pushes pending changes one last time.
func (a *App) Run(ctx context.Context) error {
	a.Start(ctx)

	workers.NewWorkers(
		workers.NewSyncTimer(service.NewClientSyncJob(a.controller), a.cfg.Workers.SyncInterval),
		workers.NewConnectivityWatcher(a.gateway, a.controller, 0, a.logger),
	).Run(ctx)

	a.logger.Info().Msg("stopping, pushing pending changes")
	a.controller.OnVisibilityChange(context.WithoutCancel(ctx), false)

	return nil
}

// Close releases the local store.
func (a *App) Close() error {
	return a.storages.Close()
}
