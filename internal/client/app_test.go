package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/gamehost"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/models"
)

func testClientConfig(t *testing.T) *config.ClientConfig {
	t.Helper()
	dir := t.TempDir()
	return &config.ClientConfig{
		App:     config.ClientApp{Version: "1.0.0"},
		Adapter: config.ClientAdapter{HTTPAddress: "127.0.0.1:1", RequestTimeout: time.Second},
		Storage: config.ClientStorage{Path: filepath.Join(dir, "local.db")},
		Workers: config.ClientWorkers{
			SyncInterval:  time.Hour,
			BackoffLadder: config.DefaultBackoffLadder,
		},
		Game: config.ClientGame{SaveFile: filepath.Join(dir, "save.json")},
	}
}

func TestNewApp_RequiresSaveFile(t *testing.T) {
	cfg := testClientConfig(t)
	cfg.Game.SaveFile = ""

	_, err := NewApp(context.Background(), cfg, logger.Nop())

	require.ErrorIs(t, err, gamehost.ErrSaveFileNotConfigured)
}

func TestNewApp_InvalidAddress(t *testing.T) {
	cfg := testClientConfig(t)
	cfg.Adapter.HTTPAddress = ""

	_, err := NewApp(context.Background(), cfg, logger.Nop())

	require.Error(t, err)
}

func TestApp_StartWithoutSession(t *testing.T) {
	cfg := testClientConfig(t)
	a, err := NewApp(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	a.Start(context.Background())

	state := a.Controller().State()
	assert.False(t, state.Authenticated)
	assert.Equal(t, models.SyncStatusIdle, state.Status)
	assert.Equal(t, cfg.Game.SaveFile, a.SaveFile())
}

func TestApp_RunStopsWithContext(t *testing.T) {
	a, err := NewApp(context.Background(), testClientConfig(t), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
