package config

import (
	"fmt"
	"slices"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// Version is sent with every cloud save write.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the cloud server base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage holds the local store location.
type ClientStorage struct {
	// Path is the SQLite file, or ":memory:".
	Path string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the auto-sync timer fires.
	SyncInterval time.Duration
	// BackoffLadder is the warmup retry schedule.
	BackoffLadder []time.Duration
	// BackoffJitter is the relative jitter of each wait.
	BackoffJitter float64
}

// ClientGame holds where the game's save lives.
type ClientGame struct {
	SaveFile string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Game    ClientGame
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig(flags *StructuredConfig) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps and validates the client view of cfg.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			Path: cfg.Storage.Local.Path,
		},
		Workers: ClientWorkers{
			SyncInterval:  cfg.Workers.SyncInterval,
			BackoffLadder: slices.Clone(cfg.Workers.BackoffLadder),
			BackoffJitter: cfg.Workers.BackoffJitter,
		},
		Game: ClientGame{
			SaveFile: cfg.Game.SaveFile,
		},
	}

	return clientCfg, clientCfg.validate()
}
