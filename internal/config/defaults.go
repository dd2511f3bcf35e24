package config

import (
	"slices"
	"time"
)

// DefaultBackoffLadder is the warmup retry schedule.
var DefaultBackoffLadder = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	4 * time.Second,
	8 * time.Second,
	16 * time.Second,
	30 * time.Second,
}

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:          "go-save-sync",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 30 * 24 * time.Hour,
			Version:              "dev",
		},
		Storage: Storage{
			Local: Local{Path: "save-sync.db"},
		},
		Server: Server{
			HTTPAddress:        "localhost:8080",
			RequestTimeout:     30 * time.Second,
			MaxPayloadBytes:    1 << 20,
			WriteRatePerSecond: 1,
			WriteBurst:         5,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			SyncInterval:  30 * time.Second,
			BackoffLadder: slices.Clone(DefaultBackoffLadder),
			BackoffJitter: 0.15,
		},
		Game: Game{
			SaveFile: "save.json",
		},
	}
}
