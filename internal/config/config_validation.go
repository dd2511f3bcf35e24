// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks settings shared by every binary. Role-specific rules live
// in the client and server views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.BackoffJitter < 0 || cfg.Workers.BackoffJitter >= 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || len(cfg.Workers.BackoffLadder) == 0 {
		return ErrInvalidWorkerConfigs
	}
	for _, d := range cfg.Workers.BackoffLadder {
		if d <= 0 {
			return ErrInvalidWorkerConfigs
		}
	}

	if cfg.Game.SaveFile == "" {
		return ErrInvalidGameConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.TokenSignKey == "" || cfg.Auth.AccessTokenDuration <= 0 || cfg.Auth.RefreshTokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.HTTP.Address == "" || cfg.HTTP.MaxPayloadBytes <= 0 ||
		cfg.HTTP.WriteRatePerSecond <= 0 || cfg.HTTP.WriteBurst <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
