// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces variables for hosts that share one environment
// between several programs. SAVE_SYNC_SERVER_ADDRESS wins over
// SERVER_ADDRESS.
const EnvPrefix = "SAVE_SYNC_"

// parseEnv fills cfg from the bare variables first and then from the
// namespaced ones. Unset variables leave fields untouched, so the second
// pass only overrides what is actually set.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse %s env: %w", EnvPrefix, err)
	}

	return nil
}
