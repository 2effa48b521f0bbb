// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment, after .env has been
// loaded. Every nested section carries its own prefix, e.g. STORAGE_MODE or
// SERVER_CORS_ORIGINS.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error reading environment: %w", err)
	}

	return nil
}
