package config

import "errors"

// Validation errors returned when the merged configuration is unusable.
var (
	// ErrInvalidConfig wraps every validation failure of the merged
	// configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidServerConfigs indicates settings the API server cannot run
	// without (for example, a missing token sign key).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
