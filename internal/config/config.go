// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"
	"time"
)

// Storage modes.
const (
	// ModeMemory keeps everything in process memory with built-in users.
	ModeMemory = "memory"
	// ModeFile keeps patients in a JSON document and notes in per-patient files.
	ModeFile = "file"
	// ModeSQLite keeps patients and notes in a SQLite database.
	ModeSQLite = "sqlite"
	// ModePostgres keeps patients and notes in a PostgreSQL database.
	ModePostgres = "postgres"
)

// StructuredConfig is the top-level configuration container for the clinic
// binaries. It is populated by merging command-line flags, environment
// variables (optionally seeded from a .env file), an optional JSON file and
// built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - validate: go-playground/validator rules checked after merging.
type StructuredConfig struct {
	// App holds session token and logging settings.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds settings of the HTTP API server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings of the remote client adapter. When
	// Adapter.ServerURL is set the terminal client talks to a server
	// instead of opening the storage itself.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret used to sign session JWTs.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued session JWTs.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long a session JWT stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION" validate:"gte=0"`

	// LogFile is where the terminal client writes its log.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage selects the persistence backend.
type Storage struct {
	// Mode is one of memory, file, sqlite, postgres.
	// Env: STORAGE_MODE
	Mode string `env:"MODE" validate:"omitempty,oneof=memory file sqlite postgres"`

	// DataDir is the directory holding patients.json, records/ and users.txt.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// DSN is the database file (sqlite) or connection string (postgres).
	// Env: STORAGE_DSN
	DSN string `env:"DSN" validate:"required_if=Mode sqlite,required_if=Mode postgres"`

	// UsersFile overrides the location of the credential file.
	// Env: STORAGE_USERS_FILE
	UsersFile string `env:"USERS_FILE"`
}

// PatientsFile returns the path of the patient document.
func (s Storage) PatientsFile() string {
	return filepath.Join(s.DataDir, "patients.json")
}

// RecordsDir returns the directory holding per-patient note files.
func (s Storage) RecordsDir() string {
	return filepath.Join(s.DataDir, "records")
}

// CredentialsFile returns the path of the credential file.
func (s Storage) CredentialsFile() string {
	if s.UsersFile != "" {
		return s.UsersFile
	}
	return filepath.Join(s.DataDir, "users.txt")
}

// Server holds settings of the HTTP API server.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling time of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gte=0"`

	// CORSOrigins lists the origins allowed to call the API.
	// Env: SERVER_CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// Adapter holds settings of the remote client adapter.
type Adapter struct {
	// ServerURL is the base URL of a clinic server, e.g. "http://localhost:8080".
	// Env: ADAPTER_SERVER_URL
	ServerURL string `env:"SERVER_URL" validate:"omitempty,url"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gte=0"`
}

// Remote reports whether the client should talk to a server.
func (a Adapter) Remote() bool {
	return a.ServerURL != ""
}

// defaultConfig holds the values used for everything left unset.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "clinic",
			TokenDuration: 8 * time.Hour,
		},
		Storage: Storage{
			Mode:    ModeFile,
			DataDir: "clinic",
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			RequestTimeout: 10 * time.Second,
		},
	}
}

// GetStructuredConfig loads, merges and validates the configuration. For
// every field the first non-zero value wins, in this order:
//  1. Command-line flags
//  2. Environment variables (a .env file in the working directory is loaded
//     first without overriding variables that are already set)
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags().
		withDotEnv().
		withEnv().
		withJSON().
		withDefaults().
		build()
}
