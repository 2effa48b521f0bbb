// Package server runs the clinic HTTP API.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown.
package server
