// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter lets the terminal client drive a clinic server as if it
// were a local controller.
//
// [RemoteController] implements [service.Controller] over the HTTP API.
// API error codes are mapped back to the service sentinels, so callers keep
// using [errors.Is] exactly as with the in-process controller.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/models"
)

// RemoteController is a [service.Controller] backed by a clinic server.
type RemoteController interface {
	service.Controller

	// ServerVersion returns the build metadata reported by the server.
	ServerVersion(ctx context.Context) (models.BuildInfoResponse, error)
}
