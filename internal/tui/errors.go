// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-clinic/internal/service"
)

// ErrUserQuit is returned by Run when the operator leaves with ctrl+c.
var ErrUserQuit = errors.New("user quit the program")

// errorText turns a controller error into a line for the operator.
func errorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrInvalidLogin):
		return "Invalid username or password"
	case errors.Is(err, service.ErrDuplicateLogin):
		return "Another session is already open"
	case errors.Is(err, service.ErrIllegalAccess):
		return "Session is closed, log in again"
	case errors.Is(err, service.ErrNoCurrentPatient):
		return "Select a current patient first"
	}

	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Network is down or the server is unavailable"
	}

	return err.Error()
}
