// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is a runnable front end of the clinic.
type Client interface {
	// Run shows the UI and returns once the operator has left it.
	Run() error
}
