// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the terminal client runtime.
//
// It chooses between a local controller over the configured storage and a
// remote clinic server, then runs the terminal UI until the operator quits.
package client
