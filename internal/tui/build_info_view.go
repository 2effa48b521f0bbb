// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-clinic/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, server *models.BuildInfoResponse, serverErr string) string {
	var b strings.Builder

	b.WriteString("Application: Clinic\n")
	b.WriteString("Version: ")
	b.WriteString(valueOrNA(info.BuildVersion()))
	b.WriteString("\n")
	b.WriteString("Date: ")
	b.WriteString(valueOrNA(info.BuildDate()))
	b.WriteString("\n")
	b.WriteString("Commit: ")
	b.WriteString(valueOrNA(info.BuildCommit()))

	switch {
	case server != nil:
		b.WriteString("\n\nServer version: ")
		b.WriteString(valueOrNA(server.Version))
		b.WriteString("\nServer date: ")
		b.WriteString(valueOrNA(server.Date))
		b.WriteString("\nServer commit: ")
		b.WriteString(valueOrNA(server.Commit))
	case serverErr != "":
		b.WriteString("\n\nServer: ")
		b.WriteString(serverErr)
	}

	return renderPage("ABOUT", b.String(), "esc: back")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
