// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo is the version stamp of a clinic binary, set through
// -ldflags at build time. Empty values mean the binary was built without
// them.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// Response renders the stamp as served by GET /api/version.
func (a AppBuildInfo) Response() BuildInfoResponse {
	return BuildInfoResponse{Version: a.buildVersion, Date: a.buildDate, Commit: a.buildCommit}
}
