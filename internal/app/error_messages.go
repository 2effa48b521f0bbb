// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains application-level constants shared by the HTTP API
// server and the remote client adapter.
//
// Code* constants are the stable machine-readable identifiers carried in
// the "error" field of API error bodies. The adapter maps them back to the
// controller's sentinel errors, so both sides must agree on the wording.
// Msg* constants are human-readable messages for responses and logs.
package app

const (
	// CodeIllegalAccess is returned when an operation requires an active
	// session and none exists, or the bearer token does not belong to it.
	CodeIllegalAccess = "illegal_access"

	// CodeInvalidLogin is returned when the username is unknown or the
	// password does not match.
	CodeInvalidLogin = "invalid_login"

	// CodeDuplicateLogin is returned when logging in while a session is
	// already active.
	CodeDuplicateLogin = "duplicate_login"

	// CodeInvalidLogout is returned when logging out without a session.
	CodeInvalidLogout = "invalid_logout"

	// CodeNoCurrentPatient is returned by note endpoints when no patient is
	// selected.
	CodeNoCurrentPatient = "no_current_patient"

	// CodeIllegalOperation is returned for patient store precondition
	// violations: duplicate or missing PHN, PHN collision on rename, or
	// mutating the current patient.
	CodeIllegalOperation = "illegal_operation"

	// CodeBadRequest is returned when the request cannot be decoded or
	// fails validation.
	CodeBadRequest = "bad_request"

	// CodeNotFound is returned when a searched patient or note is absent.
	// It signals an empty result, not a failure.
	CodeNotFound = "not_found"

	// CodeMethodNotAllowed is returned for a known path with an unsupported
	// HTTP method.
	CodeMethodNotAllowed = "method_not_allowed"

	// CodeInternalError is returned for unexpected server-side failures,
	// including persistence errors.
	CodeInternalError = "internal_error"
)

const (
	MsgInvalidDataProvided = "invalid data provided"
	MsgInvalidPHN          = "PHN must be a positive integer"
	MsgInvalidNoteCode     = "note code must be a positive integer"
	MsgPatientNotFound     = "patient not found"
	MsgNoteNotFound        = "note not found"
	MsgNoCurrentPatient    = "no current patient selected"
	MsgMissingToken        = "missing or malformed bearer token"
	MsgTokenIsInvalid      = "token is expired or invalid"
	MsgInternalServerError = "internal server error"
	MsgRouteNotFound       = "route not found"
	MsgMethodNotAllowed    = "method not allowed"
)
