package service

import (
	"errors"

	"github.com/MKhiriev/go-clinic/internal/store"
)

// Session lifecycle errors.
var (
	// ErrIllegalAccess is returned by every patient and note operation
	// attempted without an active session.
	ErrIllegalAccess = errors.New("illegal access: no active session")

	// ErrInvalidLogin is returned when the username is unknown or the
	// password does not match its stored digest.
	ErrInvalidLogin = errors.New("invalid login")

	// ErrDuplicateLogin is returned by Login while a session is active.
	ErrDuplicateLogin = errors.New("duplicate login: a session is already active")

	// ErrInvalidLogout is returned by Logout without an active session.
	ErrInvalidLogout = errors.New("invalid logout: no active session")
)

var (
	// ErrNoCurrentPatient is returned by note operations when no patient is
	// selected.
	ErrNoCurrentPatient = errors.New("no current patient")

	// ErrIllegalOperation is the class of patient store precondition
	// violations. It is the same value as [store.ErrIllegalOperation].
	ErrIllegalOperation = store.ErrIllegalOperation
)

// Token errors.
var (
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrSessionMismatch         = errors.New("token does not belong to the active session")
)
