package service

import (
	"context"

	"github.com/MKhiriev/go-clinic/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// Controller is the API every front end drives: the terminal UI directly, or
// remotely through the HTTP handler and adapter.
//
// Every patient and note operation fails with [ErrIllegalAccess] when no
// session is active, before anything else is checked. Note operations act on
// the current patient and fail with [ErrNoCurrentPatient] when none is
// selected. Searches report absence with a nil result, not an error.
type Controller interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool

	CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error)
	SearchPatient(ctx context.Context, phn int64) (*models.Patient, error)
	RetrievePatients(ctx context.Context, name string) ([]models.Patient, error)
	// UpdatePatient replaces the record stored under phn with patient. A
	// different patient.PHN renames the record.
	UpdatePatient(ctx context.Context, phn int64, patient models.Patient) error
	DeletePatient(ctx context.Context, phn int64) error
	ListPatients(ctx context.Context) ([]models.Patient, error)

	SetCurrentPatient(ctx context.Context, phn int64) error
	GetCurrentPatient(ctx context.Context) (*models.Patient, error)
	UnsetCurrentPatient(ctx context.Context) error

	CreateNote(ctx context.Context, text string) (models.Note, error)
	SearchNote(ctx context.Context, code int64) (*models.Note, error)
	RetrieveNotes(ctx context.Context, text string) ([]models.Note, error)
	UpdateNote(ctx context.Context, code int64, text string) (bool, error)
	DeleteNote(ctx context.Context, code int64) (bool, error)
	// ListNotes returns the current patient's notes, newest first.
	ListNotes(ctx context.Context) ([]models.Note, error)
}

// SessionController is a [Controller] that owns its session and can expose
// it. The HTTP handler uses it to bind issued tokens to the session.
type SessionController interface {
	Controller
	Session(ctx context.Context) (models.Session, bool)
}

// TokenService issues and verifies the bearer tokens handed out by the HTTP
// API after a successful login.
type TokenService interface {
	CreateToken(ctx context.Context, session models.Session) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
