package store

import (
	"context"

	"github.com/MKhiriev/go-clinic/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// PatientPersister loads and dumps the whole patient collection.
//
// Every dump is a full rewrite: the persisted state after DumpPatients is
// exactly the slice passed in.
type PatientPersister interface {
	// LoadPatients returns every persisted patient. An absent backing
	// location yields an empty slice and no error.
	LoadPatients(ctx context.Context) ([]models.Patient, error)

	// DumpPatients replaces the persisted collection with patients.
	DumpPatients(ctx context.Context, patients []models.Patient) error
}

// NotePersister loads and dumps the note list of a single patient, keyed by
// the patient's PHN.
type NotePersister interface {
	// LoadNotes returns the persisted notes of phn in storage order. An
	// absent backing location yields an empty slice and no error.
	LoadNotes(ctx context.Context, phn int64) ([]models.Note, error)

	// DumpNotes replaces the persisted notes of phn with notes.
	DumpNotes(ctx context.Context, phn int64, notes []models.Note) error

	// DeleteNotes removes every persisted note of phn. Removing notes that
	// were never persisted is not an error.
	DeleteNotes(ctx context.Context, phn int64) error
}
