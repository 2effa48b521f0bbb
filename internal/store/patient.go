package store

import (
	"context"

	"github.com/MKhiriev/go-clinic/models"
)

// PatientRecord gives access to the clinical notes of one patient.
type PatientRecord struct {
	notes *NoteStore
}

// NewPatientRecord wraps the note store of a patient.
func NewPatientRecord(notes *NoteStore) *PatientRecord {
	return &PatientRecord{notes: notes}
}

func (r *PatientRecord) CreateNote(ctx context.Context, text string) (models.Note, error) {
	return r.notes.Create(ctx, text)
}

func (r *PatientRecord) SearchNote(code int64) *models.Note {
	return r.notes.Search(code)
}

func (r *PatientRecord) RetrieveNotes(text string) []models.Note {
	return r.notes.Retrieve(text)
}

func (r *PatientRecord) UpdateNote(ctx context.Context, code int64, text string) (bool, error) {
	return r.notes.Update(ctx, code, text)
}

func (r *PatientRecord) DeleteNote(ctx context.Context, code int64) (bool, error) {
	return r.notes.Delete(ctx, code)
}

func (r *PatientRecord) ListNotes() []models.Note {
	return r.notes.List()
}

// Patient is a demographic record together with the patient's record of
// notes. The record is created with the patient and never replaced.
type Patient struct {
	models.Patient
	record *PatientRecord
}

// Record returns the patient's record of notes.
func (p *Patient) Record() *PatientRecord {
	return p.record
}

// Data returns a copy of the demographic fields.
func (p *Patient) Data() models.Patient {
	return p.Patient
}
