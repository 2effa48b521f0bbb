package store

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/models"
)

// PatientStore owns the patient collection keyed by PHN and the optional
// selection of a current patient.
//
// The current patient is held as a PHN and checked against the collection
// on every access, so it can never point at a removed record. With a
// [PatientPersister] configured, the whole collection is rewritten after
// every create, update and delete.
type PatientStore struct {
	patients map[int64]*Patient
	current  *int64

	patientPersister PatientPersister
	notePersister    NotePersister
	now              Clock
}

// PatientStoreOption configures a [PatientStore].
type PatientStoreOption func(*PatientStore)

// WithPatientPersister enables persistence of the patient collection.
func WithPatientPersister(p PatientPersister) PatientStoreOption {
	return func(s *PatientStore) {
		s.patientPersister = p
	}
}

// WithNotePersister enables persistence of every patient's notes.
func WithNotePersister(p NotePersister) PatientStoreOption {
	return func(s *PatientStore) {
		s.notePersister = p
	}
}

// WithClock sets the clock used to timestamp notes.
func WithClock(now Clock) PatientStoreOption {
	return func(s *PatientStore) {
		s.now = now
	}
}

// NewPatientStore constructs a patient store and loads the persisted
// collection, if any. Load failures are logged and the store starts empty.
func NewPatientStore(ctx context.Context, opts ...PatientStoreOption) *PatientStore {
	s := &PatientStore{
		patients: make(map[int64]*Patient),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.patientPersister == nil {
		return s
	}

	loaded, err := s.patientPersister.LoadPatients(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "store.NewPatientStore").
			Msg("error loading patients, starting empty")
		return s
	}

	for _, p := range loaded {
		s.patients[p.PHN] = s.newPatient(ctx, p)
	}
	logger.FromContext(ctx).Debug().
		Str("func", "store.NewPatientStore").
		Int("patients", len(s.patients)).
		Msg("patients loaded")

	return s
}

// Create adds a new patient. It fails with [ErrPatientAlreadyExists] when
// the PHN is taken.
func (s *PatientStore) Create(ctx context.Context, data models.Patient) (*Patient, error) {
	if _, ok := s.patients[data.PHN]; ok {
		return nil, ErrPatientAlreadyExists
	}

	if err := s.persist(ctx, s.candidate(data.PHN, &data)); err != nil {
		return nil, err
	}

	p := s.newPatient(ctx, data)
	s.patients[data.PHN] = p
	return p, nil
}

// Search returns the patient with the given PHN, or nil when absent.
func (s *PatientStore) Search(phn int64) *Patient {
	return s.patients[phn]
}

// Retrieve returns every patient whose name contains name, ignoring case.
// Nothing is persisted.
func (s *PatientStore) Retrieve(name string) []*Patient {
	needle := strings.ToLower(name)

	found := make([]*Patient, 0)
	for _, p := range s.List() {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			found = append(found, p)
		}
	}

	return found
}

// Update replaces the demographic fields of the patient stored under phn.
//
// When data.PHN differs from phn the patient is re-keyed and its notes move
// with it. Every precondition is checked before anything is modified:
// the patient must exist, must not be the current patient, and the new PHN
// must not belong to another patient. On a failed write the store is left
// as it was.
func (s *PatientStore) Update(ctx context.Context, phn int64, data models.Patient) error {
	p, ok := s.patients[phn]
	if !ok {
		return ErrPatientNotFound
	}
	if s.isCurrent(phn) {
		return ErrPatientIsCurrent
	}

	renamed := data.PHN != phn
	if _, taken := s.patients[data.PHN]; renamed && taken {
		return ErrPHNCollision
	}

	notes := p.record.notes
	if renamed {
		if err := notes.copyTo(ctx, data.PHN); err != nil {
			return fmt.Errorf("error re-keying notes: %w", err)
		}
	}

	if err := s.persist(ctx, s.candidate(phn, &data)); err != nil {
		if renamed {
			notes.discard(ctx, data.PHN)
		}
		return err
	}

	p.Patient = data
	if renamed {
		delete(s.patients, phn)
		s.patients[data.PHN] = p
		notes.moveTo(ctx, data.PHN)
	}

	return nil
}

// Delete removes the patient stored under phn together with its persisted
// notes. The current patient cannot be deleted.
func (s *PatientStore) Delete(ctx context.Context, phn int64) error {
	p, ok := s.patients[phn]
	if !ok {
		return ErrPatientNotFound
	}
	if s.isCurrent(phn) {
		return ErrPatientIsCurrent
	}

	if err := s.persist(ctx, s.candidate(phn, nil)); err != nil {
		return err
	}
	delete(s.patients, phn)

	if err := p.record.notes.purge(ctx); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*PatientStore.Delete").
			Int64("phn", phn).
			Msg("error removing notes of deleted patient")
	}

	return nil
}

// List returns every patient ordered by PHN.
func (s *PatientStore) List() []*Patient {
	list := make([]*Patient, 0, len(s.patients))
	for _, phn := range slices.Sorted(maps.Keys(s.patients)) {
		list = append(list, s.patients[phn])
	}

	return list
}

// SetCurrent selects the patient stored under phn.
func (s *PatientStore) SetCurrent(phn int64) error {
	if _, ok := s.patients[phn]; !ok {
		return ErrPatientNotFound
	}

	s.current = &phn
	return nil
}

// Current returns the selected patient, or nil when none is selected.
func (s *PatientStore) Current() *Patient {
	if s.current == nil {
		return nil
	}

	p, ok := s.patients[*s.current]
	if !ok {
		s.current = nil
		return nil
	}

	return p
}

// UnsetCurrent clears the selection.
func (s *PatientStore) UnsetCurrent() {
	s.current = nil
}

func (s *PatientStore) isCurrent(phn int64) bool {
	cur := s.Current()
	return cur != nil && cur.PHN == phn
}

func (s *PatientStore) newPatient(ctx context.Context, data models.Patient) *Patient {
	notes := NewNoteStore(ctx, data.PHN, s.notePersister, s.now)
	return &Patient{
		Patient: data,
		record:  NewPatientRecord(notes),
	}
}

// candidate lists the patient data ordered by PHN as it would be with the
// entry under phn replaced by data, or removed when data is nil.
func (s *PatientStore) candidate(phn int64, data *models.Patient) []models.Patient {
	list := make([]models.Patient, 0, len(s.patients)+1)
	for _, p := range s.patients {
		if p.PHN != phn {
			list = append(list, p.Patient)
		}
	}
	if data != nil {
		list = append(list, *data)
	}

	slices.SortFunc(list, func(a, b models.Patient) int {
		return cmp.Compare(a.PHN, b.PHN)
	})
	return list
}

func (s *PatientStore) persist(ctx context.Context, list []models.Patient) error {
	if s.patientPersister == nil {
		return nil
	}

	if err := s.patientPersister.DumpPatients(ctx, list); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*PatientStore.persist").
			Msg("error dumping patients")
		return fmt.Errorf("error persisting patients: %w", err)
	}

	return nil
}
