package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/store"
	"github.com/MKhiriev/go-clinic/internal/utils"
	"github.com/MKhiriev/go-clinic/models"
)

// controller is the in-process implementation of [SessionController].
//
// It guards the patient store with a single operator session and forwards
// note operations to the current patient's record. It is not safe for
// concurrent use.
type controller struct {
	// patients is the patient store every operation delegates to.
	patients *store.PatientStore

	// credentials maps usernames to stored password digests.
	credentials models.Credentials

	// session is the active session, nil when logged out.
	session *models.Session

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

// NewController constructs a controller over patients that authenticates
// against credentials. It starts logged out.
func NewController(patients *store.PatientStore, credentials models.Credentials, logger *logger.Logger) SessionController {
	if credentials == nil {
		credentials = models.Credentials{}
	}

	return &controller{
		patients:    patients,
		credentials: credentials,
		ids:         utils.NewUUIDGenerator(),
		now:         time.Now,
		logger:      logger,
	}
}

// Login opens a session for username.
//
// Returns:
//   - ErrDuplicateLogin if a session is already active.
//   - ErrInvalidLogin if the username is unknown or the password does not
//     match its stored digest.
func (c *controller) Login(ctx context.Context, username, password string) error {
	log := logger.FromContext(ctx)

	if c.session != nil {
		log.Warn().Str("username", username).Msg("login attempted during active session")
		return ErrDuplicateLogin
	}

	digest, ok := c.credentials.Digest(username)
	if !ok || !utils.VerifyPassword(digest, password) {
		log.Warn().Str("username", username).Msg("invalid login")
		return ErrInvalidLogin
	}

	c.session = &models.Session{
		ID:        c.ids.Generate(),
		Username:  username,
		StartedAt: c.now(),
	}
	log.Info().Str("username", username).Str("session_id", c.session.ID).Msg("logged in")

	return nil
}

// Logout closes the active session. The current patient selection is kept.
func (c *controller) Logout(ctx context.Context) error {
	if c.session == nil {
		return ErrInvalidLogout
	}

	logger.FromContext(ctx).Info().Str("username", c.session.Username).Msg("logged out")
	c.session = nil

	return nil
}

func (c *controller) IsLoggedIn(_ context.Context) bool {
	return c.session != nil
}

// Session returns a copy of the active session.
func (c *controller) Session(_ context.Context) (models.Session, bool) {
	if c.session == nil {
		return models.Session{}, false
	}

	return *c.session, true
}

// CreatePatient adds a patient. An existing PHN fails with an error
// matching ErrIllegalOperation and leaves the stored record untouched.
func (c *controller) CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error) {
	if err := c.checkAccess(); err != nil {
		return models.Patient{}, err
	}

	if c.patientExists(patient.PHN) {
		return models.Patient{}, store.ErrPatientAlreadyExists
	}

	created, err := c.patients.Create(ctx, patient)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*controller.CreatePatient").Int64("phn", patient.PHN).Send()
		return models.Patient{}, fmt.Errorf("error creating patient: %w", err)
	}

	return created.Data(), nil
}

// SearchPatient returns the patient with the given PHN, or nil.
func (c *controller) SearchPatient(_ context.Context, phn int64) (*models.Patient, error) {
	if err := c.checkAccess(); err != nil {
		return nil, err
	}

	return patientData(c.patients.Search(phn)), nil
}

// RetrievePatients returns the patients whose name contains name, ignoring
// case, ordered by PHN.
func (c *controller) RetrievePatients(_ context.Context, name string) ([]models.Patient, error) {
	if err := c.checkAccess(); err != nil {
		return nil, err
	}

	return patientsData(c.patients.Retrieve(name)), nil
}

// UpdatePatient replaces the record stored under phn. It fails with an
// error matching ErrIllegalOperation when phn is absent, selected as the
// current patient, or when a rename collides with another record.
func (c *controller) UpdatePatient(ctx context.Context, phn int64, patient models.Patient) error {
	if err := c.checkAccess(); err != nil {
		return err
	}

	if !c.patientExists(phn) {
		return store.ErrPatientNotFound
	}

	if err := c.patients.Update(ctx, phn, patient); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*controller.UpdatePatient").Int64("phn", phn).Send()
		return fmt.Errorf("error updating patient: %w", err)
	}

	return nil
}

// DeletePatient removes the record stored under phn. It fails with an error
// matching ErrIllegalOperation when phn is absent or selected as the current
// patient.
func (c *controller) DeletePatient(ctx context.Context, phn int64) error {
	if err := c.checkAccess(); err != nil {
		return err
	}

	if !c.patientExists(phn) {
		return store.ErrPatientNotFound
	}

	if err := c.patients.Delete(ctx, phn); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*controller.DeletePatient").Int64("phn", phn).Send()
		return fmt.Errorf("error deleting patient: %w", err)
	}

	return nil
}

func (c *controller) ListPatients(_ context.Context) ([]models.Patient, error) {
	if err := c.checkAccess(); err != nil {
		return nil, err
	}

	return patientsData(c.patients.List()), nil
}

func (c *controller) SetCurrentPatient(_ context.Context, phn int64) error {
	if err := c.checkAccess(); err != nil {
		return err
	}

	return c.patients.SetCurrent(phn)
}

func (c *controller) GetCurrentPatient(_ context.Context) (*models.Patient, error) {
	if err := c.checkAccess(); err != nil {
		return nil, err
	}

	return patientData(c.patients.Current()), nil
}

func (c *controller) UnsetCurrentPatient(_ context.Context) error {
	if err := c.checkAccess(); err != nil {
		return err
	}

	c.patients.UnsetCurrent()
	return nil
}

func (c *controller) CreateNote(ctx context.Context, text string) (models.Note, error) {
	record, err := c.currentRecord()
	if err != nil {
		return models.Note{}, err
	}

	note, err := record.CreateNote(ctx, text)
	if err != nil {
		return models.Note{}, fmt.Errorf("error creating note: %w", err)
	}

	return note, nil
}

func (c *controller) SearchNote(_ context.Context, code int64) (*models.Note, error) {
	record, err := c.currentRecord()
	if err != nil {
		return nil, err
	}

	return record.SearchNote(code), nil
}

func (c *controller) RetrieveNotes(_ context.Context, text string) ([]models.Note, error) {
	record, err := c.currentRecord()
	if err != nil {
		return nil, err
	}

	return record.RetrieveNotes(text), nil
}

// UpdateNote replaces the text of a note of the current patient. It reports
// false when the code is unknown.
func (c *controller) UpdateNote(ctx context.Context, code int64, text string) (bool, error) {
	record, err := c.currentRecord()
	if err != nil {
		return false, err
	}

	updated, err := record.UpdateNote(ctx, code, text)
	if err != nil {
		return updated, fmt.Errorf("error updating note: %w", err)
	}

	return updated, nil
}

// DeleteNote removes a note of the current patient. It reports false when
// the code is unknown.
func (c *controller) DeleteNote(ctx context.Context, code int64) (bool, error) {
	record, err := c.currentRecord()
	if err != nil {
		return false, err
	}

	deleted, err := record.DeleteNote(ctx, code)
	if err != nil {
		return deleted, fmt.Errorf("error deleting note: %w", err)
	}

	return deleted, nil
}

func (c *controller) ListNotes(_ context.Context) ([]models.Note, error) {
	record, err := c.currentRecord()
	if err != nil {
		return nil, err
	}

	return record.ListNotes(), nil
}

func (c *controller) checkAccess() error {
	if c.session == nil {
		return ErrIllegalAccess
	}

	return nil
}

// patientExists probes the store; absence is the expected negative answer.
func (c *controller) patientExists(phn int64) bool {
	return c.patients.Search(phn) != nil
}

func (c *controller) currentRecord() (*store.PatientRecord, error) {
	if err := c.checkAccess(); err != nil {
		return nil, err
	}

	current := c.patients.Current()
	if current == nil {
		return nil, ErrNoCurrentPatient
	}

	return current.Record(), nil
}

func patientData(p *store.Patient) *models.Patient {
	if p == nil {
		return nil
	}

	data := p.Data()
	return &data
}

func patientsData(patients []*store.Patient) []models.Patient {
	list := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		list = append(list, p.Data())
	}

	return list
}
