package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-clinic/models"
)

// Page names known to the router.
const (
	pageLogin       = "login"
	pagePatients    = "patients"
	pagePatientForm = "patient_form"
	pageNotes       = "notes"
	pageNoteForm    = "note_form"
)

// NavigateTo switches the router to Page. A non-nil Payload is delivered to
// the page as its first message instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// failure is implemented by result messages carrying a controller error.
type failure interface {
	failure() error
}

type loginResultMsg struct {
	username string
	err      error
}

type loggedOutMsg struct {
	err error
}

type reloadPatientsMsg struct {
	status string
}

type patientsLoadedMsg struct {
	patients []models.Patient
	current  *models.Patient
	err      error
}

type newPatientMsg struct{}

type editPatientMsg struct {
	patient models.Patient
}

type patientSavedMsg struct {
	err error
}

type patientDeletedMsg struct {
	phn int64
	err error
}

type currentChangedMsg struct {
	status string
	err    error
}

type reloadNotesMsg struct {
	status string
}

type notesLoadedMsg struct {
	patient *models.Patient
	notes   []models.Note
	err     error
}

type newNoteMsg struct{}

type editNoteMsg struct {
	note models.Note
}

type noteSavedMsg struct {
	found bool
	err   error
}

type noteDeletedMsg struct {
	found bool
	err   error
}

type serverVersionMsg struct {
	info models.BuildInfoResponse
	err  error
}

func (m loginResultMsg) failure() error    { return m.err }
func (m loggedOutMsg) failure() error      { return m.err }
func (m patientsLoadedMsg) failure() error { return m.err }
func (m patientSavedMsg) failure() error   { return m.err }
func (m patientDeletedMsg) failure() error { return m.err }
func (m currentChangedMsg) failure() error { return m.err }
func (m notesLoadedMsg) failure() error    { return m.err }
func (m noteSavedMsg) failure() error      { return m.err }
func (m noteDeletedMsg) failure() error    { return m.err }

// sessionEndedMsg tells the login page why it was opened.
type sessionEndedMsg struct {
	status string
	errMsg string
}
