package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/models"
)

var patientValidator = validator.New(validator.WithRequiredStructEnabled())

// patient form field order
const (
	fieldPHN = iota
	fieldName
	fieldBirthDate
	fieldPhone
	fieldEmail
	fieldAddress
	fieldCount
)

var patientFieldLabels = [fieldCount]string{"PHN", "Name", "Birth date", "Phone", "Email", "Address"}

// PatientFormModel creates a patient or edits an existing one. Editing may
// change the PHN.
type PatientFormModel struct {
	ctx        context.Context
	controller service.Controller

	// editing is the PHN of the patient being edited, zero when creating.
	editing int64

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewPatientFormModel(ctx context.Context, controller service.Controller) *PatientFormModel {
	m := &PatientFormModel{ctx: ctx, controller: controller}
	m.setup(models.Patient{})
	return m
}

func (m *PatientFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *PatientFormModel) capturesInput() bool {
	return true
}

func (m *PatientFormModel) setup(p models.Patient) {
	placeholders := [fieldCount]string{"10 digits", "full name", "YYYY-MM-DD", "250 555 0100", "name@example.com", "street, city"}

	values := [fieldCount]string{"", p.Name, p.BirthDate, p.Phone, p.Email, p.Address}
	if p.PHN != 0 {
		values[fieldPHN] = strconv.FormatInt(p.PHN, 10)
	}

	m.inputs = make([]textinput.Model, fieldCount)
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Width = 40
		in.CharLimit = 256
		in.SetValue(values[i])
		m.inputs[i] = in
	}
	m.inputs[fieldPHN].CharLimit = 19

	m.focus = 0
	m.inputs[0].Focus()
	m.submitting = false
	m.errMsg = ""
}

func (m *PatientFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case newPatientMsg:
		m.editing = 0
		m.setup(models.Patient{})
		return m, textinput.Blink

	case editPatientMsg:
		m.editing = msg.patient.PHN
		m.setup(msg.patient)
		return m, textinput.Blink

	case patientSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		return m, navigate(pagePatients, reloadPatientsMsg{status: "Patient saved"})

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(pagePatients, reloadPatientsMsg{})
		case key.Matches(msg, keys.tab), msg.Type == tea.KeyDown:
			m.moveFocus(1)
			return m, nil
		case key.Matches(msg, keys.backtab), msg.Type == tea.KeyUp:
			m.moveFocus(-1)
			return m, nil
		case key.Matches(msg, keys.save), key.Matches(msg, keys.enter) && m.focus == fieldCount-1:
			return m.submit()
		case key.Matches(msg, keys.enter):
			m.moveFocus(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *PatientFormModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	patient, err := m.patient()
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.errMsg = ""
	m.submitting = true
	return m, m.cmdSave(patient)
}

// patient reads and validates the form.
func (m *PatientFormModel) patient() (models.Patient, error) {
	value := func(i int) string { return strings.TrimSpace(m.inputs[i].Value()) }

	phn, err := strconv.ParseInt(value(fieldPHN), 10, 64)
	if err != nil {
		return models.Patient{}, errors.New("PHN must be a number")
	}

	p := models.Patient{
		PHN:       phn,
		Name:      value(fieldName),
		BirthDate: value(fieldBirthDate),
		Phone:     value(fieldPhone),
		Email:     value(fieldEmail),
		Address:   value(fieldAddress),
	}

	if err = patientValidator.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return models.Patient{}, fmt.Errorf("%s is invalid", verrs[0].Field())
		}
		return models.Patient{}, err
	}

	return p, nil
}

func (m *PatientFormModel) View() string {
	var b strings.Builder
	b.WriteString("Field       │ Value\n")
	b.WriteString("────────────┼────────────────────────────────────────────\n")
	for i, in := range m.inputs {
		b.WriteString(fmt.Sprintf("%-11s │ [", patientFieldLabels[i]))
		b.WriteString(in.View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Saving...]\n")
	}
	renderFeedback(&b, "", m.errMsg)

	title := "NEW PATIENT"
	if m.editing != 0 {
		title = fmt.Sprintf("EDIT PATIENT %d", m.editing)
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "tab/↑/↓: move │ ctrl+s: save │ esc: cancel")
}

func (m *PatientFormModel) moveFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *PatientFormModel) cmdSave(p models.Patient) tea.Cmd {
	ctx, controller, editing := m.ctx, m.controller, m.editing

	return func() tea.Msg {
		if editing == 0 {
			_, err := controller.CreatePatient(ctx, p)
			return patientSavedMsg{err: err}
		}
		return patientSavedMsg{err: controller.UpdatePatient(ctx, editing, p)}
	}
}
