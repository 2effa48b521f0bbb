package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/models"
)

// PatientsModel lists patients and drives every patient-level operation:
// search by name, create, edit, delete, current patient selection and
// logout.
type PatientsModel struct {
	ctx        context.Context
	controller service.Controller

	patients []models.Patient
	current  *models.Patient
	idx      int

	loading bool
	spinner spinner.Model

	detail    bool
	searching bool
	search    textinput.Model
	filter    string
	confirm   *confirmModel

	status string
	errMsg string
}

func NewPatientsModel(ctx context.Context, controller service.Controller) *PatientsModel {
	search := textinput.New()
	search.Placeholder = "part of a name"
	search.Width = 40

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &PatientsModel{
		ctx:        ctx,
		controller: controller,
		search:     search,
		spinner:    s,
	}
}

func (m *PatientsModel) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.cmdLoad(), m.spinner.Tick)
}

func (m *PatientsModel) capturesInput() bool {
	return m.searching
}

func (m *PatientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reloadPatientsMsg:
		m.status, m.errMsg = msg.status, ""
		m.detail, m.confirm = false, nil
		return m, m.Init()

	case patientsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.patients = msg.patients
		m.current = msg.current
		m.clampIndex()
		return m, nil

	case patientDeletedMsg:
		if msg.err != nil {
			m.status, m.errMsg = "", errorText(msg.err)
			return m, nil
		}
		m.status, m.errMsg = fmt.Sprintf("Patient %d deleted", msg.phn), ""
		return m, m.cmdLoad()

	case currentChangedMsg:
		if msg.err != nil {
			m.status, m.errMsg = "", errorText(msg.err)
			return m, nil
		}
		m.status, m.errMsg = msg.status, ""
		return m, m.cmdLoad()

	case loggedOutMsg:
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.reset()
		return m, navigate(pageLogin, sessionEndedMsg{status: "Logged out"})

	case tea.KeyMsg:
		switch {
		case m.confirm != nil:
			return m.updateConfirm(msg)
		case m.searching:
			return m.updateSearch(msg)
		case m.detail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m *PatientsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.patients)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		if _, ok := m.selected(); ok {
			m.detail = true
		}
	case key.Matches(msg, keys.search):
		m.searching = true
		m.search.SetValue(m.filter)
		return m, m.search.Focus()
	case key.Matches(msg, keys.esc):
		if m.filter != "" {
			m.filter = ""
			return m, m.cmdLoad()
		}
	case key.Matches(msg, keys.newItem):
		return m, navigate(pagePatientForm, newPatientMsg{})
	case key.Matches(msg, keys.current):
		if p, ok := m.selected(); ok {
			return m, m.cmdSetCurrent(p)
		}
	case key.Matches(msg, keys.uncurrent):
		return m, m.cmdUnsetCurrent()
	case key.Matches(msg, keys.notes):
		return m, navigate(pageNotes, reloadNotesMsg{})
	case key.Matches(msg, keys.logout):
		return m, m.cmdLogout()
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	default:
		return m.updateSelected(msg)
	}

	return m, nil
}

// updateSelected handles the keys acting on the selected patient, shared by
// the list and the detail view.
func (m *PatientsModel) updateSelected(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.edit):
		m.detail = false
		return m, navigate(pagePatientForm, editPatientMsg{patient: p})
	case key.Matches(msg, keys.delete):
		m.confirm = &confirmModel{message: fmt.Sprintf("patient %q (PHN %d)", p.Name, p.PHN)}
	case key.Matches(msg, keys.copy):
		if err := copyToClipboard(strconv.FormatInt(p.PHN, 10)); err != nil {
			m.errMsg = fmt.Sprintf("Copy failed: %v", err)
			return m, nil
		}
		m.status, m.errMsg = "PHN copied", ""
	}

	return m, nil
}

func (m *PatientsModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.enter):
		m.detail = false
		return m, nil
	case key.Matches(msg, keys.current):
		if p, ok := m.selected(); ok {
			return m, m.cmdSetCurrent(p)
		}
		return m, nil
	}

	return m.updateSelected(msg)
}

func (m *PatientsModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirm, m.detail = nil, false
		if p, ok := m.selected(); ok {
			return m, m.cmdDelete(p.PHN)
		}
	case key.Matches(msg, keys.no):
		m.confirm = nil
	}

	return m, nil
}

func (m *PatientsModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, keys.enter):
		m.searching = false
		m.search.Blur()
		m.filter = strings.TrimSpace(m.search.Value())
		m.idx = 0
		m.loading = true
		return m, m.cmdLoad()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *PatientsModel) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}
	if m.detail {
		return m.viewDetail()
	}

	var b strings.Builder

	b.WriteString("Current patient: ")
	if m.current != nil {
		b.WriteString(currentStyle.Render(fmt.Sprintf("%s (PHN %d)", m.current.Name, m.current.PHN)))
	} else {
		b.WriteString("none")
	}
	b.WriteString("\n")

	if m.searching {
		b.WriteString("Search: [")
		b.WriteString(m.search.View())
		b.WriteString("]\n")
	} else if m.filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %q (esc: clear)\n", m.filter))
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...\n")
	case len(m.patients) == 0:
		b.WriteString("No patients\n")
	default:
		rows := [][]string{{"PHN", "Name", "Birth date", "Phone"}}
		for _, p := range m.patients {
			name := fitText(p.Name, 32)
			if m.current != nil && m.current.PHN == p.PHN {
				name = "* " + name
			}
			rows = append(rows, []string{strconv.FormatInt(p.PHN, 10), name, valueOrDash(p.BirthDate), valueOrDash(p.Phone)})
		}
		b.WriteString(renderTable(rows, m.idx))
		b.WriteString("\n")
	}

	renderFeedback(&b, m.status, m.errMsg)

	hotKeys := "enter: open │ /: search │ n: new │ e: edit │ ctrl+d: delete │ s: set current │ u: unset │ o: notes │ c: copy PHN │ l: logout │ v: version │ q: quit"
	if m.searching {
		hotKeys = "enter: search │ esc: cancel"
	}

	return renderPage("PATIENTS", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *PatientsModel) viewDetail() string {
	p, ok := m.selected()
	if !ok {
		return renderPage("PATIENT", "", "esc: back")
	}

	rows := [][]string{
		{"Field", "Value"},
		{"PHN", strconv.FormatInt(p.PHN, 10)},
		{"Name", valueOrDash(p.Name)},
		{"Birth date", valueOrDash(p.BirthDate)},
		{"Phone", valueOrDash(p.Phone)},
		{"Email", valueOrDash(p.Email)},
		{"Address", valueOrDash(p.Address)},
	}

	var b strings.Builder
	b.WriteString(renderTable(rows, -1))
	b.WriteString("\n")
	if m.current != nil && m.current.PHN == p.PHN {
		b.WriteString("\n")
		b.WriteString(currentStyle.Render("This is the current patient"))
		b.WriteString("\n")
	}
	renderFeedback(&b, m.status, m.errMsg)

	return renderPage("PATIENT", strings.TrimRight(b.String(), "\n"), "esc: back │ e: edit │ ctrl+d: delete │ s: set current │ c: copy PHN")
}

func (m *PatientsModel) selected() (models.Patient, bool) {
	if len(m.patients) == 0 || m.idx < 0 || m.idx >= len(m.patients) {
		return models.Patient{}, false
	}
	return m.patients[m.idx], true
}

func (m *PatientsModel) clampIndex() {
	if m.idx >= len(m.patients) {
		m.idx = len(m.patients) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *PatientsModel) reset() {
	m.patients, m.current = nil, nil
	m.idx = 0
	m.detail, m.searching, m.confirm = false, false, nil
	m.filter = ""
	m.search.SetValue("")
	m.status, m.errMsg = "", ""
}

func (m *PatientsModel) cmdLoad() tea.Cmd {
	ctx, controller, filter := m.ctx, m.controller, m.filter

	return func() tea.Msg {
		var (
			patients []models.Patient
			err      error
		)
		if filter != "" {
			patients, err = controller.RetrievePatients(ctx, filter)
		} else {
			patients, err = controller.ListPatients(ctx)
		}
		if err != nil {
			return patientsLoadedMsg{err: err}
		}

		current, err := controller.GetCurrentPatient(ctx)
		return patientsLoadedMsg{patients: patients, current: current, err: err}
	}
}

func (m *PatientsModel) cmdDelete(phn int64) tea.Cmd {
	ctx, controller := m.ctx, m.controller

	return func() tea.Msg {
		return patientDeletedMsg{phn: phn, err: controller.DeletePatient(ctx, phn)}
	}
}

func (m *PatientsModel) cmdSetCurrent(p models.Patient) tea.Cmd {
	ctx, controller := m.ctx, m.controller

	return func() tea.Msg {
		err := controller.SetCurrentPatient(ctx, p.PHN)
		return currentChangedMsg{status: p.Name + " is the current patient", err: err}
	}
}

func (m *PatientsModel) cmdUnsetCurrent() tea.Cmd {
	ctx, controller := m.ctx, m.controller

	return func() tea.Msg {
		return currentChangedMsg{status: "No current patient", err: controller.UnsetCurrentPatient(ctx)}
	}
}

func (m *PatientsModel) cmdLogout() tea.Cmd {
	ctx, controller := m.ctx, m.controller

	return func() tea.Msg {
		return loggedOutMsg{err: controller.Logout(ctx)}
	}
}
