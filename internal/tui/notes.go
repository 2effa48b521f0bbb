package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/models"
)

const timestampLayout = "2006-01-02 15:04"

// NotesModel shows the notes of the current patient and drives note search, creation, editing and deletion.
type NotesModel struct {
	ctx        context.Context
	controller service.Controller

	patient *models.Patient
	notes   []models.Note
	idx     int
	loading bool

	detail    bool
	searching bool
	search    textinput.Model
	filter    string
	confirm   *confirmModel

	status string
	errMsg string
}

func NewNotesModel(ctx context.Context, controller service.Controller) *NotesModel {
	search := textinput.New()
	search.Placeholder = "text to find"
	search.Width = 40

	return &NotesModel{ctx: ctx, controller: controller, search: search}
}

func (m *NotesModel) Init() tea.Cmd {
	m.loading = true
	return m.cmdLoad()
}

func (m *NotesModel) capturesInput() bool {
	return m.searching
}

func (m *NotesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reloadNotesMsg:
		m.status, m.errMsg = msg.status, ""
		m.detail, m.confirm = false, nil
		return m, m.Init()

	case notesLoadedMsg:
		m.loading = false
		m.patient = msg.patient
		if msg.err != nil {
			m.notes = nil
			m.errMsg = errorText(msg.err)
			return m, nil
		}
		m.notes = msg.notes
		if m.idx >= len(m.notes) {
			m.idx = len(m.notes) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case noteDeletedMsg:
		switch {
		case msg.err != nil:
			m.status, m.errMsg = "", errorText(msg.err)
			return m, nil
		case !msg.found:
			m.status, m.errMsg = "", "Note no longer exists"
		default:
			m.status, m.errMsg = "Note deleted", ""
		}
		return m, m.cmdLoad()

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

func (m *NotesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.notes)-1 {
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
		m.reset()
		return m, navigate(pagePatients, reloadPatientsMsg{})
	case key.Matches(msg, keys.newItem):
		if m.patient == nil {
			m.errMsg = errorText(service.ErrNoCurrentPatient)
			return m, nil
		}
		return m, navigate(pageNoteForm, newNoteMsg{})
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	default:
		return m.updateSelected(msg)
	}

	return m, nil
}

func (m *NotesModel) updateSelected(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.edit):
		m.detail = false
		return m, navigate(pageNoteForm, editNoteMsg{note: n})
	case key.Matches(msg, keys.delete):
		m.confirm = &confirmModel{message: fmt.Sprintf("note #%d", n.Code)}
	case key.Matches(msg, keys.copy):
		if err := copyToClipboard(n.Text); err != nil {
			m.errMsg = fmt.Sprintf("Copy failed: %v", err)
			return m, nil
		}
		m.status, m.errMsg = "Note copied", ""
	}

	return m, nil
}

func (m *NotesModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.esc) || key.Matches(msg, keys.enter) {
		m.detail = false
		return m, nil
	}

	return m.updateSelected(msg)
}

func (m *NotesModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirm, m.detail = nil, false
		if n, ok := m.selected(); ok {
			return m, m.cmdDelete(n.Code)
		}
	case key.Matches(msg, keys.no):
		m.confirm = nil
	}

	return m, nil
}

func (m *NotesModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, keys.enter):
		m.searching = false
		m.search.Blur()
		m.filter = m.search.Value()
		m.idx = 0
		m.loading = true
		return m, m.cmdLoad()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *NotesModel) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}
	if m.detail {
		return m.viewDetail()
	}

	var b strings.Builder

	if m.patient != nil {
		b.WriteString(currentStyle.Render(fmt.Sprintf("%s (PHN %d)", m.patient.Name, m.patient.PHN)))
		b.WriteString("\n")
	}
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
		b.WriteString("Loading...\n")
	case len(m.notes) == 0 && m.errMsg == "":
		b.WriteString("No notes\n")
	case len(m.notes) > 0:
		rows := [][]string{{"#", "Time", "Text"}}
		for _, n := range m.notes {
			rows = append(rows, []string{strconv.FormatInt(n.Code, 10), n.Timestamp.Local().Format(timestampLayout), fitText(firstLine(n.Text), 48)})
		}
		b.WriteString(renderTable(rows, m.idx))
		b.WriteString("\n")
	}

	renderFeedback(&b, m.status, m.errMsg)

	hotKeys := "enter: open │ /: search │ n: new │ e: edit │ ctrl+d: delete │ c: copy │ esc: back │ q: quit"
	if m.searching {
		hotKeys = "enter: search │ esc: cancel"
	}

	return renderPage("NOTES", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *NotesModel) viewDetail() string {
	n, ok := m.selected()
	if !ok {
		return renderPage("NOTE", "", "esc: back")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Note #%d, %s\n\n", n.Code, n.Timestamp.Local().Format(timestampLayout)))
	b.WriteString(n.Text)
	b.WriteString("\n")
	renderFeedback(&b, m.status, m.errMsg)

	return renderPage("NOTE", strings.TrimRight(b.String(), "\n"), "esc: back │ e: edit │ ctrl+d: delete │ c: copy")
}

func (m *NotesModel) selected() (models.Note, bool) {
	if len(m.notes) == 0 || m.idx < 0 || m.idx >= len(m.notes) {
		return models.Note{}, false
	}
	return m.notes[m.idx], true
}

func (m *NotesModel) reset() {
	m.patient, m.notes = nil, nil
	m.idx = 0
	m.detail, m.searching, m.confirm = false, false, nil
	m.filter = ""
	m.search.SetValue("")
	m.status, m.errMsg = "", ""
}

func (m *NotesModel) cmdLoad() tea.Cmd {
	ctx, controller, filter := m.ctx, m.controller, m.filter

	return func() tea.Msg {
		patient, err := controller.GetCurrentPatient(ctx)
		if err != nil {
			return notesLoadedMsg{err: err}
		}

		var notes []models.Note
		if filter != "" {
			notes, err = controller.RetrieveNotes(ctx, filter)
		} else {
			notes, err = controller.ListNotes(ctx)
		}
		return notesLoadedMsg{patient: patient, notes: notes, err: err}
	}
}

func (m *NotesModel) cmdDelete(code int64) tea.Cmd {
	ctx, controller := m.ctx, m.controller

	return func() tea.Msg {
		found, err := controller.DeleteNote(ctx, code)
		return noteDeletedMsg{found: found, err: err}
	}
}
