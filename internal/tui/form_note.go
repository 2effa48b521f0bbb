package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-clinic/internal/service"
)

// NoteFormModel writes a new note for the current patient or rewrites the
// text of an existing one.
type NoteFormModel struct {
	ctx        context.Context
	controller service.Controller

	// editing is the code of the note being edited, zero when creating.
	editing int64

	text       textarea.Model
	submitting bool
	errMsg     string
}

func NewNoteFormModel(ctx context.Context, controller service.Controller) *NoteFormModel {
	m := &NoteFormModel{ctx: ctx, controller: controller}
	m.setup("")
	return m
}

func (m *NoteFormModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *NoteFormModel) capturesInput() bool {
	return true
}

func (m *NoteFormModel) setup(text string) {
	ta := textarea.New()
	ta.Placeholder = "Note text"
	ta.SetWidth(60)
	ta.SetHeight(8)
	ta.CharLimit = 0
	ta.SetValue(text)
	ta.Focus()

	m.text = ta
	m.submitting = false
	m.errMsg = ""
}

func (m *NoteFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case newNoteMsg:
		m.editing = 0
		m.setup("")
		return m, textarea.Blink

	case editNoteMsg:
		m.editing = msg.note.Code
		m.setup(msg.note.Text)
		return m, textarea.Blink

	case noteSavedMsg:
		m.submitting = false
		switch {
		case msg.err != nil:
			m.errMsg = errorText(msg.err)
			return m, nil
		case !msg.found:
			return m, navigate(pageNotes, reloadNotesMsg{status: "Note no longer exists"})
		}
		return m, navigate(pageNotes, reloadNotesMsg{status: "Note saved"})

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate(pageNotes, reloadNotesMsg{})
		case key.Matches(msg, keys.save):
			if m.submitting {
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdSave(strings.TrimRight(m.text.Value(), "\n"))
		}
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

func (m *NoteFormModel) View() string {
	var b strings.Builder
	b.WriteString(m.text.View())
	b.WriteString("\n")
	if m.submitting {
		b.WriteString("\n[Saving...]\n")
	}
	renderFeedback(&b, "", m.errMsg)

	title := "NEW NOTE"
	if m.editing != 0 {
		title = fmt.Sprintf("EDIT NOTE #%d", m.editing)
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "ctrl+s: save │ esc: cancel")
}

func (m *NoteFormModel) cmdSave(text string) tea.Cmd {
	ctx, controller, editing := m.ctx, m.controller, m.editing

	return func() tea.Msg {
		if editing == 0 {
			_, err := controller.CreateNote(ctx, text)
			return noteSavedMsg{found: true, err: err}
		}

		found, err := controller.UpdateNote(ctx, editing, text)
		return noteSavedMsg{found: found, err: err}
	}
}
