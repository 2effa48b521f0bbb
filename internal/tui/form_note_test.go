package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/models"
)

func TestNoteFormModel_Create(t *testing.T) {
	controller := newController(t)
	controller.EXPECT().CreateNote(gomock.Any(), "Fever").Return(models.Note{Code: 1, Text: "Fever"}, nil)

	m := NewNoteFormModel(context.Background(), controller)
	m.Update(newNoteMsg{})
	assert.Contains(t, m.View(), "NEW NOTE")

	for _, r := range "Fever" {
		m.Update(runeKey(string(r)))
	}

	_, cmd := m.Update(typeKey(tea.KeyCtrlS))
	require.True(t, m.submitting)

	_, cmd = m.Update(exec(t, cmd))
	assert.Equal(t, reloadNotesMsg{status: "Note saved"}, navigation(t, cmd, pageNotes))
}

func TestNoteFormModel_Edit(t *testing.T) {
	tests := []struct {
		name       string
		found      bool
		wantStatus string
	}{
		{name: "updated", found: true, wantStatus: "Note saved"},
		{name: "deleted meanwhile", found: false, wantStatus: "Note no longer exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := newController(t)
			controller.EXPECT().UpdateNote(gomock.Any(), headache.Code, headache.Text).Return(tt.found, nil)

			m := NewNoteFormModel(context.Background(), controller)
			m.Update(editNoteMsg{note: headache})
			assert.Equal(t, headache.Text, m.text.Value())
			assert.Contains(t, m.View(), "EDIT NOTE #2")

			_, cmd := m.Update(typeKey(tea.KeyCtrlS))
			_, cmd = m.Update(exec(t, cmd))
			assert.Equal(t, reloadNotesMsg{status: tt.wantStatus}, navigation(t, cmd, pageNotes))
		})
	}
}

func TestNoteFormModel_SaveFailure(t *testing.T) {
	m := NewNoteFormModel(context.Background(), newController(t))
	m.submitting = true

	_, cmd := m.Update(noteSavedMsg{err: service.ErrNoCurrentPatient})
	assert.Nil(t, cmd)
	assert.False(t, m.submitting)
	assert.Contains(t, m.View(), "Select a current patient first")
}

func TestNoteFormModel_Cancel(t *testing.T) {
	m := NewNoteFormModel(context.Background(), newController(t))

	_, cmd := m.Update(typeKey(tea.KeyEsc))
	assert.Equal(t, reloadNotesMsg{}, navigation(t, cmd, pageNotes))
}
