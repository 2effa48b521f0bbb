package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/internal/store"
	"github.com/MKhiriev/go-clinic/models"
)

func loadedPatients(t *testing.T, controller service.Controller) *PatientsModel {
	t.Helper()
	m := NewPatientsModel(context.Background(), controller)
	m.Update(patientsLoadedMsg{patients: []models.Patient{sallyJones, tomJones}, current: &tomJones})
	return m
}

func TestPatientsModel_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("lists all without a filter", func(t *testing.T) {
		controller := newController(t)
		controller.EXPECT().ListPatients(gomock.Any()).Return([]models.Patient{sallyJones, tomJones}, nil)
		controller.EXPECT().GetCurrentPatient(gomock.Any()).Return(nil, nil)

		m := NewPatientsModel(ctx, controller)
		msg := exec(t, m.cmdLoad())
		assert.Equal(t, patientsLoadedMsg{patients: []models.Patient{sallyJones, tomJones}}, msg)

		m.Update(msg)
		view := m.View()
		assert.Contains(t, view, "Current patient: none")
		assert.Contains(t, view, "Sally Jones")
		assert.Contains(t, view, "9798884444")
	})

	t.Run("retrieves by name with a filter", func(t *testing.T) {
		controller := newController(t)
		controller.EXPECT().RetrievePatients(gomock.Any(), "jones").Return([]models.Patient{tomJones}, nil)
		controller.EXPECT().GetCurrentPatient(gomock.Any()).Return(&tomJones, nil)

		m := NewPatientsModel(ctx, controller)
		m.Update(runeKey("/"))
		require.True(t, m.capturesInput())
		m.search.SetValue(" jones ")

		_, cmd := m.Update(typeKey(tea.KeyEnter))
		assert.False(t, m.capturesInput())
		assert.Equal(t, "jones", m.filter)

		m.Update(exec(t, cmd))
		assert.Contains(t, m.View(), "* Tom Jones")
		assert.Contains(t, m.View(), `Filter: "jones"`)
	})

	t.Run("failure is shown", func(t *testing.T) {
		controller := newController(t)
		controller.EXPECT().ListPatients(gomock.Any()).Return(nil, errors.New("dial tcp: connection refused"))

		m := NewPatientsModel(ctx, controller)
		m.Update(exec(t, m.cmdLoad()))
		assert.Equal(t, "Network is down or the server is unavailable", m.errMsg)
	})
}

func TestPatientsModel_Navigation(t *testing.T) {
	m := loadedPatients(t, newController(t))

	m.Update(runeKey("j"))
	assert.Equal(t, 1, m.idx)
	m.Update(typeKey(tea.KeyDown))
	assert.Equal(t, 1, m.idx)
	m.Update(runeKey("k"))
	assert.Equal(t, 0, m.idx)

	m.Update(typeKey(tea.KeyEnter))
	require.True(t, m.detail)
	assert.Contains(t, m.View(), "sally.jones@gmail.com")
	m.Update(typeKey(tea.KeyEsc))
	assert.False(t, m.detail)
}

func TestPatientsModel_OpenForms(t *testing.T) {
	m := loadedPatients(t, newController(t))

	_, cmd := m.Update(runeKey("n"))
	assert.Equal(t, newPatientMsg{}, navigation(t, cmd, pagePatientForm))

	_, cmd = m.Update(runeKey("e"))
	assert.Equal(t, editPatientMsg{patient: sallyJones}, navigation(t, cmd, pagePatientForm))

	_, cmd = m.Update(runeKey("o"))
	assert.Equal(t, reloadNotesMsg{}, navigation(t, cmd, pageNotes))
}

func TestPatientsModel_Delete(t *testing.T) {
	controller := newController(t)
	controller.EXPECT().DeletePatient(gomock.Any(), sallyJones.PHN).Return(nil)
	controller.EXPECT().ListPatients(gomock.Any()).Return([]models.Patient{tomJones}, nil)
	controller.EXPECT().GetCurrentPatient(gomock.Any()).Return(&tomJones, nil)

	m := loadedPatients(t, controller)

	m.Update(typeKey(tea.KeyCtrlD))
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), `Delete patient "Sally Jones" (PHN 9792226666)?`)

	_, cmd := m.Update(runeKey("y"))
	assert.Nil(t, m.confirm)

	_, cmd = m.Update(exec(t, cmd))
	assert.Equal(t, "Patient 9792226666 deleted", m.status)

	m.Update(exec(t, cmd))
	assert.Len(t, m.patients, 1)
	assert.Equal(t, 0, m.idx)
}

func TestPatientsModel_DeleteCancelled(t *testing.T) {
	m := loadedPatients(t, newController(t))

	m.Update(typeKey(tea.KeyCtrlD))
	_, cmd := m.Update(runeKey("n"))
	assert.Nil(t, cmd)
	assert.Nil(t, m.confirm)
}

func TestPatientsModel_DeleteCurrentIsRejected(t *testing.T) {
	m := loadedPatients(t, newController(t))

	m.Update(patientDeletedMsg{phn: tomJones.PHN, err: store.ErrPatientIsCurrent})
	assert.Equal(t, store.ErrPatientIsCurrent.Error(), m.errMsg)
	assert.Empty(t, m.status)
}

func TestPatientsModel_CurrentPatient(t *testing.T) {
	controller := newController(t)
	controller.EXPECT().SetCurrentPatient(gomock.Any(), sallyJones.PHN).Return(nil)
	controller.EXPECT().UnsetCurrentPatient(gomock.Any()).Return(nil)

	m := loadedPatients(t, controller)

	_, cmd := m.Update(runeKey("s"))
	assert.Equal(t, currentChangedMsg{status: "Sally Jones is the current patient"}, exec(t, cmd))

	_, cmd = m.Update(runeKey("u"))
	assert.Equal(t, currentChangedMsg{status: "No current patient"}, exec(t, cmd))
}

func TestPatientsModel_CopyPHN(t *testing.T) {
	var copied string
	original := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = original })

	m := loadedPatients(t, newController(t))
	m.Update(runeKey("c"))

	assert.Equal(t, "9792226666", copied)
	assert.Equal(t, "PHN copied", m.status)
}

func TestPatientsModel_Logout(t *testing.T) {
	controller := newController(t)
	controller.EXPECT().Logout(gomock.Any()).Return(nil)

	m := loadedPatients(t, controller)

	_, cmd := m.Update(runeKey("l"))
	_, cmd = m.Update(exec(t, cmd))
	assert.Equal(t, sessionEndedMsg{status: "Logged out"}, navigation(t, cmd, pageLogin))
	assert.Empty(t, m.patients)
}

func TestPatientsModel_LogoutFailure(t *testing.T) {
	m := loadedPatients(t, newController(t))

	_, cmd := m.Update(loggedOutMsg{err: service.ErrInvalidLogout})
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.errMsg)
}
