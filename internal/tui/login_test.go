package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-clinic/internal/service"
)

func TestLoginModel_RequiresBothFields(t *testing.T) {
	m := NewLoginModel(context.Background(), newController(t))
	m.inputs[0].SetValue("user")

	_, cmd := m.Update(typeKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, "Username and password are required", m.errMsg)
	assert.False(t, m.submitting)
}

func TestLoginModel_Success(t *testing.T) {
	controller := newController(t)
	controller.EXPECT().Login(gomock.Any(), "user", "123456").Return(nil)

	m := NewLoginModel(context.Background(), controller)
	for _, r := range "user" {
		m.Update(runeKey(string(r)))
	}
	m.Update(typeKey(tea.KeyTab))
	m.inputs[1].SetValue("123456")

	_, cmd := m.Update(typeKey(tea.KeyEnter))
	require.True(t, m.submitting)
	assert.Contains(t, m.View(), "Logging in...")

	_, cmd = m.Update(exec(t, cmd))
	payload := navigation(t, cmd, pagePatients)
	assert.Equal(t, reloadPatientsMsg{status: "Logged in as user"}, payload)

	assert.Empty(t, m.inputs[0].Value())
	assert.Empty(t, m.inputs[1].Value())
	assert.Equal(t, 0, m.focus)
}

func TestLoginModel_InvalidLogin(t *testing.T) {
	controller := newController(t)
	controller.EXPECT().Login(gomock.Any(), "user", "wrong").Return(service.ErrInvalidLogin)

	m := NewLoginModel(context.Background(), controller)
	m.inputs[0].SetValue("user")
	m.inputs[1].SetValue("wrong")

	_, cmd := m.Update(typeKey(tea.KeyEnter))
	_, cmd = m.Update(exec(t, cmd))

	assert.Nil(t, cmd)
	assert.False(t, m.submitting)
	assert.Equal(t, "Invalid username or password", m.errMsg)
	assert.Equal(t, "user", m.inputs[0].Value())
	assert.Empty(t, m.inputs[1].Value())
	assert.Contains(t, m.View(), "Error: Invalid username or password")
}

func TestLoginModel_FocusWraps(t *testing.T) {
	m := NewLoginModel(context.Background(), newController(t))

	m.Update(typeKey(tea.KeyShiftTab))
	assert.Equal(t, 1, m.focus)
	m.Update(typeKey(tea.KeyTab))
	assert.Equal(t, 0, m.focus)
}

func TestLoginModel_SessionEnded(t *testing.T) {
	m := NewLoginModel(context.Background(), newController(t))
	m.inputs[0].SetValue("stale")

	m.Update(sessionEndedMsg{status: "Logged out"})
	assert.Empty(t, m.inputs[0].Value())
	assert.Contains(t, m.View(), "OK: Logged out")
}
