// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-clinic/internal/service"
)

// LoginModel is the Bubble Tea model for the login screen. It renders two
// text inputs (username and password) and dispatches an async login command
// on submission. On success it opens the patient list.
type LoginModel struct {
	ctx        context.Context
	controller service.Controller

	inputs     []textinput.Model
	focus      int
	submitting bool
	status     string
	errMsg     string
}

// NewLoginModel creates a [LoginModel] with the username input focused and
// a masked password input.
func NewLoginModel(ctx context.Context, controller service.Controller) *LoginModel {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "username"
	usernameInput.CharLimit = 64
	usernameInput.Width = 40
	usernameInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &LoginModel{
		ctx:        ctx,
		controller: controller,
		inputs:     []textinput.Model{usernameInput, passwordInput},
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) capturesInput() bool {
	return true
}

// Update implements [tea.Model]. Handled messages:
//   - sessionEndedMsg: resets the form and shows why the session ended.
//   - loginResultMsg: opens the patient list or shows the error.
//   - tab, shift+tab: move focus between the inputs.
//   - enter: validates the inputs and dispatches the login command.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEndedMsg:
		m.reset()
		m.status, m.errMsg = msg.status, msg.errMsg
		return m, textinput.Blink

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = errorText(msg.err)
			m.inputs[1].SetValue("")
			return m, nil
		}

		username := msg.username
		m.reset()
		return m, navigate(pagePatients, reloadPatientsMsg{status: "Logged in as " + username})

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.tab):
			m.focusNext()
			return m, nil
		case key.Matches(msg, keys.backtab):
			m.focusPrev()
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}

			username := strings.TrimSpace(m.inputs[0].Value())
			password := m.inputs[1].Value()
			if username == "" || password == "" {
				m.errMsg = "Username and password are required"
				return m, nil
			}

			m.status, m.errMsg = "", ""
			m.submitting = true
			return m, m.cmdLogin(username, password)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	b.WriteString("Username  │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Logging in...]\n")
	} else {
		b.WriteString("\n[Log in]\n")
	}

	renderFeedback(&b, m.status, m.errMsg)

	return renderPage("CLINIC LOGIN", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: log in")
}

func (m *LoginModel) cmdLogin(username, password string) tea.Cmd {
	ctx, controller := m.ctx, m.controller

	return func() tea.Msg {
		return loginResultMsg{username: username, err: controller.Login(ctx, username, password)}
	}
}

func (m *LoginModel) reset() {
	m.submitting = false
	m.status, m.errMsg = "", ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m *LoginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *LoginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
