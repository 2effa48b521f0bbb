package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/models"
)

// stubPage records the messages it receives.
type stubPage struct {
	name      string
	capturing bool
	received  []tea.Msg
	inited    bool
}

func (p *stubPage) Init() tea.Cmd {
	p.inited = true
	return nil
}

func (p *stubPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p.received = append(p.received, msg)
	return p, nil
}

func (p *stubPage) View() string        { return "page " + p.name }
func (p *stubPage) capturesInput() bool { return p.capturing }

func newTestRoot(start string, versioner serverVersioner) (RootModel, map[string]*stubPage) {
	stubs := map[string]*stubPage{
		pageLogin:    {name: pageLogin, capturing: true},
		pagePatients: {name: pagePatients},
		pageNotes:    {name: pageNotes},
	}
	pages := make(map[string]tea.Model, len(stubs))
	for name, p := range stubs {
		pages[name] = p
	}

	return NewRootModel(context.Background(), pages, start, models.NewAppBuildInfo("v1.0.0", "2026-10-01", "abc1234"), versioner), stubs
}

func update(t *testing.T, r RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	next, cmd := r.Update(msg)
	root, ok := next.(RootModel)
	require.True(t, ok)
	return root, cmd
}

func TestRootModel_NavigateWithPayload(t *testing.T) {
	root, stubs := newTestRoot(pageLogin, nil)

	root, cmd := update(t, root, NavigateTo{Page: pagePatients, Payload: reloadPatientsMsg{status: "hi"}})
	assert.Equal(t, pagePatients, root.currentPage)
	assert.False(t, stubs[pagePatients].inited)

	payload := exec(t, cmd)
	assert.Equal(t, reloadPatientsMsg{status: "hi"}, payload)

	root, _ = update(t, root, payload)
	require.Len(t, stubs[pagePatients].received, 1)
	assert.Equal(t, "page patients", root.View())
}

func TestRootModel_NavigateWithoutPayloadInitsPage(t *testing.T) {
	root, stubs := newTestRoot(pageLogin, nil)

	root, _ = update(t, root, NavigateTo{Page: pageNotes})
	assert.Equal(t, pageNotes, root.currentPage)
	assert.True(t, stubs[pageNotes].inited)
}

func TestRootModel_NavigateUnknownPage(t *testing.T) {
	root, _ := newTestRoot(pageLogin, nil)

	root, cmd := update(t, root, NavigateTo{Page: "nowhere"})
	assert.Equal(t, pageLogin, root.currentPage)
	assert.Nil(t, cmd)
}

func TestRootModel_IllegalAccessReturnsToLogin(t *testing.T) {
	root, stubs := newTestRoot(pagePatients, nil)

	_, cmd := update(t, root, patientsLoadedMsg{err: service.ErrIllegalAccess})
	payload := navigation(t, cmd, pageLogin)

	ended, ok := payload.(sessionEndedMsg)
	require.True(t, ok)
	assert.Equal(t, errorText(service.ErrIllegalAccess), ended.errMsg)
	assert.Empty(t, stubs[pagePatients].received)
}

func TestRootModel_OtherFailuresReachPage(t *testing.T) {
	root, stubs := newTestRoot(pagePatients, nil)

	_, cmd := update(t, root, patientsLoadedMsg{err: service.ErrNoCurrentPatient})
	assert.Nil(t, cmd)
	assert.Len(t, stubs[pagePatients].received, 1)
}

func TestRootModel_LoginFailureStaysOnLogin(t *testing.T) {
	root, stubs := newTestRoot(pageLogin, nil)

	_, cmd := update(t, root, loginResultMsg{err: service.ErrIllegalAccess})
	assert.Nil(t, cmd)
	assert.Len(t, stubs[pageLogin].received, 1)
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	root, _ := newTestRoot(pageLogin, nil)

	root, cmd := update(t, root, typeKey(tea.KeyCtrlC))
	assert.True(t, root.quitByUser)
	assert.IsType(t, tea.QuitMsg{}, exec(t, cmd))
}

func TestRootModel_BuildInfoWindow(t *testing.T) {
	t.Run("opens on v when the page is not typing", func(t *testing.T) {
		versioner := versionedController{info: models.BuildInfoResponse{Version: "v9.9.9", Date: "2026-09-09", Commit: "fff"}}
		root, _ := newTestRoot(pagePatients, versioner)

		root, cmd := update(t, root, runeKey("v"))
		require.True(t, root.showBuildInfo)

		root, _ = update(t, root, exec(t, cmd))
		view := root.View()
		assert.Contains(t, view, "Version: v1.0.0")
		assert.Contains(t, view, "Commit: abc1234")
		assert.Contains(t, view, "Server version: v9.9.9")

		root, _ = update(t, root, typeKey(tea.KeyEsc))
		assert.False(t, root.showBuildInfo)
		assert.Equal(t, "page patients", root.View())
	})

	t.Run("local controller has no server section", func(t *testing.T) {
		root, _ := newTestRoot(pagePatients, nil)

		root, cmd := update(t, root, runeKey("v"))
		assert.Nil(t, cmd)
		assert.NotContains(t, root.View(), "Server")
		assert.Contains(t, root.View(), "Date: 2026-10-01")
	})

	t.Run("typing page receives the key", func(t *testing.T) {
		root, stubs := newTestRoot(pageLogin, nil)

		root, _ = update(t, root, runeKey("v"))
		assert.False(t, root.showBuildInfo)
		assert.Len(t, stubs[pageLogin].received, 1)
	})

	t.Run("server error is shown", func(t *testing.T) {
		root, _ := newTestRoot(pagePatients, nil)
		root.showBuildInfo = true

		root, _ = update(t, root, serverVersionMsg{err: assert.AnError})
		assert.Contains(t, root.View(), "Server: "+assert.AnError.Error())
	})
}
