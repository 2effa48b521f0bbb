package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/models"
)

// inputCapturer is implemented by pages that are currently reading text, so
// global single-letter hotkeys must not fire.
type inputCapturer interface {
	capturesInput() bool
}

// serverVersioner is implemented by controllers backed by a server.
type serverVersioner interface {
	ServerVersion(ctx context.Context) (models.BuildInfoResponse, error)
}

// RootModel is a TUI router:
//  1. keeps the active page;
//  2. handles global ctrl+c quit and the build info window;
//  3. handles NavigateTo messages;
//  4. sends the operator back to login once the session is gone;
//  5. delegates all other messages to the active page.
type RootModel struct {
	ctx context.Context

	pages       map[string]tea.Model
	current     tea.Model
	currentPage string

	buildInfo     models.AppBuildInfo
	versioner     serverVersioner
	serverInfo    *models.BuildInfoResponse
	serverErr     string
	showBuildInfo bool

	quitByUser bool
}

// NewRootModel registers all pages and opens startPage. versioner may be
// nil.
func NewRootModel(ctx context.Context, pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo, versioner serverVersioner) RootModel {
	return RootModel{
		ctx:         ctx,
		pages:       pages,
		current:     pages[startPage],
		currentPage: startPage,
		buildInfo:   buildInfo,
		versioner:   versioner,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			r.quitByUser = true
			return r, tea.Quit
		}

		if r.showBuildInfo {
			if key.Matches(keyMsg, keys.esc) || key.Matches(keyMsg, keys.version) {
				r.showBuildInfo = false
			}
			return r, nil
		}

		if key.Matches(keyMsg, keys.version) && r.acceptsHotkeys() {
			r.showBuildInfo = true
			return r, r.cmdServerVersion()
		}
	}

	switch msg := msg.(type) {
	case serverVersionMsg:
		if msg.err != nil {
			r.serverErr = errorText(msg.err)
			return r, nil
		}
		r.serverErr = ""
		r.serverInfo = &msg.info
		return r, nil

	case NavigateTo:
		next, exists := r.pages[msg.Page]
		if !exists {
			return r, nil
		}

		r.showBuildInfo = false
		r.current = next
		r.currentPage = msg.Page

		if msg.Payload != nil {
			payload := msg.Payload
			return r, func() tea.Msg { return payload }
		}
		return r, r.current.Init()
	}

	if f, ok := msg.(failure); ok && r.currentPage != pageLogin && errors.Is(f.failure(), service.ErrIllegalAccess) {
		return r, navigate(pageLogin, sessionEndedMsg{errMsg: errorText(f.failure())})
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo, r.serverInfo, r.serverErr)
	}
	if r.current == nil {
		return renderPage("CLINIC", "", "")
	}
	return r.current.View()
}

func (r RootModel) acceptsHotkeys() bool {
	c, ok := r.current.(inputCapturer)
	return !ok || !c.capturesInput()
}

func (r RootModel) cmdServerVersion() tea.Cmd {
	if r.versioner == nil {
		return nil
	}

	ctx, versioner := r.ctx, r.versioner
	return func() tea.Msg {
		info, err := versioner.ServerVersion(ctx)
		return serverVersionMsg{info: info, err: err}
	}
}

// navigate returns a command switching the router to page.
func navigate(page string, payload tea.Msg) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page, Payload: payload} }
}
