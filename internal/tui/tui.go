package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/models"
)

var errNoController = errors.New("tui: controller is required")

// TUI is the terminal front end of the clinic. It runs against any
// [service.Controller], in-process or remote.
type TUI struct {
	controller service.Controller
	buildInfo  models.AppBuildInfo
	logger     *logger.Logger
}

func New(controller service.Controller, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if controller == nil {
		return nil, errNoController
	}

	return &TUI{controller: controller, buildInfo: buildInfo, logger: logger}, nil
}

// Run shows the login page and blocks until the operator quits. An open
// session is closed on the way out. ErrUserQuit is returned when the
// operator left with ctrl+c.
func (t *TUI) Run(ctx context.Context) error {
	root := t.newRootModel(ctx)

	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	t.closeSession(ctx)
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}

func (t *TUI) newRootModel(ctx context.Context) RootModel {
	pages := map[string]tea.Model{
		pageLogin:       NewLoginModel(ctx, t.controller),
		pagePatients:    NewPatientsModel(ctx, t.controller),
		pagePatientForm: NewPatientFormModel(ctx, t.controller),
		pageNotes:       NewNotesModel(ctx, t.controller),
		pageNoteForm:    NewNoteFormModel(ctx, t.controller),
	}

	versioner, _ := t.controller.(serverVersioner)

	return NewRootModel(ctx, pages, pageLogin, t.buildInfo, versioner)
}

func (t *TUI) closeSession(ctx context.Context) {
	if !t.controller.IsLoggedIn(ctx) {
		return
	}

	// the program context may already be cancelled
	if err := t.controller.Logout(context.WithoutCancel(ctx)); err != nil {
		t.logger.Warn().Err(err).Msg("logout on exit failed")
	}
}
