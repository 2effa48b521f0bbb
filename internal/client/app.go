package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-clinic/internal/adapter"
	"github.com/MKhiriev/go-clinic/internal/config"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/internal/store"
	"github.com/MKhiriev/go-clinic/internal/tui"
	"github.com/MKhiriev/go-clinic/models"
)

// App is the terminal client. It drives either an in-process controller
// over the configured storage or a clinic server through the HTTP adapter.
type App struct {
	ui *tui.TUI

	// storages is nil when the client talks to a server.
	storages *store.Storages

	logger *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	controller, storages, err := newController(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	ui, err := tui.New(controller, buildInfo, log)
	if err != nil {
		closeStorages(storages, log)
		return nil, fmt.Errorf("error creating ui: %w", err)
	}

	return &App{ui: ui, storages: storages, logger: log}, nil
}

// newController picks the remote adapter when a server URL is configured and
// opens the local storage otherwise.
func newController(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (service.Controller, *store.Storages, error) {
	if cfg.Adapter.Remote() {
		log.Info().Str("server_url", cfg.Adapter.ServerURL).Msg("using remote clinic server")

		controller, err := adapter.NewHTTPController(cfg.Adapter, log)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating server adapter: %w", err)
		}
		return controller, nil, nil
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating storages: %w", err)
	}

	services := service.NewServices(ctx, storages, cfg.App, log)
	return services.Controller, storages, nil
}

// Run blocks until the operator leaves the UI or the process is told to
// stop. Leaving with ctrl+c is a normal exit.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	defer closeStorages(a.storages, a.logger)

	err := a.ui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("client stopped by user")
		return nil
	}

	return err
}

func closeStorages(storages *store.Storages, log *logger.Logger) {
	if storages == nil {
		return
	}
	if err := storages.Close(); err != nil {
		log.Err(err).Msg("error closing storages")
	}
}
