package service

import (
	"context"

	"github.com/MKhiriev/go-clinic/internal/config"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/store"
)

// Services bundles the controller and the token service built on top of
// the opened storages.
type Services struct {
	Controller   SessionController
	TokenService TokenService
}

// NewServices loads the patient store from storages and wires a controller
// and token service around it.
func NewServices(ctx context.Context, storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	patients := store.NewPatientStore(logger.WithContext(ctx), storages.PatientStoreOptions()...)

	return &Services{
		Controller:   NewController(patients, storages.Credentials, logger),
		TokenService: NewTokenService(cfg, logger),
	}
}
