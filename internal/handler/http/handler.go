package http

import (
	"sync"

	"github.com/MKhiriev/go-clinic/internal/config"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/internal/utils"
	"github.com/MKhiriev/go-clinic/models"
)

// Handler serves the API of one controller.
//
// The controller is not safe for concurrent use and serves one operator, so
// every API request holds mu while it runs.
type Handler struct {
	controller service.SessionController
	tokens     service.TokenService

	buildInfo models.AppBuildInfo
	cfg       config.Server
	traceIDs  *utils.UUIDGenerator

	mu     sync.Mutex
	logger *logger.Logger
}

func NewHandler(services *service.Services, buildInfo models.AppBuildInfo, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		controller: services.Controller,
		tokens:     services.TokenService,
		buildInfo:  buildInfo,
		cfg:        cfg,
		traceIDs:   utils.NewUUIDGenerator(),
		logger:     logger,
	}
}
