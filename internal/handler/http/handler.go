package http

import (
	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/openapi"
	"github.com/specmock/specmock/internal/service"
	"github.com/specmock/specmock/models"
)

type Handler struct {
	services *service.Services
	document *openapi.Document
	build    models.BuildInfo

	logger *logger.Logger
}

func NewHandler(services *service.Services, document *openapi.Document, build models.BuildInfo, logger *logger.Logger) *Handler {
	logger.Info().
		Str("document", document.Title).
		Int("operations", len(document.Operations)).
		Msg("http handler created")

	return &Handler{
		services: services,
		document: document,
		build:    build,
		logger:   logger,
	}
}
