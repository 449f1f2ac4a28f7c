package handler

import (
	"github.com/specmock/specmock/internal/config"
	"github.com/specmock/specmock/internal/handler/http"
	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/openapi"
	"github.com/specmock/specmock/internal/service"
	"github.com/specmock/specmock/models"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, document *openapi.Document, build models.BuildInfo, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, document, build, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
