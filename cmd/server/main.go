package main

import (
	"context"
	"fmt"

	"github.com/specmock/specmock/internal/config"
	"github.com/specmock/specmock/internal/handler"
	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/openapi"
	"github.com/specmock/specmock/internal/server"
	"github.com/specmock/specmock/internal/service"
	"github.com/specmock/specmock/internal/store"
	"github.com/specmock/specmock/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("specmock-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.Version == "" && buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	document, err := openapi.Load(ctx, cfg.Spec, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading document")
	}

	log.Info().
		Str("title", document.Title).
		Str("version", document.Version).
		Int("operations", len(document.Operations)).
		Msg("document loaded")

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, cfg, log)

	build := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	handlers, err := handler.NewHandlers(services, document, build, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
