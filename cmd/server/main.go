package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/health-mate/internal/adapter"
	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/handler"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/server"
	"github.com/MKhiriev/health-mate/internal/service"
	"github.com/MKhiriev/health-mate/internal/store"
	"github.com/MKhiriev/health-mate/internal/validators"
	"github.com/MKhiriev/health-mate/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := printBuildInfo()

	log := logger.NewLogger("health-mate-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if !logger.SetLevel(cfg.App.LogLevel) {
		log.Debug().Str("level", cfg.App.LogLevel).Msg("log level left unchanged")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	adapters, err := adapter.NewAdapters(ctx, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating adapters")
	}

	services, err := service.NewServices(storages, adapters, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, validators.NewRequestValidator(), *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() models.AppBuildInfo {
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

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
