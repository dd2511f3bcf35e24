package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/handler"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/server"
	"github.com/MKhiriev/go-save-sync/internal/service"
	"github.com/MKhiriev/go-save-sync/internal/store"
	"github.com/MKhiriev/go-save-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("save-sync-server")

	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	flags := config.BindServerFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.GetServerConfig(flags.Config())
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Version == "" {
		cfg.Version = buildVersion
	}

	log.Debug().Str("address", cfg.HTTP.Address).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, storages, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
