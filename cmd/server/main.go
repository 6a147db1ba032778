package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-api-gateway/internal/adapter"
	"github.com/MKhiriev/go-api-gateway/internal/config"
	httphandler "github.com/MKhiriev/go-api-gateway/internal/handler/http"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
	"github.com/MKhiriev/go-api-gateway/internal/server"
	"github.com/MKhiriev/go-api-gateway/models"
)

const role = "go-api-gateway"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	bootLog := logger.NewLogger(role)
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		bootLog.Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger(role,
		logger.WithLevel(cfg.Log.ZerologLevel()),
		logger.WithFormat(cfg.Log.Format),
	)
	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	identity, err := adapter.NewIdentityClient(cfg.Identity, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating identity client")
	}

	cache, err := adapter.NewCache(cfg.Cache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating cache client")
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Error().Err(err).Msg("error closing cache client")
		}
	}()

	verifier := adapter.NewCachedVerifier(identity, cache, cfg.Identity.ServiceRoleKey, cfg.Cache.VerificationTTL, log)

	handler := httphandler.NewHandler(cfg.CORS, httphandler.Dependencies{
		Identity:  verifier,
		Cache:     cache,
		Metrics:   metrics.New(),
		BuildInfo: buildInfo,
	}, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err := srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		// deferred Close does not run after os.Exit
		_ = cache.Close()
		os.Exit(1)
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
