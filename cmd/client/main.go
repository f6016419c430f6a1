package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/eunio-health/eunio-sync/internal/adapter"
	"github.com/eunio-health/eunio-sync/internal/config"
	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/service"
	"github.com/eunio-health/eunio-sync/internal/store"
	"github.com/eunio-health/eunio-sync/internal/workers"
	"github.com/eunio-health/eunio-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("eunio-sync-daemon").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("eunio-sync-daemon", cfg.LogPath)

	gateway := adapter.NewHTTPRemoteGateway(cfg.Adapter, log)

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewClientServices(localStorage, gateway, cfg.Sync, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	userID, err := services.AuthService.Login(ctx, models.User{
		Login:    cfg.Credentials.Login,
		Password: cfg.Credentials.Password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}
	log.Info().Int64("userID", userID).Msg("authenticated, starting sync daemon")

	// Initial catch-up before the periodic job takes over.
	if report, err := services.Coordinator.Sync(ctx, userID); err != nil {
		log.Error().Err(err).Msg("initial sync failed, will retry on schedule")
	} else {
		log.Info().Int("pushed", report.Pushed).Int("pulled", report.Pulled).Msg("initial sync complete")
	}

	workers.NewWorkers(ctx, services, userID, cfg.Sync, log).Run()

	<-ctx.Done()
	services.SyncJob.Stop()
	log.Info().Msg("sync daemon stopped")
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
