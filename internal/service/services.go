package service

import (
	"github.com/eunio-health/eunio-sync/internal/config"
	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/store"
)

type Services struct {
	AuthService AuthService
	SyncService SyncService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.Users, cfg.Auth, logger),
		SyncService: NewSyncService(storages.Entities, logger),
	}
}
