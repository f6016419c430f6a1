package service

import (
	"github.com/eunio-health/eunio-sync/internal/adapter"
	"github.com/eunio-health/eunio-sync/internal/config"
	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/store"
)

type ClientServices struct {
	AuthService     ClientAuthService
	EntityService   EntityService
	ConflictService ConflictService
	Coordinator     SyncCoordinator
	Connectivity    ConnectivityChecker
	SyncJob         ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, gateway adapter.RemoteGateway, cfg config.Sync, log *logger.Logger) *ClientServices {
	coordinator := NewSyncCoordinator(storages, gateway, cfg, log)
	connectivity := NewConnectivityChecker(gateway, log)

	return &ClientServices{
		AuthService:     NewClientAuthService(gateway),
		EntityService:   NewEntityService(storages.Entities, storages.Journal, cfg.DeviceID, log),
		ConflictService: NewConflictService(storages.Entities, storages.Journal, storages.Conflicts, cfg.DeviceID),
		Coordinator:     coordinator,
		Connectivity:    connectivity,
		SyncJob:         NewClientSyncJob(coordinator, connectivity),
	}
}
