package service

import (
	"github.com/specmock/specmock/internal/config"
	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/store"
)

type Services struct {
	ResourceService ResourceService
	AuthService     AuthService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		ResourceService: NewResourceService(storages.Resources, logger),
		AuthService:     NewAuthService(cfg.App, logger),
		AppInfoService:  NewAppInfoService(cfg.App, logger),
	}
}
