package service

import (
	"fmt"

	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/crypto"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/store"
	"github.com/MKhiriev/go-save-sync/internal/utils"
)

// Services groups the cloud backend services.
type Services struct {
	AuthService    AuthService
	SaveService    SaveService
	AppInfoService AppInfoService
}

// NewServices wires the backend services on storages.
func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		AuthService: NewAuthService(
			storages.Accounts,
			storages.Sessions,
			crypto.NewPasswordHasher(),
			crypto.NewTokenGenerator(0),
			cfg.Auth,
			utils.SystemClock{},
			logger,
		),
		SaveService:    NewSaveService(storages.Saves, logger),
		AppInfoService: appInfo,
	}, nil
}
