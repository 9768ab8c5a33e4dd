package service

import (
	"fmt"

	"github.com/MKhiriev/health-mate/internal/adapter"
	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/store"
	"github.com/MKhiriev/health-mate/models"
)

type Services struct {
	AuthService          AuthService
	FederatedAuthService FederatedAuthService
	ShareService         ShareService
	VitalService         VitalService
	FileService          FileService
	ChatService          ChatService
	AppInfoService       AppInfoService
	HealthService        HealthService
}

func NewServices(storages *store.Storages, adapters *adapter.Adapters, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	authService := NewAuthService(storages.UserRepository, cfg.App, logger)
	shareService := NewShareService(storages.UserRepository, storages.GrantRepository, cfg.App, logger)

	return &Services{
		AuthService:          authService,
		FederatedAuthService: NewFederatedAuthService(adapters.IdentityProvider, storages.UserRepository, authService, logger),
		ShareService:         shareService,
		VitalService:         NewVitalService(storages.VitalRepository, shareService, logger),
		FileService: NewFileService(
			storages.FileRepository,
			storages.InsightRepository,
			adapters.ObjectStorage,
			adapters.TextExtractor,
			adapters.Summarizer,
			shareService,
			cfg.Adapter.Extractor,
			logger,
		),
		ChatService:    NewChatService(storages.ChatRepository, storages.FileRepository, adapters.Summarizer, shareService, logger),
		AppInfoService: appInfoService,
		HealthService:  NewHealthService(storages.HealthChecker),
	}, nil
}
