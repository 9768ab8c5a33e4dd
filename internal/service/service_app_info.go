package service

import (
	"context"

	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/models"
)

// unknownBuildValue is what the server binary reports for build metadata
// that was not injected at link time.
const unknownBuildValue = "N/A"

type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

// NewAppInfoService resolves the version served by GET /version. A version
// injected at link time takes precedence over the configured one.
func NewAppInfoService(cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	version := cfg.Version
	if v := buildInfo.BuildVersion(); v != "" && v != unknownBuildValue {
		version = v
	}

	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Info().Str("version", version).Str("commit", buildInfo.BuildCommit()).Msg("app version resolved")

	return &appInfoService{
		appVersion: version,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}
