package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
)

// appInfoService answers GET /api/version with the version the binary was
// started with.
type appInfoService struct {
	version string
	logger  *logger.Logger
}

func NewAppInfoService(cfg config.App, log *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	log.Debug().Str("version", version).Msg("app info service configured")

	return &appInfoService{version: version, logger: log}, nil
}

func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.version
}
