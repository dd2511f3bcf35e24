package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-save-sync/internal/logger"
)

// appInfoService answers the version endpoint clients use to check which
// backend build they talk to.
type appInfoService struct {
	version string
}

// NewAppInfoService returns ErrVersionIsNotSpecified for a blank version.
func NewAppInfoService(version string, logger *logger.Logger) (AppInfoService, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("version", version).Msg("serving backend version")
	return &appInfoService{version: version}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}
