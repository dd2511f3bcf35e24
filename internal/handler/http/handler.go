package http

import (
	"context"
	"time"

	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/service"
)

// ReadinessChecker reports whether the backend can serve requests.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	services *service.Services
	ready    ReadinessChecker

	maxPayloadBytes int64
	refreshTTL      time.Duration
	secureCookies   bool

	writeLimiter *accountLimiter
	metrics      *metrics

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. ready may be nil, in which case
// /api/ready always answers 204.
func NewHandler(services *service.Services, cfg *config.ServerConfig, ready ReadinessChecker, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:        services,
		ready:           ready,
		maxPayloadBytes: cfg.HTTP.MaxPayloadBytes,
		refreshTTL:      cfg.Auth.RefreshTokenDuration,
		secureCookies:   cfg.Auth.SecureCookies,
		writeLimiter:    newAccountLimiter(cfg.HTTP.WriteRatePerSecond, cfg.HTTP.WriteBurst, time.Now),
		metrics:         newMetrics(),
		logger:          logger,
	}
}
