package config

import (
	"fmt"
	"time"
)

// ServerAuth holds token settings of the cloud server.
type ServerAuth struct {
	TokenSignKey         string
	TokenIssuer          string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	SecureCookies        bool
}

// ServerHTTP holds listener and request limit settings.
type ServerHTTP struct {
	Address            string
	RequestTimeout     time.Duration
	MaxPayloadBytes    int64
	WriteRatePerSecond float64
	WriteBurst         int
}

// DBConfig holds the server database connection string.
type DBConfig struct {
	DSN string
}

// ServerConfig is the cloud server view of [StructuredConfig].
type ServerConfig struct {
	Auth    ServerAuth
	HTTP    ServerHTTP
	DB      DBConfig
	Version string
}

// GetServerConfig builds and validates the server config view.
func GetServerConfig(flags *StructuredConfig) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewServerConfig(cfg)
}

// NewServerConfig maps and validates the server view of cfg.
func NewServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		Auth: ServerAuth{
			TokenSignKey:         cfg.App.TokenSignKey,
			TokenIssuer:          cfg.App.TokenIssuer,
			AccessTokenDuration:  cfg.App.AccessTokenDuration,
			RefreshTokenDuration: cfg.App.RefreshTokenDuration,
			SecureCookies:        cfg.Server.SecureCookies,
		},
		HTTP: ServerHTTP{
			Address:            cfg.Server.HTTPAddress,
			RequestTimeout:     cfg.Server.RequestTimeout,
			MaxPayloadBytes:    cfg.Server.MaxPayloadBytes,
			WriteRatePerSecond: cfg.Server.WriteRatePerSecond,
			WriteBurst:         cfg.Server.WriteBurst,
		},
		DB:      DBConfig{DSN: cfg.Storage.DB.DSN},
		Version: cfg.App.Version,
	}

	return serverCfg, serverCfg.validate()
}
