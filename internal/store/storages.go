package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/logger"
)

// Storages groups the cloud backend repositories.
type Storages struct {
	Accounts AccountRepository
	Saves    SaveRepository
	Sessions SessionRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies migrations and builds the
// repositories.
func NewStorages(ctx context.Context, cfg config.DBConfig, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Accounts: NewAccountRepository(db, logger),
		Saves:    NewSaveRepository(db, logger),
		Sessions: NewSessionRepository(db, logger),
		db:       db,
	}, nil
}

// Ping reports whether the database answers.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Storages) Close() error {
	return s.db.Close()
}
