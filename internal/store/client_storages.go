package store

import (
	"context"

	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/envelope"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/utils"
)

// ClientStorages groups the client-side stores that share one local
// key-value backend.
type ClientStorages struct {
	KV         KeyValueStorage
	Saves      *LocalSaveStore
	Watermarks *WatermarkStore
	Sessions   *SessionStore

	db *DB
}

// NewClientStorages opens the SQLite file named by cfg.Path and runs its
// migrations. When the file cannot be used the client keeps running on
// [UnavailableStorage]: loads read as empty and saves become no-ops.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, codec *envelope.Codec, clock utils.Clock, logger *logger.Logger) *ClientStorages {
	logger.Info().Str("path", cfg.Path).Msg("opening local storage...")

	var (
		kv KeyValueStorage = UnavailableStorage{}
		db *DB
	)

	conn, err := NewConnectSQLite(ctx, cfg.Path, logger)
	switch {
	case err != nil:
		logger.Err(err).Msg("local storage unavailable, saves will not persist")
	default:
		if err = conn.MigrateSQLite(); err != nil {
			logger.Err(err).Msg("local storage migration failed, saves will not persist")
			_ = conn.Close()
		} else {
			db = conn
			kv = NewSQLiteStorage(conn, clock, logger)
		}
	}

	s := NewClientStoragesOn(kv, codec, clock, logger)
	s.db = db
	return s
}

// NewClientStoragesOn builds the stores over an existing backend.
func NewClientStoragesOn(kv KeyValueStorage, codec *envelope.Codec, clock utils.Clock, logger *logger.Logger) *ClientStorages {
	return &ClientStorages{
		KV:         kv,
		Saves:      NewLocalSaveStore(kv, codec, logger),
		Watermarks: NewWatermarkStore(kv, clock, logger),
		Sessions:   NewSessionStore(kv, logger),
	}
}

// Close releases the local database, if one was opened.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
