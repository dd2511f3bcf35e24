package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/models"
)

// SessionStore persists the client's credentials and the auto-sync
// preference so a restarted client resumes its session.
type SessionStore struct {
	kv     KeyValueStorage
	logger *logger.Logger
}

func NewSessionStore(kv KeyValueStorage, logger *logger.Logger) *SessionStore {
	return &SessionStore{kv: kv, logger: logger}
}

// Load returns the stored session; missing keys read as empty strings.
func (s *SessionStore) Load(ctx context.Context) models.Session {
	return models.Session{
		AccessToken:  s.get(ctx, KeyAuthAccessToken),
		RefreshToken: s.get(ctx, KeyAuthRefreshToken),
		CSRFToken:    s.get(ctx, KeyAuthCSRFToken),
		Email:        s.get(ctx, KeyAuthEmail),
	}
}

// Save writes every credential of session; empty values delete their key.
func (s *SessionStore) Save(ctx context.Context, session models.Session) {
	s.put(ctx, KeyAuthAccessToken, session.AccessToken)
	s.put(ctx, KeyAuthRefreshToken, session.RefreshToken)
	s.put(ctx, KeyAuthCSRFToken, session.CSRFToken)
	s.put(ctx, KeyAuthEmail, session.Email)
}

// Clear removes all credentials.
func (s *SessionStore) Clear(ctx context.Context) {
	s.Save(ctx, models.Session{})
}

// AutoSyncEnabled reports the persisted preference; it defaults to false.
func (s *SessionStore) AutoSyncEnabled(ctx context.Context) bool {
	enabled, err := strconv.ParseBool(s.get(ctx, KeyAutoSyncEnabled))
	return err == nil && enabled
}

func (s *SessionStore) SetAutoSyncEnabled(ctx context.Context, enabled bool) {
	s.put(ctx, KeyAutoSyncEnabled, strconv.FormatBool(enabled))
}

func (s *SessionStore) get(ctx context.Context, key string) string {
	v, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Warn().Err(err).Str("key", key).Msg("session read failed")
		}
		return ""
	}
	return v
}

func (s *SessionStore) put(ctx context.Context, key, value string) {
	var err error
	if value == "" {
		err = s.kv.Delete(ctx, key)
	} else {
		err = s.kv.Set(ctx, key, value)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("session write failed")
	}
}
