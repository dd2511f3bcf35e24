// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-save-sync/internal/envelope"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/models"
)

// LocalSaveStore keeps the save envelope in two slots: the primary and the
// last envelope that was valid before the primary was last replaced.
type LocalSaveStore struct {
	kv     KeyValueStorage
	codec  *envelope.Codec
	logger *logger.Logger
}

// NewLocalSaveStore creates a store over kv.
func NewLocalSaveStore(kv KeyValueStorage, codec *envelope.Codec, logger *logger.Logger) *LocalSaveStore {
	return &LocalSaveStore{kv: kv, codec: codec, logger: logger}
}

// Save wraps payload and writes it to the primary slot. The current primary
// is first copied to the last-good slot when it validates; a corrupt primary
// is dropped instead. Storage failures are logged and swallowed; only an
// unencodable payload is returned as an error.
func (s *LocalSaveStore) Save(ctx context.Context, payload models.SavePayload) (models.IntegrityEnvelope, error) {
	raw, env, err := s.codec.Seal(payload)
	if err != nil {
		return models.IntegrityEnvelope{}, err
	}

	if current := s.read(ctx, KeySavePrimary); current != "" {
		switch res := s.codec.Unwrap(current); res.Status {
		case envelope.StatusOK, envelope.StatusMigrated:
			s.write(ctx, KeySaveLastGood, current)
		default:
			s.logger.Warn().Err(res.Err).Str("status", string(res.Status)).Msg("primary save slot is not valid, not preserving it")
		}
	}

	s.write(ctx, KeySavePrimary, raw)

	return env, nil
}

// Load reads the primary slot, falling back to the last-good slot when the
// primary does not validate.
func (s *LocalSaveStore) Load(ctx context.Context) envelope.Result {
	primary := s.codec.Unwrap(s.read(ctx, KeySavePrimary))
	if primary.Status == envelope.StatusEmpty || primary.Valid() {
		return primary
	}

	s.logger.Warn().Err(primary.Err).Msg("primary save slot is corrupt, trying last good")

	lastGood := s.codec.Unwrap(s.read(ctx, KeySaveLastGood))
	if lastGood.Valid() {
		lastGood.Status = envelope.StatusRecoveredLastGood
		return lastGood
	}

	return envelope.Result{Status: envelope.StatusCorrupt, Raw: primary.Raw, Err: primary.Err}
}

// Clear removes both slots.
func (s *LocalSaveStore) Clear(ctx context.Context) {
	s.delete(ctx, KeySavePrimary)
	s.delete(ctx, KeySaveLastGood)
}

func (s *LocalSaveStore) read(ctx context.Context, key string) string {
	v, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Warn().Err(err).Str("key", key).Msg("local storage read failed")
		}
		return ""
	}
	return v
}

func (s *LocalSaveStore) write(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("local storage write failed")
	}
}

func (s *LocalSaveStore) delete(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("local storage delete failed")
	}
}
