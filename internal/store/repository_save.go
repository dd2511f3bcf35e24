// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-save-sync/internal/envelope"
	"github.com/MKhiriev/go-save-sync/internal/fingerprint"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/models"
)

// saveRepository is the PostgreSQL-backed implementation of [SaveRepository].
// One row per account holds the latest save; the revision column provides
// optimistic concurrency.
type saveRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSaveRepository constructs a [SaveRepository] on db.
func NewSaveRepository(db *DB, logger *logger.Logger) SaveRepository {
	logger.Debug().Msg("creating save repository")
	return &saveRepository{
		db:     db,
		logger: logger,
	}
}

type metaRow struct {
	revision     int64
	updatedAt    time.Time
	virtualScore float64
	appVersion   string
}

func (m *metaRow) dest() []any {
	return []any{&m.revision, &m.updatedAt, &m.virtualScore, &m.appVersion}
}

func (m *metaRow) meta() models.CloudSaveMeta {
	updatedAt := m.updatedAt.UTC()
	return models.CloudSaveMeta{
		UpdatedAt:    &updatedAt,
		VirtualScore: m.virtualScore,
		AppVersion:   m.appVersion,
		Revision:     models.Int64Ptr(m.revision),
	}
}

// GetLatest implements [SaveRepository].
func (r *saveRepository) GetLatest(ctx context.Context, accountID int64) (models.CloudSave, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectLatestSaveQuery(accountID)
	if err != nil {
		return models.CloudSave{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		payload []byte
		row     metaRow
	)
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(append([]any{&payload}, row.dest()...)...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.CloudSave{}, ErrSaveNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*saveRepository.GetLatest").Int64("account_id", accountID).Msg("error reading save")
		return models.CloudSave{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	decoded, err := envelope.DecodePayload(payload)
	if err != nil {
		return models.CloudSave{}, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	return models.CloudSave{Payload: decoded, Meta: row.meta()}, nil
}

// PutLatest implements [SaveRepository]. The revision check and the write are
// one statement, so two writers racing on the same revision cannot both win.
func (r *saveRepository) PutLatest(ctx context.Context, accountID int64, save models.PutSaveRequest) (models.CloudSaveMeta, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*saveRepository.PutLatest").
		Int64("account_id", accountID).
		Logger()

	canonical, err := fingerprint.Canonical(save.Payload)
	if err != nil {
		return models.CloudSaveMeta{}, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	var (
		query string
		args  []any
	)
	if save.ExpectedRevision == nil {
		query, args, err = buildInsertFirstSaveQuery(accountID, string(canonical), save.VirtualScore, save.AppVersion)
	} else {
		query, args, err = buildUpdateSaveQuery(accountID, string(canonical), save.VirtualScore, save.AppVersion, *save.ExpectedRevision)
	}
	if err != nil {
		return models.CloudSaveMeta{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row metaRow
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(row.dest()...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		current, metaErr := r.currentMeta(ctx, accountID)
		if metaErr != nil {
			return models.CloudSaveMeta{}, metaErr
		}
		log.Info().Interface("expected", save.ExpectedRevision).Interface("current", current.Revision).Msg("revision conflict")
		return current, ErrRevisionConflict
	}
	if err != nil {
		log.Err(err).Msg("error writing save")
		return models.CloudSaveMeta{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return row.meta(), nil
}

// currentMeta reads the stored meta; an account without a save yields an
// empty meta with no revision.
func (r *saveRepository) currentMeta(ctx context.Context, accountID int64) (models.CloudSaveMeta, error) {
	query, args, err := buildSelectSaveMetaQuery(accountID)
	if err != nil {
		return models.CloudSaveMeta{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row metaRow
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(row.dest()...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.CloudSaveMeta{}, nil
	}
	if err != nil {
		return models.CloudSaveMeta{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return row.meta(), nil
}
