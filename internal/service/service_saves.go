// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/store"
	"github.com/MKhiriev/go-save-sync/internal/validators"
	"github.com/MKhiriev/go-save-sync/models"
)

type saveService struct {
	saves     store.SaveRepository
	validator validators.Validator
	logger    *logger.Logger
}

// NewSaveService builds a SaveService on saves.
func NewSaveService(saves store.SaveRepository, logger *logger.Logger) SaveService {
	return &saveService{
		saves:     saves,
		validator: validators.NewSaveSyncValidator(),
		logger:    logger,
	}
}

// GetLatest returns the stored save or a wrapped store.ErrSaveNotFound.
func (s *saveService) GetLatest(ctx context.Context, accountID int64) (models.CloudSave, error) {
	if accountID <= 0 {
		return models.CloudSave{}, ErrInvalidDataProvided
	}

	save, err := s.saves.GetLatest(ctx, accountID)
	if err != nil {
		return models.CloudSave{}, fmt.Errorf("get latest save: %w", err)
	}
	return save, nil
}

// PutLatest writes req if its expected revision matches. On a mismatch the
// stored meta is returned together with a wrapped store.ErrRevisionConflict.
func (s *saveService) PutLatest(ctx context.Context, accountID int64, req models.PutSaveRequest) (models.CloudSaveMeta, error) {
	log := logger.FromContext(ctx)

	if accountID <= 0 {
		return models.CloudSaveMeta{}, ErrInvalidDataProvided
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Int64("account_id", accountID).Msg("invalid save write")
		return models.CloudSaveMeta{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	meta, err := s.saves.PutLatest(ctx, accountID, req)
	if errors.Is(err, store.ErrRevisionConflict) {
		return meta, fmt.Errorf("put latest save: %w", err)
	}
	if err != nil {
		return models.CloudSaveMeta{}, fmt.Errorf("put latest save: %w", err)
	}

	log.Info().Int64("account_id", accountID).Interface("revision", meta.Revision).Msg("save stored")
	return meta, nil
}
