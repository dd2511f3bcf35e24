package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/mock"
	"github.com/MKhiriev/go-save-sync/internal/store"
	"github.com/MKhiriev/go-save-sync/models"
)

func TestSaveService_GetLatest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSaveRepository(ctrl)
	svc := NewSaveService(repo, logger.Nop())

	updated := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	want := models.CloudSave{
		Payload: models.SavePayload{"gold": 10},
		Meta:    models.CloudSaveMeta{Revision: models.Int64Ptr(3), UpdatedAt: &updated},
	}
	repo.EXPECT().GetLatest(gomock.Any(), int64(7)).Return(want, nil)

	got, err := svc.GetLatest(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveService_GetLatest_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSaveRepository(ctrl)
	svc := NewSaveService(repo, logger.Nop())

	repo.EXPECT().GetLatest(gomock.Any(), int64(7)).Return(models.CloudSave{}, store.ErrSaveNotFound)

	_, err := svc.GetLatest(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrSaveNotFound)

	_, err = svc.GetLatest(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestSaveService_PutLatest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSaveRepository(ctrl)
	svc := NewSaveService(repo, logger.Nop())

	req := models.PutSaveRequest{Payload: models.SavePayload{"gold": 10}, AppVersion: "1.0.0", ExpectedRevision: models.Int64Ptr(3)}
	repo.EXPECT().PutLatest(gomock.Any(), int64(7), req).Return(models.CloudSaveMeta{Revision: models.Int64Ptr(4)}, nil)

	meta, err := svc.PutLatest(context.Background(), 7, req)
	require.NoError(t, err)
	assert.Equal(t, int64(4), *meta.Revision)
}

func TestSaveService_PutLatest_ConflictKeepsStoredMeta(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSaveRepository(ctrl)
	svc := NewSaveService(repo, logger.Nop())

	stored := models.CloudSaveMeta{Revision: models.Int64Ptr(9), AppVersion: "1.1.0"}
	repo.EXPECT().PutLatest(gomock.Any(), int64(7), gomock.Any()).Return(stored, store.ErrRevisionConflict)

	meta, err := svc.PutLatest(context.Background(), 7, models.PutSaveRequest{Payload: models.SavePayload{"gold": 1}})
	assert.ErrorIs(t, err, store.ErrRevisionConflict)
	assert.Equal(t, stored, meta)
}

func TestSaveService_PutLatest_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewSaveService(mock.NewMockSaveRepository(ctrl), logger.Nop())

	_, err := svc.PutLatest(context.Background(), 7, models.PutSaveRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.PutLatest(context.Background(), 7, models.PutSaveRequest{Payload: models.SavePayload{"a": 1}, ExpectedRevision: models.Int64Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
