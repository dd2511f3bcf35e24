package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/utils"
	"github.com/MKhiriev/go-save-sync/models"
)

func TestWatermarkStore_ReadAbsent(t *testing.T) {
	w := NewWatermarkStore(NewMemoryStorage(), nil, logger.Nop())
	assert.Nil(t, w.Read(context.Background()))
}

func TestWatermarkStore_WriteRead(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_123)
	w := NewWatermarkStore(NewMemoryStorage(), utils.ClockFunc(func() time.Time { return now }), logger.Nop())

	fp := "fp1-d-5314055b"
	written := w.Write(ctx, models.Int64Ptr(3), &fp)
	require.NotNil(t, written)
	assert.Equal(t, int64(1_700_000_000_123), written.UpdatedAtMs)

	fp = "mutated"
	read := w.Read(ctx)
	require.NotNil(t, read)
	assert.Equal(t, models.WatermarkSchemaVersion, read.SchemaVersion)
	assert.Equal(t, int64(3), *read.CloudRevision)
	assert.Equal(t, "fp1-d-5314055b", *read.LocalFingerprint)
}

func TestWatermarkStore_WriteStampsFreshTime(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1000)
	w := NewWatermarkStore(NewMemoryStorage(), utils.ClockFunc(func() time.Time { return now }), logger.Nop())

	w.Write(ctx, nil, nil)
	now = now.Add(time.Second)
	second := w.Write(ctx, nil, nil)

	assert.Equal(t, int64(2000), second.UpdatedAtMs)
	assert.Equal(t, int64(2000), w.Read(ctx).UpdatedAtMs)
}

func TestWatermarkStore_CorruptReadsAsNeverSynced(t *testing.T) {
	ctx := context.Background()
	tests := map[string]string{
		"not json":       "{",
		"wrong schema":   `{"schemaVersion":7,"cloudRevision":1}`,
		"wrong type":     `{"schemaVersion":"1"}`,
		"missing schema": `{"cloudRevision":1}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryStorage()
			require.NoError(t, kv.Set(ctx, KeySyncWatermark, raw))

			w := NewWatermarkStore(kv, nil, logger.Nop())
			assert.Nil(t, w.Read(ctx))
		})
	}
}

func TestWatermarkStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	w := NewWatermarkStore(UnavailableStorage{}, nil, logger.Nop())

	fp := "x"
	assert.Nil(t, w.Write(ctx, models.Int64Ptr(1), &fp))
	assert.Nil(t, w.Read(ctx))
	w.Clear(ctx)
}

func TestWatermarkStore_Clear(t *testing.T) {
	ctx := context.Background()
	w := NewWatermarkStore(NewMemoryStorage(), nil, logger.Nop())

	fp := "x"
	require.NotNil(t, w.Write(ctx, models.Int64Ptr(1), &fp))
	w.Clear(ctx)
	assert.Nil(t, w.Read(ctx))
}
