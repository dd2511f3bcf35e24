package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/utils"
	"github.com/MKhiriev/go-save-sync/models"
)

// WatermarkStore persists the last point of agreement between the local and
// the cloud save. Absent, unreadable or unknown-schema values read as nil.
type WatermarkStore struct {
	kv     KeyValueStorage
	clock  utils.Clock
	logger *logger.Logger
}

func NewWatermarkStore(kv KeyValueStorage, clock utils.Clock, logger *logger.Logger) *WatermarkStore {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &WatermarkStore{kv: kv, clock: clock, logger: logger}
}

// Read returns the stored watermark or nil when the device never synced.
func (w *WatermarkStore) Read(ctx context.Context) *models.SyncWatermark {
	raw, err := w.kv.Get(ctx, KeySyncWatermark)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			w.logger.Warn().Err(err).Msg("watermark read failed")
		}
		return nil
	}

	var wm models.SyncWatermark
	if err = json.Unmarshal([]byte(raw), &wm); err != nil {
		w.logger.Warn().Err(err).Msg("stored watermark is corrupt")
		return nil
	}
	if wm.SchemaVersion != models.WatermarkSchemaVersion {
		w.logger.Warn().Int("schema_version", wm.SchemaVersion).Msg("stored watermark has unknown schema")
		return nil
	}

	return &wm
}

// Write stores a fresh watermark and returns it, or nil when it could not be
// persisted.
func (w *WatermarkStore) Write(ctx context.Context, cloudRevision *int64, localFingerprint *string) *models.SyncWatermark {
	wm := models.SyncWatermark{
		SchemaVersion:    models.WatermarkSchemaVersion,
		CloudRevision:    cloneInt64(cloudRevision),
		LocalFingerprint: cloneString(localFingerprint),
		UpdatedAtMs:      w.clock.Now().UnixMilli(),
	}

	raw, err := json.Marshal(wm)
	if err != nil {
		w.logger.Err(err).Msg("encoding watermark failed")
		return nil
	}
	if err = w.kv.Set(ctx, KeySyncWatermark, string(raw)); err != nil {
		w.logger.Warn().Err(err).Msg("watermark write failed")
		return nil
	}

	return &wm
}

// Clear forgets the watermark.
func (w *WatermarkStore) Clear(ctx context.Context) {
	if err := w.kv.Delete(ctx, KeySyncWatermark); err != nil {
		w.logger.Warn().Err(err).Msg("watermark clear failed")
	}
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
