package models

// WatermarkSchemaVersion is the only watermark layout understood by the
// client.
const WatermarkSchemaVersion = 1

// SyncWatermark records the last point at which the local and cloud copies
// were known to agree. A nil watermark means the device never synced.
type SyncWatermark struct {
	SchemaVersion    int     `json:"schemaVersion"`
	CloudRevision    *int64  `json:"cloudRevision"`
	LocalFingerprint *string `json:"localFingerprint"`
	UpdatedAtMs      int64   `json:"updatedAtMs"`
}

// SyncAction is the outcome of the bootstrap decision.
type SyncAction string

const (
	SyncActionNoop           SyncAction = "noop"
	SyncActionLoadCloud      SyncAction = "load_cloud"
	SyncActionOverwriteCloud SyncAction = "overwrite_cloud"
	SyncActionConflict       SyncAction = "conflict"
)
