package models

import "time"

// SyncStatus is the primary state of the sync controller.
type SyncStatus string

const (
	SyncStatusIdle           SyncStatus = "idle"
	SyncStatusAuthenticating SyncStatus = "authenticating"
	SyncStatusReady          SyncStatus = "ready"
	SyncStatusError          SyncStatus = "error"
	SyncStatusOffline        SyncStatus = "offline"
	SyncStatusWarming        SyncStatus = "warming"
)

// AutoSyncStatus is the auto-sync sub-state of the sync controller.
type AutoSyncStatus string

const (
	AutoSyncIdle     AutoSyncStatus = "idle"
	AutoSyncSyncing  AutoSyncStatus = "syncing"
	AutoSyncConflict AutoSyncStatus = "conflict"
)

// SyncState is an immutable snapshot of the controller published to
// subscribers.
type SyncState struct {
	Status          SyncStatus
	AutoSync        AutoSyncStatus
	AutoSyncEnabled bool
	Authenticated   bool
	Email           string
	Message         string
	Conflict        *ConflictRecord
	CloudMeta       *CloudSaveMeta
	Watermark       *SyncWatermark
	// RetryAt is set while the controller waits for a warming backend.
	RetryAt  *time.Time
	LastSync *time.Time
}
