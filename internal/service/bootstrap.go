// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-save-sync/models"

// DecideBootstrap classifies the relationship between the local save, the
// cloud save and the last point of agreement. It only compares values for
// equality and nullness.
//
// An empty localFingerprint means there is no local save. cloudRevision is
// ignored when hasCloudSave is false.
func DecideBootstrap(watermark *models.SyncWatermark, hasCloudSave bool, cloudRevision *int64, localFingerprint string) models.SyncAction {
	if localFingerprint == "" {
		if hasCloudSave {
			return models.SyncActionConflict
		}
		return models.SyncActionNoop
	}

	if !hasCloudSave {
		if watermark != nil && watermark.LocalFingerprint != nil && *watermark.LocalFingerprint == localFingerprint {
			return models.SyncActionNoop
		}
		return models.SyncActionOverwriteCloud
	}

	if watermark == nil || watermark.CloudRevision == nil || watermark.LocalFingerprint == nil {
		return models.SyncActionConflict
	}
	if cloudRevision == nil {
		return models.SyncActionConflict
	}

	localChanged := localFingerprint != *watermark.LocalFingerprint
	cloudChanged := *cloudRevision != *watermark.CloudRevision

	switch {
	case !localChanged && !cloudChanged:
		return models.SyncActionNoop
	case cloudChanged && !localChanged:
		return models.SyncActionLoadCloud
	case localChanged && !cloudChanged:
		return models.SyncActionOverwriteCloud
	default:
		return models.SyncActionConflict
	}
}
