// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-save-sync/internal/adapter"
	"github.com/MKhiriev/go-save-sync/internal/app"
	"github.com/MKhiriev/go-save-sync/models"
)

// failure is how a failed sync attempt shows up in the controller state.
type failure struct {
	status  models.SyncStatus
	message string
	// keep leaves the current status alone.
	keep bool
}

// describeFailure translates a gateway or local error into a status and a
// message for the user.
func describeFailure(err error) failure {
	switch {
	case errors.Is(err, ErrBackoffCanceled), errors.Is(err, context.Canceled):
		return failure{keep: true}
	case errors.Is(err, ErrSessionExpired):
		return failure{status: models.SyncStatusIdle, message: app.MsgPleaseLogInAgain}
	case errors.Is(err, adapter.ErrNetworkUnavailable):
		return failure{status: models.SyncStatusOffline, message: app.MsgOffline}
	case adapter.IsWarming(err):
		return failure{status: models.SyncStatusError, message: app.MsgBackendUnavailable}
	case errors.Is(err, adapter.ErrPayloadTooLarge):
		return failure{status: models.SyncStatusError, message: app.MsgCloudSaveTooLarge}
	case errors.Is(err, adapter.ErrRateLimited):
		return failure{status: models.SyncStatusError, message: app.MsgCloudRateLimited}
	case errors.Is(err, ErrNoLocalSave):
		return failure{status: models.SyncStatusError, message: app.MsgLocalSaveCorrupt}
	default:
		return failure{status: models.SyncStatusError, message: fmt.Sprintf("%s: %v", app.MsgSyncFailed, err)}
	}
}
