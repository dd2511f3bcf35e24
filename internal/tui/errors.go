// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-save-sync/internal/adapter"
	"github.com/MKhiriev/go-save-sync/internal/app"
	"github.com/MKhiriev/go-save-sync/internal/service"
)

// humanizeActionError turns an action failure into a line for the error
// overlay. The controller already explains network failures in its state
// message, so those map to the same text.
func humanizeActionError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrNoConflict):
		return "There is no conflict to resolve."
	case errors.Is(err, service.ErrNoCloudSave):
		return "The cloud has no save yet."
	case errors.Is(err, service.ErrNoLocalSave):
		return "There is no local save to upload."
	case errors.Is(err, service.ErrNotAuthenticated):
		return app.MsgPleaseLogInAgain
	case errors.Is(err, service.ErrSyncInProgress):
		return "A sync is already running."
	case errors.Is(err, adapter.ErrUnauthorized):
		return app.MsgInvalidLoginPassword
	case errors.Is(err, adapter.ErrConflict):
		return app.MsgEmailAlreadyExists
	case errors.Is(err, adapter.ErrNetworkUnavailable), errors.Is(err, service.ErrUnavailable):
		return app.MsgOffline
	case adapter.IsWarming(err):
		return app.MsgBackendUnavailable
	default:
		return err.Error()
	}
}
