// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the cloud save backend contract.
//
// [CloudGateway] decouples the sync controller from the transport. The HTTP
// implementation ([NewHTTPCloudGateway]) keeps the access token in memory and
// the refresh and CSRF cookies in a cookie jar. Error values defined in
// errors.go are mapped from HTTP statuses and transport failures so callers
// can use [errors.Is] (e.g. [ErrUnauthorized] for 401, [ErrBackendWarming]
// for 502/503/504 and timeouts).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-save-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/cloud_gateway_mock.go -package=mock

// CloudGateway is the auth and save API of the cloud backend.
type CloudGateway interface {
	// SetSession restores previously persisted credentials.
	SetSession(session models.Session)

	// Session returns the credentials currently held, including the refresh
	// token cookie.
	Session() models.Session

	// Register creates an account and starts a session.
	Register(ctx context.Context, creds models.Credentials) (models.Session, error)

	// Login starts a session; invalid credentials yield [ErrUnauthorized].
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)

	// Refresh exchanges the refresh cookie for a new access token. A CSRF
	// rejection triggers one CSRF token re-fetch; nothing else is retried.
	Refresh(ctx context.Context) (models.Session, error)

	// Logout ends the session on the server and forgets local credentials.
	Logout(ctx context.Context) error

	// GetLatestSave returns nil without error when the account has no save.
	GetLatestSave(ctx context.Context) (*models.CloudSave, error)

	// PutLatestSave writes the save; a stale expected revision yields a
	// [*RevisionConflictError] carrying the server's meta.
	PutLatestSave(ctx context.Context, req models.PutSaveRequest) (models.CloudSaveMeta, error)

	// ProbeReady returns nil when the backend answers, [ErrBackendWarming]
	// while it is starting.
	ProbeReady(ctx context.Context) error
}
