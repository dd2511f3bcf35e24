// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-save-sync/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validCredentials() models.Credentials {
	return models.Credentials{Email: "ann@example.com", Password: "correct horse"}
}

func validPutSaveRequest() models.PutSaveRequest {
	return models.PutSaveRequest{
		Payload:          models.SavePayload{"version": 2, "gold": 10},
		VirtualScore:     12.5,
		AppVersion:       "1.4.0",
		ExpectedRevision: models.Int64Ptr(3),
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewSaveSyncValidator()
	ctx := context.Background()

	creds := validCredentials()
	req := validPutSaveRequest()

	assert.NoError(t, v.Validate(ctx, creds))
	assert.NoError(t, v.Validate(ctx, &creds))
	assert.NoError(t, v.Validate(ctx, req))
	assert.NoError(t, v.Validate(ctx, &req))
	assert.ErrorIs(t, v.Validate(ctx, "credentials"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, nil), ErrUnsupportedType)
}

func TestValidate_UnknownField(t *testing.T) {
	v := NewSaveSyncValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), validCredentials(), "nickname"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(context.Background(), validPutSaveRequest(), "owner"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

func TestValidate_Credentials(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *models.Credentials)
		wantErr error
	}{
		{name: "valid", modify: func(c *models.Credentials) {}},
		{name: "empty email", modify: func(c *models.Credentials) { c.Email = "" }, wantErr: ErrEmptyEmail},
		{name: "blank email", modify: func(c *models.Credentials) { c.Email = "   " }, wantErr: ErrEmptyEmail},
		{name: "no at sign", modify: func(c *models.Credentials) { c.Email = "ann.example.com" }, wantErr: ErrInvalidEmail},
		{name: "display name", modify: func(c *models.Credentials) { c.Email = "Ann <ann@example.com>" }, wantErr: ErrInvalidEmail},
		{name: "short password", modify: func(c *models.Credentials) { c.Password = "1234567" }, wantErr: ErrPasswordTooShort},
		{name: "minimum password", modify: func(c *models.Credentials) { c.Password = "12345678" }},
		{name: "huge password", modify: func(c *models.Credentials) { c.Password = strings.Repeat("x", 2048) }, wantErr: ErrPasswordTooLong},
	}

	v := NewSaveSyncValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := validCredentials()
			tt.modify(&creds)

			err := v.Validate(context.Background(), creds)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Credentials_FieldScoping(t *testing.T) {
	v := NewSaveSyncValidator()
	creds := models.Credentials{Email: "ann@example.com"}

	// login checks only that an email is present; the password rules are
	// for registration
	assert.NoError(t, v.Validate(context.Background(), creds, FieldEmail))
	assert.ErrorIs(t, v.Validate(context.Background(), creds), ErrPasswordTooShort)
}

// ---------------------------------------------------------------------------
// PutSaveRequest
// ---------------------------------------------------------------------------

func TestValidate_PutSaveRequest(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *models.PutSaveRequest)
		wantErr error
	}{
		{name: "valid", modify: func(r *models.PutSaveRequest) {}},
		{name: "first write", modify: func(r *models.PutSaveRequest) { r.ExpectedRevision = nil }},
		{name: "nil payload", modify: func(r *models.PutSaveRequest) { r.Payload = nil }, wantErr: ErrEmptyPayload},
		{name: "empty payload", modify: func(r *models.PutSaveRequest) { r.Payload = models.SavePayload{} }, wantErr: ErrEmptyPayload},
		{name: "NaN score", modify: func(r *models.PutSaveRequest) { r.VirtualScore = math.NaN() }, wantErr: ErrInvalidScore},
		{name: "infinite score", modify: func(r *models.PutSaveRequest) { r.VirtualScore = math.Inf(1) }, wantErr: ErrInvalidScore},
		{name: "negative score", modify: func(r *models.PutSaveRequest) { r.VirtualScore = -3 }},
		{name: "long app version", modify: func(r *models.PutSaveRequest) { r.AppVersion = strings.Repeat("1", 65) }, wantErr: ErrInvalidAppVersion},
		{name: "empty app version", modify: func(r *models.PutSaveRequest) { r.AppVersion = "" }},
		{name: "zero revision", modify: func(r *models.PutSaveRequest) { r.ExpectedRevision = models.Int64Ptr(0) }, wantErr: ErrInvalidRevision},
		{name: "negative revision", modify: func(r *models.PutSaveRequest) { r.ExpectedRevision = models.Int64Ptr(-1) }, wantErr: ErrInvalidRevision},
	}

	v := NewSaveSyncValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPutSaveRequest()
			tt.modify(&req)

			err := v.Validate(context.Background(), &req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
