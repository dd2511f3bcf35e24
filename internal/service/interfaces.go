package service

import (
	"context"

	"github.com/MKhiriev/go-save-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService manages cloud accounts and their tokens.
type AuthService interface {
	Register(ctx context.Context, creds models.Credentials) (models.AuthTokens, error)
	Login(ctx context.Context, creds models.Credentials) (models.AuthTokens, error)

	// Refresh rotates refreshToken. Presenting an already rotated token
	// revokes every token descended from the same login.
	Refresh(ctx context.Context, refreshToken string) (models.AuthTokens, error)

	// Logout revokes refreshToken. Unknown tokens are ignored.
	Logout(ctx context.Context, refreshToken string) error

	ParseAccessToken(ctx context.Context, accessToken string) (models.Token, error)

	// NewCSRFToken returns a random value for the double-submit cookie.
	NewCSRFToken() (string, error)
}

// SaveService serves the latest cloud save of an account.
type SaveService interface {
	GetLatest(ctx context.Context, accountID int64) (models.CloudSave, error)
	PutLatest(ctx context.Context, accountID int64, req models.PutSaveRequest) (models.CloudSaveMeta, error)
}

// AppInfoService exposes build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
