package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-save-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyValueStorage is the local persistent store of opaque string values.
// Implementations return [ErrKeyNotFound] for absent keys and wrap
// [ErrStorageUnavailable] when the backing store cannot be used.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AccountRepository persists cloud accounts.
type AccountRepository interface {
	CreateAccount(ctx context.Context, email, passwordHash string) (models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
}

// SaveRepository persists the latest cloud save of each account.
type SaveRepository interface {
	// GetLatest returns [ErrSaveNotFound] when the account has no save.
	GetLatest(ctx context.Context, accountID int64) (models.CloudSave, error)

	// PutLatest writes the save if the stored revision equals expected
	// (nil meaning "no save yet") and returns the new meta. On mismatch it
	// returns the stored meta together with [ErrRevisionConflict].
	PutLatest(ctx context.Context, accountID int64, save models.PutSaveRequest) (models.CloudSaveMeta, error)
}

// SessionRepository persists refresh token sessions. Tokens are stored as
// keyed hashes only.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.RefreshSession) error
	FindSession(ctx context.Context, tokenHash string) (models.RefreshSession, error)
	RevokeSession(ctx context.Context, tokenHash string, at time.Time) (bool, error)
	RevokeFamily(ctx context.Context, familyID string, at time.Time) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
