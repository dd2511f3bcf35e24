package service

import "errors"

// Client errors.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSyncInProgress   = errors.New("sync already in progress")
	ErrNoConflict       = errors.New("no conflict to resolve")
	ErrNoCloudSave      = errors.New("no cloud save")
	ErrNoLocalSave      = errors.New("no local save")
	ErrUnavailable      = errors.New("sync unavailable")

	// ErrSessionExpired means the refresh token was rejected; the user has
	// to log in again.
	ErrSessionExpired = errors.New("session expired")
)

// Server errors.
var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrWrongPassword           = errors.New("wrong password")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrRefreshTokenInvalid covers unknown, expired and revoked refresh
	// tokens. A revoked token also revokes its family.
	ErrRefreshTokenInvalid = errors.New("refresh token invalid")

	ErrVersionIsNotSpecified = errors.New("version is not specified")
)
