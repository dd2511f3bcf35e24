// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains human-readable messages shared by the save sync
// client and the cloud backend.
//
// Server Msg* constants are written into HTTP response bodies; client Msg*
// constants end up in the sync controller's Message field and the CLI/TUI.
package app

// Cloud backend responses.
const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the email/password pair does
	// not match an account.
	MsgInvalidLoginPassword = "invalid email or password"

	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgRefreshTokenInvalid is returned when the refresh cookie is missing,
	// expired or was already used.
	MsgRefreshTokenInvalid = "refresh token is invalid or reused"

	MsgCSRFMismatch = "csrf token mismatch"

	MsgNoAccountIDProvided = "no account ID provided"

	MsgEmailAlreadyExists = "email already exists"

	MsgRegistrationFailed = "registration failed"
	MsgLoginFailed        = "login failed"

	// MsgSaveRevisionConflict is sent with the current meta on a 409; the
	// client has to choose a side before writing again.
	MsgSaveRevisionConflict = "save revision conflict"

	MsgPayloadTooLarge = "save payload too large"
	MsgRateLimited     = "too many save writes, slow down"
	MsgNotReady        = "backend is starting"
	MsgNotFound        = "not found"
)

// Sync controller messages.
const (
	MsgPleaseLogInAgain = "please log in again"

	MsgOffline = "offline, sync paused"

	// MsgWarmingUp is shown while the backoff ladder waits for the backend.
	MsgWarmingUp = "cloud is waking up, retrying"

	MsgBackendUnavailable = "cloud is unavailable, try again later"

	MsgCloudConflict = "cloud save changed on another device, choose which copy to keep"

	MsgCloudSaveTooLarge = "save is too large for the cloud"
	MsgCloudRateLimited  = "too many uploads, try again in a moment"

	MsgLoadSkippedActivity = "cloud save not loaded: an activity is in progress"

	MsgLocalSaveCorrupt = "local save is corrupt"

	MsgSyncFailed = "sync failed"

	MsgSynced = "synced"
)
