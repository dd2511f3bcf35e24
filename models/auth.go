// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Credentials are the email and password sent to register and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccessTokenResponse is the body returned by register, login and refresh.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// CSRFResponse is the body returned by GET /api/auth/csrf.
type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// Session is the client-side credential set persisted between runs.
type Session struct {
	AccessToken  string
	RefreshToken string
	CSRFToken    string
	Email        string
}

// Empty reports whether the session carries no access token.
func (s Session) Empty() bool {
	return s.AccessToken == ""
}

// Account is a server-side cloud save account.
type Account struct {
	AccountID    int64     `json:"-"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with Account.
func (a Account) TableName() string {
	return "accounts"
}

// RefreshSession is a server-side refresh token record. Tokens rotate on
// every refresh; a revoked token presented again revokes its whole family.
type RefreshSession struct {
	TokenHash string
	FamilyID  string
	AccountID int64
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Cookie and header names shared by the cloud backend and its client.
const (
	RefreshCookieName = "refresh_token"
	CSRFCookieName    = "csrf_token"
	CSRFHeaderName    = "X-CSRF-Token"

	// AuthCookiePath scopes the refresh cookie to the auth routes.
	AuthCookiePath = "/api/auth"
)

// AuthTokens is what the auth service issues on register, login and
// refresh. The refresh token travels only in a cookie.
type AuthTokens struct {
	AccountID        int64
	Email            string
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}
