package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a parsed access token. The client reads it without verifying the
// signature to learn the account and the expiry; the server builds it when
// issuing tokens.
type Token struct {
	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent as a bearer token.
	SignedString string `json:"-"`

	// AccountID is the parsed "sub" claim.
	AccountID int64 `json:"-"`
}

// GetAccountID parses the subject claim as a base-10 account id.
func (t *Token) GetAccountID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting account id from token: %w", err)
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting account id from token to int64: %w", err)
	}

	return id, nil
}

// ExpiresWithin reports whether the token expires within d of now. Tokens
// without an expiry never do.
func (t *Token) ExpiresWithin(now time.Time, d time.Duration) bool {
	if t.ExpiresAt == nil {
		return false
	}
	return !now.Add(d).Before(t.ExpiresAt.Time)
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
