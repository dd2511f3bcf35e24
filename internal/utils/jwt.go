package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-save-sync/models"
)

// ErrInvalidAuthorizationHeader is returned for a missing or malformed
// bearer header.
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// GenerateJWTToken signs an HS256 access token for accountID.
func GenerateJWTToken(issuer string, accountID int64, tokenDuration time.Duration, signKey string, now time.Time) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(accountID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{RegisteredClaims: claims, SignedString: tokenString, AccountID: accountID}, nil
}

// ValidateAndParseJWTToken verifies signature, issuer and expiry and returns
// the parsed token.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	var parsed models.Token
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	accountID, err := parsed.GetAccountID()
	if err != nil {
		return models.Token{}, err
	}
	parsed.AccountID = accountID
	parsed.SignedString = tokenString

	return parsed, nil
}

// ParseUnverifiedToken reads the claims of tokenString without checking the
// signature. Clients use it to learn the account and expiry of their own
// access token.
func ParseUnverifiedToken(tokenString string) (models.Token, error) {
	var parsed models.Token
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &parsed); err != nil {
		return models.Token{}, fmt.Errorf("parse token: %w", err)
	}

	accountID, err := parsed.GetAccountID()
	if err != nil {
		return models.Token{}, err
	}
	parsed.AccountID = accountID
	parsed.SignedString = tokenString

	return parsed, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer" value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
