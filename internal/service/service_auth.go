package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/crypto"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/store"
	"github.com/MKhiriev/go-save-sync/internal/utils"
	"github.com/MKhiriev/go-save-sync/internal/validators"
	"github.com/MKhiriev/go-save-sync/models"
)

// authService is the concrete implementation of AuthService.
//
// Access tokens are short-lived HS256 JWTs. Refresh tokens are random
// strings persisted only as keyed hashes; each refresh revokes the
// presented token and issues a new one in the same family.
type authService struct {
	accounts store.AccountRepository
	sessions store.SessionRepository

	passwords   crypto.PasswordHasher
	tokens      crypto.TokenGenerator
	tokenHasher *utils.TokenHasher
	validator   validators.Validator

	tokenSignKey    string
	tokenIssuer     string
	accessDuration  time.Duration
	refreshDuration time.Duration

	clock  utils.Clock
	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the account and session
// repositories and the token settings in cfg.
//
// The returned service is safe for concurrent use.
func NewAuthService(
	accounts store.AccountRepository,
	sessions store.SessionRepository,
	passwords crypto.PasswordHasher,
	tokens crypto.TokenGenerator,
	cfg config.ServerAuth,
	clock utils.Clock,
	logger *logger.Logger,
) AuthService {
	if clock == nil {
		clock = utils.SystemClock{}
	}

	return &authService{
		accounts:        accounts,
		sessions:        sessions,
		passwords:       passwords,
		tokens:          tokens,
		tokenHasher:     utils.NewTokenHasher(cfg.TokenSignKey),
		validator:       validators.NewSaveSyncValidator(),
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		clock:           clock,
		logger:          logger,
	}
}

// Register creates an account and opens a new token family for it.
//
// Returns ErrInvalidDataProvided for a malformed email or a weak password
// and a wrapped store.ErrEmailAlreadyExists when the email is taken.
func (a *authService) Register(ctx context.Context, creds models.Credentials) (models.AuthTokens, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, creds); err != nil {
		log.Debug().Err(err).Str("email", creds.Email).Msg("invalid registration data")
		return models.AuthTokens{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := a.passwords.Hash(creds.Password)
	if err != nil {
		return models.AuthTokens{}, fmt.Errorf("hash password: %w", err)
	}

	account, err := a.accounts.CreateAccount(ctx, creds.Email, hash)
	if err != nil {
		log.Err(err).Str("email", creds.Email).Msg("account creation ended with error")
		return models.AuthTokens{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	return a.issue(ctx, account.AccountID, account.Email, uuid.NewString())
}

// Login verifies the password and opens a new token family.
//
// An unknown email and a wrong password both return ErrWrongPassword.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.AuthTokens, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, creds, validators.FieldEmail); err != nil || creds.Password == "" {
		return models.AuthTokens{}, ErrInvalidDataProvided
	}

	account, err := a.accounts.FindAccountByEmail(ctx, creds.Email)
	if errors.Is(err, store.ErrAccountNotFound) {
		log.Info().Str("email", creds.Email).Msg("login for unknown email")
		return models.AuthTokens{}, ErrWrongPassword
	}
	if err != nil {
		return models.AuthTokens{}, fmt.Errorf("account search by email failed: %w", err)
	}

	ok, err := a.passwords.Verify(creds.Password, account.PasswordHash)
	if err != nil {
		log.Err(err).Int64("account_id", account.AccountID).Msg("stored password hash unreadable")
		return models.AuthTokens{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		log.Info().Int64("account_id", account.AccountID).Msg("wrong password")
		return models.AuthTokens{}, ErrWrongPassword
	}

	return a.issue(ctx, account.AccountID, account.Email, uuid.NewString())
}

// Refresh rotates refreshToken.
//
// A token that was already rotated or revoked is treated as stolen: the
// whole family is revoked, so the legitimate holder is logged out as well.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.AuthTokens, error) {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return models.AuthTokens{}, ErrRefreshTokenInvalid
	}

	hash := a.tokenHasher.Hash(refreshToken)
	session, err := a.sessions.FindSession(ctx, hash)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.AuthTokens{}, ErrRefreshTokenInvalid
	}
	if err != nil {
		return models.AuthTokens{}, fmt.Errorf("find refresh session: %w", err)
	}

	now := a.clock.Now()
	if session.RevokedAt != nil {
		log.Warn().Str("family_id", session.FamilyID).Int64("account_id", session.AccountID).Msg("refresh token reuse, revoking family")
		return models.AuthTokens{}, a.revokeFamily(ctx, session.FamilyID, now)
	}
	if !now.Before(session.ExpiresAt) {
		return models.AuthTokens{}, ErrRefreshTokenInvalid
	}

	revoked, err := a.sessions.RevokeSession(ctx, hash, now)
	if err != nil {
		return models.AuthTokens{}, fmt.Errorf("revoke refresh session: %w", err)
	}
	if !revoked {
		// lost a race with another refresh of the same token
		log.Warn().Str("family_id", session.FamilyID).Msg("concurrent refresh token reuse, revoking family")
		return models.AuthTokens{}, a.revokeFamily(ctx, session.FamilyID, now)
	}

	return a.issue(ctx, session.AccountID, "", session.FamilyID)
}

func (a *authService) revokeFamily(ctx context.Context, familyID string, now time.Time) error {
	if err := a.sessions.RevokeFamily(ctx, familyID, now); err != nil {
		return fmt.Errorf("%w: revoke family: %w", ErrRefreshTokenInvalid, err)
	}
	return ErrRefreshTokenInvalid
}

// Logout revokes refreshToken. Unknown and already revoked tokens are
// ignored.
func (a *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if _, err := a.sessions.RevokeSession(ctx, a.tokenHasher.Hash(refreshToken), a.clock.Now()); err != nil {
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	return nil
}

// ParseAccessToken validates signature, issuer and expiry. Every failure is
// reported as ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseAccessToken(ctx context.Context, accessToken string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(accessToken, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("access token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// NewCSRFToken implements AuthService.
func (a *authService) NewCSRFToken() (string, error) {
	token, err := a.tokens.Generate()
	if err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	return token, nil
}

// issue signs an access token and stores a fresh refresh token in familyID.
func (a *authService) issue(ctx context.Context, accountID int64, email, familyID string) (models.AuthTokens, error) {
	now := a.clock.Now()

	access, err := utils.GenerateJWTToken(a.tokenIssuer, accountID, a.accessDuration, a.tokenSignKey, now)
	if err != nil {
		return models.AuthTokens{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := a.tokens.Generate()
	if err != nil {
		return models.AuthTokens{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	expiresAt := now.Add(a.refreshDuration)
	err = a.sessions.CreateSession(ctx, models.RefreshSession{
		TokenHash: a.tokenHasher.Hash(refresh),
		FamilyID:  familyID,
		AccountID: accountID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return models.AuthTokens{}, fmt.Errorf("store refresh session: %w", err)
	}

	return models.AuthTokens{
		AccountID:        accountID,
		Email:            email,
		AccessToken:      access.String(),
		RefreshToken:     refresh,
		RefreshExpiresAt: expiresAt,
	}, nil
}
