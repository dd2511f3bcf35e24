package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/models"
)

type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] on db.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating refresh session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session models.RefreshSession) error {
	query, args, err := buildInsertSessionQuery(session.TokenHash, session.FamilyID, session.AccountID, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error inserting session")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *sessionRepository) FindSession(ctx context.Context, tokenHash string) (models.RefreshSession, error) {
	query, args, err := buildSelectSessionQuery(tokenHash)
	if err != nil {
		return models.RefreshSession{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		session models.RefreshSession
		revoked sql.NullTime
	)
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&session.TokenHash, &session.FamilyID, &session.AccountID, &session.ExpiresAt, &revoked)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.RefreshSession{}, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.FindSession").Msg("error reading session")
		return models.RefreshSession{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if revoked.Valid {
		session.RevokedAt = &revoked.Time
	}

	return session, nil
}

// RevokeSession marks one live session revoked and reports whether this call
// did it. Two concurrent refreshes with the same token see exactly one true.
func (r *sessionRepository) RevokeSession(ctx context.Context, tokenHash string, at time.Time) (bool, error) {
	query, args, err := buildRevokeSessionQuery(tokenHash, at)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.db.withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected == 1, nil
}

func (r *sessionRepository) RevokeFamily(ctx context.Context, familyID string, at time.Time) error {
	query, args, err := buildRevokeFamilyQuery(familyID, at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
