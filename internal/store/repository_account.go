package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/models"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository].
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] on db.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount inserts an account and returns it with the server-assigned
// id and creation time. A duplicate email yields [ErrEmailAlreadyExists].
func (r *accountRepository) CreateAccount(ctx context.Context, email, passwordHash string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateAccountQuery(email, passwordHash)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	account := models.Account{Email: email, PasswordHash: passwordHash}
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&account.AccountID, &account.CreatedAt)
	})
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error inserting account")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Account{}, ErrEmailAlreadyExists
		default:
			return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return account, nil
}

// FindAccountByEmail returns [ErrAccountNotFound] when no account matches.
func (r *accountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindAccountByEmailQuery(email)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var account models.Account
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&account.AccountID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.FindAccountByEmail").Msg("error finding account")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return account, nil
}
