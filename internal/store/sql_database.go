package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/migrations"
)

var defaultRetryDelays = []time.Duration{100 * time.Millisecond, 300 * time.Millisecond}

// DB is a database handle shared by the repositories of one process.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	// retryDelays are the waits between attempts of a retryable operation;
	// nil selects the defaults, an empty slice disables retries.
	retryDelays []time.Duration
}

// NewDB wraps an open connection. A nil classificator disables retries.
func NewDB(conn *sql.DB, classificator ErrorClassificator, log *logger.Logger) *DB {
	return &DB{DB: conn, errorClassificator: classificator, logger: log}
}

// Migrate applies the PostgreSQL schema.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// MigrateSQLite applies the local key-value schema.
func (db *DB) MigrateSQLite() error {
	return migrations.MigrateSQLite(db.DB)
}

// withRetry runs op and repeats it while the error classificator reports the
// failure as retryable. Without a classificator op runs exactly once.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	err := op()
	if err == nil || db.errorClassificator == nil {
		return err
	}

	delays := db.retryDelays
	if delays == nil {
		delays = defaultRetryDelays
	}

	for _, delay := range delays {
		if db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		db.logger.Warn().Err(err).Dur("delay", delay).Msg("retrying database operation")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}

		if err = op(); err == nil {
			return nil
		}
	}

	return err
}
