// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/utils"
)

// sqliteStorage is the [KeyValueStorage] kept in the client's SQLite file.
// Every Set is a single upsert, so a reader never sees a partial value.
type sqliteStorage struct {
	db     *DB
	clock  utils.Clock
	logger *logger.Logger
}

// NewSQLiteStorage returns a [KeyValueStorage] on a migrated SQLite handle.
func NewSQLiteStorage(db *DB, clock utils.Clock, logger *logger.Logger) KeyValueStorage {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &sqliteStorage{db: db, clock: clock, logger: logger}
}

func (s *sqliteStorage) Get(ctx context.Context, key string) (string, error) {
	query, args, err := buildGetValueQuery(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: get %q: %w", ErrStorageUnavailable, key, err)
	}

	return value, nil
}

func (s *sqliteStorage) Set(ctx context.Context, key, value string) error {
	query, args, err := buildUpsertValueQuery(key, value, s.clock.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: set %q: %w", ErrStorageUnavailable, key, err)
	}

	return nil
}

func (s *sqliteStorage) Delete(ctx context.Context, key string) error {
	query, args, err := buildDeleteValueQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: delete %q: %w", ErrStorageUnavailable, key, err)
	}

	return nil
}
