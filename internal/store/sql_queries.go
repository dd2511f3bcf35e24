// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

var (
	psql   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

const (
	saveMetaColumns = "revision, updated_at, virtual_score, app_version"
	returningMeta   = "RETURNING " + saveMetaColumns
)

// ── accounts ────────────────────────────────────────────────────────────────

func buildCreateAccountQuery(email, passwordHash string) (string, []any, error) {
	return psql.Insert("accounts").
		Columns("email", "password_hash").
		Values(email, passwordHash).
		Suffix("RETURNING account_id, created_at").
		ToSql()
}

func buildFindAccountByEmailQuery(email string) (string, []any, error) {
	return psql.Select("account_id", "email", "password_hash", "created_at").
		From("accounts").
		Where(sq.Eq{"email": email}).
		ToSql()
}

// ── saves ───────────────────────────────────────────────────────────────────

func buildSelectLatestSaveQuery(accountID int64) (string, []any, error) {
	return psql.Select("payload", saveMetaColumns).
		From("saves").
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
}

func buildSelectSaveMetaQuery(accountID int64) (string, []any, error) {
	return psql.Select(saveMetaColumns).
		From("saves").
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
}

// buildInsertFirstSaveQuery creates revision 1. It returns no row when a save
// already exists, which the caller reports as a conflict.
func buildInsertFirstSaveQuery(accountID int64, payload string, virtualScore float64, appVersion string) (string, []any, error) {
	return psql.Insert("saves").
		Columns("account_id", "payload", "virtual_score", "app_version", "revision", "updated_at").
		Values(accountID, payload, virtualScore, appVersion, 1, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (account_id) DO NOTHING " + returningMeta).
		ToSql()
}

// buildUpdateSaveQuery bumps the revision only if it still equals expected.
func buildUpdateSaveQuery(accountID int64, payload string, virtualScore float64, appVersion string, expected int64) (string, []any, error) {
	return psql.Update("saves").
		Set("payload", payload).
		Set("virtual_score", virtualScore).
		Set("app_version", appVersion).
		Set("revision", sq.Expr("revision + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"account_id": accountID, "revision": expected}).
		Suffix(returningMeta).
		ToSql()
}

// ── refresh sessions ────────────────────────────────────────────────────────

func buildInsertSessionQuery(tokenHash, familyID string, accountID int64, expiresAt time.Time) (string, []any, error) {
	return psql.Insert("refresh_sessions").
		Columns("token_hash", "family_id", "account_id", "expires_at").
		Values(tokenHash, familyID, accountID, expiresAt).
		ToSql()
}

func buildSelectSessionQuery(tokenHash string) (string, []any, error) {
	return psql.Select("token_hash", "family_id", "account_id", "expires_at", "revoked_at").
		From("refresh_sessions").
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
}

func buildRevokeSessionQuery(tokenHash string, at time.Time) (string, []any, error) {
	return psql.Update("refresh_sessions").
		Set("revoked_at", at).
		Where(sq.Eq{"token_hash": tokenHash, "revoked_at": nil}).
		ToSql()
}

func buildRevokeFamilyQuery(familyID string, at time.Time) (string, []any, error) {
	return psql.Update("refresh_sessions").
		Set("revoked_at", at).
		Where(sq.Eq{"family_id": familyID, "revoked_at": nil}).
		ToSql()
}

// ── local key-value ─────────────────────────────────────────────────────────

func buildGetValueQuery(key string) (string, []any, error) {
	return sqlite.Select("value").
		From("kv").
		Where(sq.Eq{"key": key}).
		ToSql()
}

func buildUpsertValueQuery(key, value string, updatedAtMs int64) (string, []any, error) {
	return sqlite.Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, value, updatedAtMs).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteValueQuery(key string) (string, []any, error) {
	return sqlite.Delete("kv").
		Where(sq.Eq{"key": key}).
		ToSql()
}
