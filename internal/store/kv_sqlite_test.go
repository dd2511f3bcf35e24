// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/envelope"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/utils"
)

func newTestSQLiteStorage(t *testing.T) (KeyValueStorage, *DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "local.db")

	db, err := NewConnectSQLite(context.Background(), path, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.MigrateSQLite())

	_, err = os.Stat(path)
	require.NoError(t, err)

	return NewSQLiteStorage(db, utils.ClockFunc(func() time.Time { return time.UnixMilli(42) }), logger.Nop()), db
}

func TestSQLiteStorage_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	kv, db := newTestSQLiteStorage(t)

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	require.NoError(t, kv.Set(ctx, "k", "v2"))

	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	var updatedAt int64
	require.NoError(t, db.QueryRow(`SELECT updated_at FROM kv WHERE key = 'k'`).Scan(&updatedAt))
	assert.Equal(t, int64(42), updatedAt)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// deleting an absent key is not an error
	require.NoError(t, kv.Delete(ctx, "k"))
}

func TestSQLiteStorage_ClosedDBIsUnavailable(t *testing.T) {
	ctx := context.Background()
	kv, db := newTestSQLiteStorage(t)
	require.NoError(t, db.Close())

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, kv.Set(ctx, "k", "v"), ErrStorageUnavailable)
	assert.ErrorIs(t, kv.Delete(ctx, "k"), ErrStorageUnavailable)
}

func TestNewClientStorages_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	cfg := config.ClientStorage{Path: filepath.Join(t.TempDir(), "save-sync.db")}
	codec := envelope.NewCodec(nil, nil)

	first := NewClientStorages(ctx, cfg, codec, nil, logger.Nop())
	_, err := first.Saves.Save(ctx, payload("A"))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := NewClientStorages(ctx, cfg, codec, nil, logger.Nop())
	defer second.Close()

	res := second.Saves.Load(ctx)
	assert.Equal(t, envelope.StatusOK, res.Status)
}

func TestNewClientStorages_FallsBackWhenUnopenable(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	// a directory cannot be opened as a database file
	cfg := config.ClientStorage{Path: dir}

	s := NewClientStorages(ctx, cfg, envelope.NewCodec(nil, nil), nil, logger.Nop())
	defer s.Close()

	assert.IsType(t, UnavailableStorage{}, s.KV)
	_, err := s.Saves.Save(ctx, payload("A"))
	assert.NoError(t, err)
	assert.Equal(t, envelope.StatusEmpty, s.Saves.Load(ctx).Status)
}
