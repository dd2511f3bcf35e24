// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-save-sync/internal/adapter"
	"github.com/MKhiriev/go-save-sync/internal/app"
	"github.com/MKhiriev/go-save-sync/internal/envelope"
	"github.com/MKhiriev/go-save-sync/models"
)

// Register creates an account and starts a session.
func (c *SyncController) Register(ctx context.Context, creds models.Credentials) error {
	return c.authenticate(ctx, creds, c.gateway.Register)
}

// Login starts a session.
func (c *SyncController) Login(ctx context.Context, creds models.Credentials) error {
	return c.authenticate(ctx, creds, c.gateway.Login)
}

func (c *SyncController) authenticate(
	ctx context.Context,
	creds models.Credentials,
	do func(context.Context, models.Credentials) (models.Session, error),
) error {
	var previous models.SyncStatus
	started := c.updateIf(func(s *models.SyncState) bool {
		if s.Status == models.SyncStatusAuthenticating || s.AutoSync == models.AutoSyncSyncing {
			return false
		}
		previous = s.Status
		s.Status = models.SyncStatusAuthenticating
		s.Message = ""
		return true
	})
	if !started {
		return ErrSyncInProgress
	}

	var session models.Session
	err := c.backoff.Retry(ctx, adapter.IsWarming, c.onWarmingWait, func(ctx context.Context) error {
		var err error
		session, err = do(ctx, creds)
		return err
	})
	if err != nil {
		c.update(func(s *models.SyncState) {
			s.Status = previous
			if adapter.IsWarming(err) {
				s.Status = models.SyncStatusError
			}
			s.RetryAt = nil
			s.Message = describeAuthFailure(err)
		})
		return fmt.Errorf("authenticate: %w", err)
	}

	c.sessions.Save(ctx, session)

	c.mu.Lock()
	c.enableGen++
	c.cloudKnown = false
	c.coldSuspected = false
	enabled := c.state.AutoSyncEnabled
	c.mu.Unlock()

	c.update(func(s *models.SyncState) {
		s.Status = models.SyncStatusReady
		s.Authenticated = true
		s.Email = session.Email
		s.RetryAt = nil
		s.CloudMeta = nil
	})

	if enabled {
		c.Bootstrap(ctx)
	}
	return nil
}

func describeAuthFailure(err error) string {
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return app.MsgInvalidLoginPassword
	case errors.Is(err, adapter.ErrConflict):
		return app.MsgEmailAlreadyExists
	default:
		return describeFailure(err).message
	}
}

// Logout ends the session. Local credentials and the watermark are dropped
// even when the server cannot be reached, so the next account starts by
// reconciling from scratch. An attempt still in flight finishes without
// recording anything.
func (c *SyncController) Logout(ctx context.Context) {
	c.backoff.Invalidate()

	if err := c.gateway.Logout(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("server logout failed")
	}

	c.dropSession(ctx, "")
	c.watermarks.Clear(ctx)
	c.update(func(s *models.SyncState) { s.Watermark = nil })
}

// ForceLoadCloud replaces the local save with the cloud save.
func (c *SyncController) ForceLoadCloud(ctx context.Context) error {
	return c.userAction(ctx, false, func(ctx context.Context) (*models.ConflictRecord, error) {
		return nil, c.loadCloud(ctx)
	})
}

// ForceOverwriteCloud writes the local save to the cloud against the last
// known cloud revision.
func (c *SyncController) ForceOverwriteCloud(ctx context.Context) error {
	return c.userAction(ctx, false, func(ctx context.Context) (*models.ConflictRecord, error) {
		snapshot, fp, err := c.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		if fp == "" {
			return nil, ErrNoLocalSave
		}
		return c.push(ctx, snapshot, fp)
	})
}

// ResolveConflictByLoading takes the cloud copy.
func (c *SyncController) ResolveConflictByLoading(ctx context.Context) error {
	return c.userAction(ctx, true, func(ctx context.Context) (*models.ConflictRecord, error) {
		return nil, c.loadCloud(ctx)
	})
}

// ResolveConflictByOverwriting keeps the local copy. The write uses the
// server revision reported with the conflict.
func (c *SyncController) ResolveConflictByOverwriting(ctx context.Context) error {
	return c.userAction(ctx, true, func(ctx context.Context) (*models.ConflictRecord, error) {
		snapshot, fp, err := c.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		if fp == "" {
			return nil, ErrNoLocalSave
		}
		return c.push(ctx, snapshot, fp)
	})
}

// loadCloud replaces the local save with the cloud copy on request. The
// game state is read first so progress made since the last trigger lands
// in the local store, and from there in the last-good slot, before the
// overwrite.
func (c *SyncController) loadCloud(ctx context.Context) error {
	if _, _, err := c.snapshot(ctx); err != nil && !errors.Is(err, ErrNoLocalSave) {
		return err
	}

	save, err := c.fetchLatest(ctx)
	if err != nil {
		return err
	}
	if save == nil {
		return ErrNoCloudSave
	}
	return c.applyCloud(ctx, save)
}

// userAction runs an explicit user request. requireConflict limits it to a
// pending conflict; other actions run from idle or conflict alike.
func (c *SyncController) userAction(
	ctx context.Context,
	requireConflict bool,
	action func(ctx context.Context) (*models.ConflictRecord, error),
) error {
	c.mu.Lock()
	authenticated := c.state.Authenticated
	inConflict := c.state.AutoSync == models.AutoSyncConflict
	c.mu.Unlock()

	switch {
	case !authenticated:
		return ErrNotAuthenticated
	case requireConflict && !inConflict:
		return ErrNoConflict
	}

	if !c.begin(true) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.online {
			return fmt.Errorf("%w: offline", ErrUnavailable)
		}
		return ErrSyncInProgress
	}

	conflict, err := action(ctx)
	if err == nil && conflict == nil {
		c.mu.Lock()
		c.bootGen = c.enableGen
		c.mu.Unlock()
	}
	c.finish(ctx, err, conflict)

	return err
}

// LocalSave reads the local envelope store.
func (c *SyncController) LocalSave(ctx context.Context) envelope.Result {
	return c.saves.Load(ctx)
}
