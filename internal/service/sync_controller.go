// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-save-sync/internal/adapter"
	"github.com/MKhiriev/go-save-sync/internal/app"
	"github.com/MKhiriev/go-save-sync/internal/envelope"
	"github.com/MKhiriev/go-save-sync/internal/fingerprint"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/store"
	"github.com/MKhiriev/go-save-sync/internal/utils"
	"github.com/MKhiriev/go-save-sync/models"
)

// tokenRefreshMargin is how close to expiry a restored access token is
// refreshed on Start.
const tokenRefreshMargin = 30 * time.Second

// SyncController keeps the local save and the cloud save in step.
//
// All exported methods may be called from any goroutine. At most one sync
// attempt runs at a time: a trigger that arrives while another attempt is
// in flight, while a conflict waits for the user, or while the backend is
// warming up does nothing.
type SyncController struct {
	gateway    adapter.CloudGateway
	host       GameHost
	saves      *store.LocalSaveStore
	watermarks *store.WatermarkStore
	sessions   *store.SessionStore
	backoff    *BackoffScheduler
	clock      utils.Clock
	appVersion string
	logger     *logger.Logger

	mu    sync.Mutex
	state models.SyncState

	visible bool
	online  bool

	// cloudKnown is set once a fetch or write told whether the account has
	// a cloud save; cloudExists is the answer.
	cloudKnown  bool
	cloudExists bool

	// enableGen counts enable-cycles (auto-sync enabled, session acquired);
	// bootGen is the cycle whose bootstrap completed.
	enableGen uint64
	bootGen   uint64

	coldSuspected bool
	lastLocalFP   string

	// sessionGen changes whenever the session is dropped. attemptGen is the
	// sessionGen the in-flight attempt started under; results of an attempt
	// that outlived its session are discarded.
	sessionGen uint64
	attemptGen uint64

	subscribers map[uint64]func(models.SyncState)
	nextSubID   uint64

	// pending holds snapshots not yet delivered, in mutation order. While
	// draining is set one goroutine delivers them; every other update only
	// enqueues.
	pending  []models.SyncState
	draining bool
}

// NewSyncController wires a controller. It does nothing until Start.
func NewSyncController(
	storages *store.ClientStorages,
	gateway adapter.CloudGateway,
	host GameHost,
	backoff *BackoffScheduler,
	appVersion string,
	clock utils.Clock,
	logger *logger.Logger,
) *SyncController {
	if clock == nil {
		clock = utils.SystemClock{}
	}

	return &SyncController{
		gateway:     gateway,
		host:        host,
		saves:       storages.Saves,
		watermarks:  storages.Watermarks,
		sessions:    storages.Sessions,
		backoff:     backoff,
		clock:       clock,
		appVersion:  appVersion,
		logger:      logger,
		state:       models.SyncState{Status: models.SyncStatusIdle, AutoSync: models.AutoSyncIdle},
		visible:     true,
		online:      true,
		subscribers: make(map[uint64]func(models.SyncState)),
	}
}

// Start restores the persisted session and auto-sync preference and runs the
// bootstrap when both are present.
func (c *SyncController) Start(ctx context.Context) {
	session := c.sessions.Load(ctx)
	enabled := c.sessions.AutoSyncEnabled(ctx)
	watermark := c.watermarks.Read(ctx)

	if !session.Empty() {
		c.gateway.SetSession(session)
	}

	c.update(func(s *models.SyncState) {
		s.AutoSyncEnabled = enabled
		s.Watermark = watermark
		if !session.Empty() {
			s.Authenticated = true
			s.Email = session.Email
			s.Status = models.SyncStatusReady
		}
	})

	if session.Empty() {
		return
	}

	c.refreshIfExpiring(ctx, session)

	c.mu.Lock()
	c.coldSuspected = true
	if enabled {
		c.enableGen++
	}
	c.mu.Unlock()

	if enabled {
		c.Bootstrap(ctx)
	}
}

// State returns the current state snapshot.
func (c *SyncController) State() models.SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn for every state change. Deliveries are serialized
// and in order; fn must not block for long. The returned function removes
// the subscription.
func (c *SyncController) Subscribe(fn func(models.SyncState)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// Tick is the periodic timer trigger. It only acts while the host is visible
// and auto-sync is on.
func (c *SyncController) Tick(ctx context.Context) {
	c.mu.Lock()
	active := c.visible && c.autoSyncActiveLocked()
	pending := c.bootGen != c.enableGen
	c.mu.Unlock()

	if !active {
		return
	}
	if pending {
		c.Bootstrap(ctx)
		return
	}
	c.AutoSyncPushIfNeeded(ctx)
}

// OnVisibilityChange records host visibility. Going to the background
// pushes pending local changes.
func (c *SyncController) OnVisibilityChange(ctx context.Context, visible bool) {
	c.mu.Lock()
	c.visible = visible
	active := c.autoSyncActiveLocked() && c.bootGen == c.enableGen
	c.mu.Unlock()

	if !visible && active {
		c.AutoSyncPushIfNeeded(ctx)
	}
}

// OnConnectivityChange records host connectivity. Going offline cancels any
// backoff wait; coming back online syncs if the host is visible.
func (c *SyncController) OnConnectivityChange(ctx context.Context, online bool) {
	c.mu.Lock()
	c.online = online
	if online {
		c.coldSuspected = true
	}
	c.mu.Unlock()

	if !online {
		c.backoff.Invalidate()
		c.update(func(s *models.SyncState) {
			s.Status = models.SyncStatusOffline
			s.Message = app.MsgOffline
			s.RetryAt = nil
		})
		return
	}

	c.update(func(s *models.SyncState) {
		if s.Status == models.SyncStatusOffline {
			s.Status = idleOrReady(s.Authenticated)
			s.Message = ""
		}
	})
	c.Tick(ctx)
}

// SetAutoSyncEnabled persists the preference. Enabling starts a new
// enable-cycle and bootstraps; disabling cancels pending retries.
func (c *SyncController) SetAutoSyncEnabled(ctx context.Context, enabled bool) {
	c.sessions.SetAutoSyncEnabled(ctx, enabled)

	c.mu.Lock()
	wasEnabled := c.state.AutoSyncEnabled
	if enabled && !wasEnabled {
		c.enableGen++
	}
	c.mu.Unlock()

	c.update(func(s *models.SyncState) { s.AutoSyncEnabled = enabled })

	if !enabled {
		c.backoff.Invalidate()
		return
	}
	c.Bootstrap(ctx)
}

// AutoSyncPushIfNeeded pushes the local save when it changed since the last
// sync.
func (c *SyncController) AutoSyncPushIfNeeded(ctx context.Context) {
	if !c.begin(false) {
		return
	}

	conflict, err := c.pushIfNeeded(ctx)
	c.finish(ctx, err, conflict)
}

// Bootstrap reconciles local and cloud once per enable-cycle.
func (c *SyncController) Bootstrap(ctx context.Context) {
	c.mu.Lock()
	gen := c.enableGen
	done := c.bootGen == gen || !c.state.AutoSyncEnabled
	c.mu.Unlock()
	if done || !c.begin(false) {
		return
	}

	conflict, err := c.bootstrap(ctx)
	if err == nil {
		c.mu.Lock()
		c.bootGen = gen
		c.mu.Unlock()
	}
	c.finish(ctx, err, conflict)
}

func (c *SyncController) bootstrap(ctx context.Context) (*models.ConflictRecord, error) {
	if err := c.probeIfCold(ctx); err != nil {
		return nil, err
	}

	snapshot, fp, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	save, err := c.fetchLatest(ctx)
	if err != nil {
		return nil, err
	}

	var cloudRevision *int64
	if save != nil {
		cloudRevision = save.Meta.Revision
	}
	action := DecideBootstrap(c.watermarks.Read(ctx), save != nil, cloudRevision, fp)

	c.logger.Info().Str("action", string(action)).Str("fingerprint", fp).Msg("bootstrap decision")

	switch action {
	case models.SyncActionLoadCloud:
		if c.host.HasIrreversibleActivity(ctx) {
			c.logger.Info().Msg("cloud save not loaded, irreversible activity in progress")
			c.update(func(s *models.SyncState) { s.Message = app.MsgLoadSkippedActivity })
			return nil, nil
		}
		return nil, c.applyCloud(ctx, save)
	case models.SyncActionOverwriteCloud:
		return c.push(ctx, snapshot, fp)
	case models.SyncActionConflict:
		return &models.ConflictRecord{Meta: save.Meta, Message: app.MsgCloudConflict}, nil
	default:
		if fp != "" && save != nil {
			c.markSynced(ctx, save.Meta, fp)
		}
		return nil, nil
	}
}

func (c *SyncController) pushIfNeeded(ctx context.Context) (*models.ConflictRecord, error) {
	snapshot, fp, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if fp == "" {
		return nil, nil
	}

	if wm := c.watermarks.Read(ctx); wm != nil && wm.LocalFingerprint != nil && *wm.LocalFingerprint == fp {
		return nil, nil
	}

	return c.push(ctx, snapshot, fp)
}

// push writes snapshot with the best known expected revision: the last cloud
// meta seen, else the watermark, else whatever the cloud holds now.
func (c *SyncController) push(ctx context.Context, snapshot models.SavePayload, fp string) (*models.ConflictRecord, error) {
	expected, err := c.expectedRevision(ctx)
	if err != nil {
		return nil, err
	}

	req := models.PutSaveRequest{
		Payload:          snapshot,
		VirtualScore:     c.host.VirtualScore(snapshot),
		AppVersion:       c.appVersion,
		ExpectedRevision: expected,
	}

	var meta models.CloudSaveMeta
	err = c.call(ctx, func(ctx context.Context) error {
		var err error
		meta, err = c.gateway.PutLatestSave(ctx, req)
		return err
	})

	var conflict *adapter.RevisionConflictError
	if errors.As(err, &conflict) {
		c.logger.Warn().Str("message", conflict.Message).Msg("cloud save revision conflict")
		c.rememberCloud(&conflict.Meta)
		msg := conflict.Message
		if msg == "" {
			msg = app.MsgCloudConflict
		}
		return &models.ConflictRecord{Meta: conflict.Meta, Message: msg}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("push save: %w", err)
	}

	if _, err = c.saves.Save(ctx, snapshot); err != nil {
		c.logger.Err(err).Msg("persisting pushed save locally failed")
	}
	c.markSynced(ctx, meta, fp)

	return nil, nil
}

func (c *SyncController) expectedRevision(ctx context.Context) (*int64, error) {
	c.mu.Lock()
	meta := c.state.CloudMeta
	known, exists := c.cloudKnown, c.cloudExists
	c.mu.Unlock()

	switch {
	case meta != nil && meta.Revision != nil:
		return meta.Revision, nil
	case meta != nil:
		// a cloud copy was reported without its revision; the watermark may
		// be older than it
	case known && !exists:
		return nil, nil
	default:
		if wm := c.watermarks.Read(ctx); wm != nil && wm.CloudRevision != nil {
			return wm.CloudRevision, nil
		}
	}

	save, err := c.fetchLatest(ctx)
	if err != nil {
		return nil, err
	}
	if save == nil {
		return nil, nil
	}
	return save.Meta.Revision, nil
}

func (c *SyncController) fetchLatest(ctx context.Context) (*models.CloudSave, error) {
	var save *models.CloudSave
	err := c.call(ctx, func(ctx context.Context) error {
		var err error
		save, err = c.gateway.GetLatestSave(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch cloud save: %w", err)
	}

	if save == nil {
		c.rememberCloud(nil)
	} else {
		c.rememberCloud(&save.Meta)
	}
	return save, nil
}

// applyCloud replaces the local save with the cloud copy and records the
// agreement. A cloud save fetched under a session that has since been
// dropped is not applied.
func (c *SyncController) applyCloud(ctx context.Context, save *models.CloudSave) error {
	if c.attemptStale() {
		return fmt.Errorf("apply cloud save: %w: session ended", ErrNotAuthenticated)
	}

	fp, err := fingerprint.PayloadFingerprint(save.Payload)
	if err != nil {
		return fmt.Errorf("fingerprint cloud save: %w", err)
	}

	if err = c.host.Apply(ctx, save.Payload); err != nil {
		return fmt.Errorf("apply cloud save: %w", err)
	}
	if _, err = c.saves.Save(ctx, save.Payload); err != nil {
		c.logger.Err(err).Msg("persisting loaded save locally failed")
	}

	c.mu.Lock()
	c.lastLocalFP = fp
	c.mu.Unlock()

	c.markSynced(ctx, save.Meta, fp)
	return nil
}

// snapshot reads the game state. When the host cannot produce one, the
// local envelope store is used instead.
func (c *SyncController) snapshot(ctx context.Context) (models.SavePayload, string, error) {
	payload, err := c.host.Snapshot(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("game snapshot failed, reading local save store")

		res := c.saves.Load(ctx)
		switch {
		case res.Valid():
			payload = res.Save
		case res.Status == envelope.StatusEmpty:
			return nil, "", nil
		default:
			return nil, "", fmt.Errorf("%w: %w", ErrNoLocalSave, err)
		}
	}

	fp, err := fingerprint.PayloadFingerprint(payload)
	if err != nil {
		return nil, "", fmt.Errorf("fingerprint local save: %w", err)
	}

	c.persistLocal(ctx, payload, fp)

	return payload, fp, nil
}

// persistLocal keeps the envelope store in step with every local state the
// controller observes.
func (c *SyncController) persistLocal(ctx context.Context, payload models.SavePayload, fp string) {
	c.mu.Lock()
	changed := fp != "" && fp != c.lastLocalFP
	if changed {
		c.lastLocalFP = fp
	}
	c.mu.Unlock()

	if !changed {
		return
	}
	if _, err := c.saves.Save(ctx, payload); err != nil {
		c.logger.Err(err).Msg("persisting local save failed")
	}
}

// markSynced records that local and cloud agree. The watermark belongs to
// the session the attempt started under: when that session was dropped
// meanwhile, nothing is recorded and a watermark written across the drop
// is cleared again.
func (c *SyncController) markSynced(ctx context.Context, meta models.CloudSaveMeta, fp string) {
	if c.attemptStale() {
		c.logger.Info().Msg("session ended during sync, result discarded")
		return
	}

	wm := c.watermarks.Write(ctx, meta.Revision, &fp)
	if c.attemptStale() {
		c.watermarks.Clear(ctx)
		return
	}
	now := c.clock.Now()

	c.rememberCloud(&meta)
	c.updateIf(func(s *models.SyncState) bool {
		if c.attemptGen != c.sessionGen {
			return false
		}
		if wm != nil {
			s.Watermark = wm
		}
		s.LastSync = &now
		s.Message = app.MsgSynced
		return true
	})
}

func (c *SyncController) rememberCloud(meta *models.CloudSaveMeta) {
	var stored *models.CloudSaveMeta
	if meta != nil {
		m := *meta
		stored = &m
	}

	c.updateIf(func(s *models.SyncState) bool {
		if c.attemptGen != c.sessionGen {
			return false
		}
		c.cloudKnown = true
		c.cloudExists = meta != nil
		s.CloudMeta = stored
		return true
	})
}

// attemptStale reports whether the session of the in-flight attempt was
// dropped.
func (c *SyncController) attemptStale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attemptGen != c.sessionGen
}

func (c *SyncController) probeIfCold(ctx context.Context) error {
	c.mu.Lock()
	cold := c.coldSuspected
	c.mu.Unlock()
	if !cold {
		return nil
	}

	if err := c.backoff.Retry(ctx, adapter.IsWarming, c.onWarmingWait, c.gateway.ProbeReady); err != nil {
		return fmt.Errorf("probe backend: %w", err)
	}

	c.mu.Lock()
	c.coldSuspected = false
	c.mu.Unlock()
	return nil
}

// call runs op with the warmup ladder around it and one silent token
// refresh on 401 for the whole action.
func (c *SyncController) call(ctx context.Context, op func(ctx context.Context) error) error {
	refreshed := false

	return c.backoff.Retry(ctx, adapter.IsWarming, c.onWarmingWait, func(ctx context.Context) error {
		err := op(ctx)
		if !errors.Is(err, adapter.ErrUnauthorized) {
			return err
		}
		if refreshed {
			return fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		refreshed = true

		if err = c.refreshSession(ctx); err != nil {
			return err
		}

		err = op(ctx)
		if errors.Is(err, adapter.ErrUnauthorized) {
			return fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		return err
	})
}

// refreshSession exchanges the refresh cookie once. Network trouble is
// returned as is; any other failure means the session is gone.
func (c *SyncController) refreshSession(ctx context.Context) error {
	c.logger.Debug().Msg("access token rejected, refreshing")

	session, err := c.gateway.Refresh(ctx)
	if err != nil {
		if adapter.IsWarming(err) || errors.Is(err, adapter.ErrNetworkUnavailable) || errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	c.sessions.Save(ctx, session)
	return nil
}

func (c *SyncController) refreshIfExpiring(ctx context.Context, session models.Session) {
	token, err := utils.ParseUnverifiedToken(session.AccessToken)
	if err != nil || !token.ExpiresWithin(c.clock.Now(), tokenRefreshMargin) {
		return
	}

	err = c.refreshSession(ctx)
	if errors.Is(err, ErrSessionExpired) {
		c.logger.Info().Err(err).Msg("stored session expired")
		c.dropSession(ctx, app.MsgPleaseLogInAgain)
	}
}

func (c *SyncController) onWarmingWait(attempt int, d time.Duration) {
	retryAt := c.clock.Now().Add(d)
	c.logger.Info().Int("attempt", attempt+1).Dur("wait", d).Msg("backend warming up, retrying")

	c.mu.Lock()
	c.coldSuspected = true
	c.mu.Unlock()

	c.update(func(s *models.SyncState) {
		s.Status = models.SyncStatusWarming
		s.Message = app.MsgWarmingUp
		s.RetryAt = &retryAt
	})
}

// begin claims the in-flight slot. allowConflict lets user resolutions run
// while a conflict is pending.
func (c *SyncController) begin(allowConflict bool) bool {
	return c.updateIf(func(s *models.SyncState) bool {
		ok := c.online && s.Authenticated &&
			s.AutoSync != models.AutoSyncSyncing &&
			(allowConflict || s.AutoSync != models.AutoSyncConflict) &&
			s.Status != models.SyncStatusWarming &&
			s.Status != models.SyncStatusAuthenticating
		if ok {
			c.attemptGen = c.sessionGen
			s.AutoSync = models.AutoSyncSyncing
			s.Message = ""
		}
		return ok
	})
}

// finish releases the in-flight slot and records the outcome. The outcome
// of an attempt whose session was dropped is not recorded.
func (c *SyncController) finish(ctx context.Context, err error, conflict *models.ConflictRecord) {
	if err != nil {
		c.logger.Warn().Err(err).Msg("sync attempt failed")
	}
	if errors.Is(err, ErrSessionExpired) && !c.attemptStale() {
		c.dropSession(context.WithoutCancel(ctx), app.MsgPleaseLogInAgain)
	}
	if c.attemptStale() {
		c.update(func(s *models.SyncState) { s.AutoSync = models.AutoSyncIdle })
		return
	}

	f := describeFailure(err)
	if adapter.IsWarming(err) {
		c.mu.Lock()
		c.coldSuspected = true
		c.mu.Unlock()
	}

	c.update(func(s *models.SyncState) {
		s.RetryAt = nil
		s.AutoSync = models.AutoSyncIdle
		s.Conflict = nil

		switch {
		case conflict != nil:
			s.AutoSync = models.AutoSyncConflict
			s.Conflict = conflict
			s.Status = models.SyncStatusReady
			s.Message = conflict.Message
		case err == nil:
			s.Status = models.SyncStatusReady
		case f.keep:
			if s.Status == models.SyncStatusWarming {
				s.Status = idleOrReady(s.Authenticated)
				s.Message = ""
			}
		case s.Status == models.SyncStatusOffline && f.status != models.SyncStatusIdle:
			// connectivity loss reported by the host wins
		default:
			s.Status = f.status
			s.Message = f.message
		}
	})
}

// dropSession forgets credentials locally, after a logout or when the
// server rejected them.
func (c *SyncController) dropSession(ctx context.Context, message string) {
	c.backoff.Invalidate()
	c.gateway.SetSession(models.Session{})
	c.sessions.Clear(ctx)

	c.update(func(s *models.SyncState) {
		c.sessionGen++
		c.cloudKnown = false
		c.cloudExists = false

		s.Authenticated = false
		s.Email = ""
		s.Status = models.SyncStatusIdle
		// an in-flight attempt keeps the slot until it finishes
		if s.AutoSync != models.AutoSyncSyncing {
			s.AutoSync = models.AutoSyncIdle
		}
		s.Conflict = nil
		s.CloudMeta = nil
		s.RetryAt = nil
		s.Message = message
	})
}

func (c *SyncController) autoSyncActiveLocked() bool {
	return c.online && c.state.Authenticated && c.state.AutoSyncEnabled
}

// update applies fn to the state under the lock and notifies subscribers.
func (c *SyncController) update(fn func(s *models.SyncState)) {
	c.updateIf(func(s *models.SyncState) bool {
		fn(s)
		return true
	})
}

// updateIf applies fn under the lock and, when fn reports a change,
// queues the new state for subscribers. The caller that finds no delivery
// running drains the queue with the lock released, so a subscriber may call
// back into the controller; its own changes are delivered after it returns.
func (c *SyncController) updateIf(fn func(s *models.SyncState) bool) bool {
	c.mu.Lock()
	if !fn(&c.state) {
		c.mu.Unlock()
		return false
	}
	c.pending = append(c.pending, c.state)
	if c.draining {
		c.mu.Unlock()
		return true
	}
	c.draining = true
	c.mu.Unlock()

	c.drain()
	return true
}

func (c *SyncController) drain() {
	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.pending = nil
			c.draining = false
			c.mu.Unlock()
			return
		}
		state := c.pending[0]
		c.pending = c.pending[1:]
		subs := make([]func(models.SyncState), 0, len(c.subscribers))
		for _, sub := range c.subscribers {
			subs = append(subs, sub)
		}
		c.mu.Unlock()

		for _, sub := range subs {
			sub(state)
		}
	}
}

func idleOrReady(authenticated bool) models.SyncStatus {
	if authenticated {
		return models.SyncStatusReady
	}
	return models.SyncStatusIdle
}
