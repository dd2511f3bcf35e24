// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-save-sync/internal/utils"
)

// limitBody rejects bodies over maxBytes with 413. Declared lengths are
// checked up front; chunked bodies fail when the decoder reads past the
// limit. A non-positive limit disables the check.
func limitBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > maxBytes {
				writeError(w, r, ErrPayloadTooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// limitWrites applies the per-account write rate. It must run after auth.
func (h *Handler) limitWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := utils.GetAccountIDFromContext(r.Context())
		if ok && !h.writeLimiter.Allow(accountID) {
			h.metrics.saveWrite(outcomeRateLimited)
			writeError(w, r, ErrRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// limiterIdleTTL is how long an untouched account limiter is kept.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// accountLimiter holds one token bucket per account.
type accountLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	accounts  map[int64]*limiterEntry
	lastSweep time.Time
}

// newAccountLimiter returns a limiter allowing perSecond writes with the
// given burst. perSecond <= 0 disables limiting.
func newAccountLimiter(perSecond float64, burst int, now func() time.Time) *accountLimiter {
	if burst < 1 {
		burst = 1
	}

	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}

	return &accountLimiter{
		limit:    limit,
		burst:    burst,
		now:      now,
		accounts: make(map[int64]*limiterEntry),
	}
}

// Allow reports whether accountID may write now.
func (l *accountLimiter) Allow(accountID int64) bool {
	if l.limit == rate.Inf {
		return true
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for id, e := range l.accounts {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(l.accounts, id)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.accounts[accountID]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.accounts[accountID] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1)
}
