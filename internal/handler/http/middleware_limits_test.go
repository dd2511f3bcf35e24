package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestAccountLimiter_Burst(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	l := newAccountLimiter(1, 2, clock.Now)

	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1), "burst exhausted")

	// other accounts have their own bucket
	assert.True(t, l.Allow(2))

	clock.Advance(time.Second)
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))
}

func TestAccountLimiter_Disabled(t *testing.T) {
	l := newAccountLimiter(0, 0, time.Now)

	for range 100 {
		require.True(t, l.Allow(1))
	}
	assert.Empty(t, l.accounts)
}

func TestAccountLimiter_SweepsIdleAccounts(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	l := newAccountLimiter(1, 1, clock.Now)

	l.Allow(1)
	l.Allow(2)
	require.Len(t, l.accounts, 2)

	clock.Advance(limiterIdleTTL + time.Second)
	l.Allow(3)

	assert.Len(t, l.accounts, 1)
	assert.Contains(t, l.accounts, int64(3))
}

func TestLimitBody(t *testing.T) {
	var read []byte
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		n, _ := r.Body.Read(buf)
		read = buf[:n]
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		limit      int64
		body       string
		wantStatus int
	}{
		{name: "under limit", limit: 16, body: "small", wantStatus: http.StatusOK},
		{name: "declared length over limit", limit: 4, body: "too long", wantStatus: http.StatusRequestEntityTooLarge},
		{name: "disabled", limit: 0, body: strings.Repeat("x", 32), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read = nil
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tt.body))

			limitBody(tt.limit)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.body, string(read))
			}
		})
	}
}
