// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/models"
)

// newTestGateway creates an httpCloudGateway pointed at the test server.
func newTestGateway(t *testing.T, serverURL string) *httpCloudGateway {
	t.Helper()
	g, err := NewHTTPCloudGateway(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return g.(*httpCloudGateway)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func setAuthCookies(w http.ResponseWriter, refresh, csrf string) {
	http.SetCookie(w, &http.Cookie{Name: models.RefreshCookieName, Value: refresh, Path: models.AuthCookiePath, HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: models.CSRFCookieName, Value: csrf, Path: "/"})
}

// ── Register / Login ────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ann@example.com", creds.Email)

		setAuthCookies(w, "refresh-1", "csrf-1")
		writeJSON(t, w, http.StatusOK, models.AccessTokenResponse{AccessToken: "access-1"})
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	session, err := g.Login(context.Background(), models.Credentials{Email: "ann@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, models.Session{AccessToken: "access-1", RefreshToken: "refresh-1", CSRFToken: "csrf-1", Email: "ann@example.com"}, session)
	assert.Equal(t, session, g.Session())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL).Login(context.Background(), models.Credentials{Email: "a", Password: "b"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		http.Error(w, "email already exists", http.StatusConflict)
	}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL).Register(context.Background(), models.Credentials{Email: "a", Password: "b"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{})
	}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL).Register(context.Background(), models.Credentials{Email: "a", Password: "b"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

// ── Refresh ─────────────────────────────────────────────────────────────────

func TestRefresh_SendsCookieAndCSRFHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/refresh", r.URL.Path)
		ck, err := r.Cookie(models.RefreshCookieName)
		require.NoError(t, err)
		assert.Equal(t, "refresh-1", ck.Value)
		assert.Equal(t, "csrf-1", r.Header.Get(models.CSRFHeaderName))

		setAuthCookies(w, "refresh-2", "csrf-2")
		writeJSON(t, w, http.StatusOK, models.AccessTokenResponse{AccessToken: "access-2"})
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetSession(models.Session{AccessToken: "access-1", RefreshToken: "refresh-1", CSRFToken: "csrf-1", Email: "ann@example.com"})

	session, err := g.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Session{AccessToken: "access-2", RefreshToken: "refresh-2", CSRFToken: "csrf-2", Email: "ann@example.com"}, session)
}

func TestRefresh_AfterRestoringPersistedSession(t *testing.T) {
	var refreshed atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			setAuthCookies(w, "refresh-1", "csrf-1")
			writeJSON(t, w, http.StatusOK, models.AccessTokenResponse{AccessToken: "access-1"})
		case "/api/auth/refresh":
			refreshed.Add(1)
			ck, err := r.Cookie(models.RefreshCookieName)
			if !assert.NoError(t, err) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			assert.Equal(t, "refresh-1", ck.Value)
			assert.Equal(t, "csrf-1", r.Header.Get(models.CSRFHeaderName))

			setAuthCookies(w, "refresh-2", "csrf-2")
			writeJSON(t, w, http.StatusOK, models.AccessTokenResponse{AccessToken: "access-2"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	first := newTestGateway(t, srv.URL)
	_, err := first.Login(context.Background(), models.Credentials{Email: "ann@example.com", Password: "pw"})
	require.NoError(t, err)

	persisted := first.Session()
	require.Equal(t, "refresh-1", persisted.RefreshToken)

	restarted := newTestGateway(t, srv.URL)
	restarted.SetSession(persisted)
	assert.Equal(t, persisted, restarted.Session())

	session, err := restarted.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), refreshed.Load())
	assert.Equal(t, "access-2", session.AccessToken)
	assert.Equal(t, "refresh-2", session.RefreshToken)
}

func TestRefresh_RefetchesCSRFOnceOn403(t *testing.T) {
	var refreshCalls, csrfCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/csrf":
			csrfCalls.Add(1)
			http.SetCookie(w, &http.Cookie{Name: models.CSRFCookieName, Value: "fresh", Path: "/"})
			writeJSON(t, w, http.StatusOK, models.CSRFResponse{CSRFToken: "fresh"})
		case "/api/auth/refresh":
			refreshCalls.Add(1)
			if r.Header.Get(models.CSRFHeaderName) != "fresh" {
				http.Error(w, "csrf mismatch", http.StatusForbidden)
				return
			}
			writeJSON(t, w, http.StatusOK, models.AccessTokenResponse{AccessToken: "access-2"})
		}
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetSession(models.Session{AccessToken: "a", RefreshToken: "r", CSRFToken: "stale"})

	session, err := g.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", session.AccessToken)
	assert.Equal(t, "fresh", session.CSRFToken)
	assert.Equal(t, int32(2), refreshCalls.Load())
	assert.Equal(t, int32(1), csrfCalls.Load())
}

func TestRefresh_GivesUpAfterSecond403(t *testing.T) {
	var refreshCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/csrf":
			writeJSON(t, w, http.StatusOK, models.CSRFResponse{CSRFToken: "still-wrong"})
		case "/api/auth/refresh":
			refreshCalls.Add(1)
			http.Error(w, "csrf mismatch", http.StatusForbidden)
		}
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	_, err := g.Refresh(context.Background())

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, int32(2), refreshCalls.Load())
}

func TestRefresh_UnauthorizedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "refresh token reused", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL).Refresh(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

// ── Logout ──────────────────────────────────────────────────────────────────

func TestLogout_ClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetSession(models.Session{AccessToken: "a", RefreshToken: "r", CSRFToken: "c", Email: "e"})

	require.NoError(t, g.Logout(context.Background()))
	assert.Equal(t, models.Session{}, g.Session())
}

// ── Saves ───────────────────────────────────────────────────────────────────

func TestGetLatestSave_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/saves/latest", r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"payload":{"version":2,"big":9007199254740993},"meta":{"revision":4,"virtualScore":1.5,"appVersion":"1.0.0","updatedAt":"2026-03-01T12:00:00Z"}}`)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetSession(models.Session{AccessToken: "access"})

	save, err := g.GetLatestSave(context.Background())
	require.NoError(t, err)
	require.NotNil(t, save)
	assert.Equal(t, int64(4), *save.Meta.Revision)
	assert.Equal(t, json.Number("9007199254740993"), save.Payload["big"])
}

func TestGetLatestSave_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	save, err := newTestGateway(t, srv.URL).GetLatestSave(context.Background())
	require.NoError(t, err)
	assert.Nil(t, save)
}

func TestGetLatestSave_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL).GetLatestSave(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPutLatestSave_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)

		var req models.PutSaveRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.ExpectedRevision)
		assert.Equal(t, int64(3), *req.ExpectedRevision)
		assert.Equal(t, "1.2.0", req.AppVersion)

		writeJSON(t, w, http.StatusOK, models.SaveMetaResponse{Meta: models.CloudSaveMeta{Revision: models.Int64Ptr(4)}})
	}))
	defer srv.Close()

	meta, err := newTestGateway(t, srv.URL).PutLatestSave(context.Background(), models.PutSaveRequest{
		Payload:          models.SavePayload{"version": 2},
		AppVersion:       "1.2.0",
		ExpectedRevision: models.Int64Ptr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), *meta.Revision)
}

func TestPutLatestSave_RevisionConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.SaveMetaResponse{
			Meta:    models.CloudSaveMeta{Revision: models.Int64Ptr(9), AppVersion: "2.0.0"},
			Message: "revision mismatch",
		})
	}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL).PutLatestSave(context.Background(), models.PutSaveRequest{ExpectedRevision: models.Int64Ptr(3)})

	require.ErrorIs(t, err, ErrRevisionConflict)
	var conflict *RevisionConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(9), *conflict.Meta.Revision)
	assert.Equal(t, "revision mismatch", conflict.Message)
}

func TestPutLatestSave_StatusErrors(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusRequestEntityTooLarge, ErrPayloadTooLarge},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusBadGateway, ErrBackendWarming},
		{http.StatusServiceUnavailable, ErrBackendWarming},
		{http.StatusGatewayTimeout, ErrBackendWarming},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusBadRequest, ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestGateway(t, srv.URL).PutLatestSave(context.Background(), models.PutSaveRequest{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── ProbeReady ──────────────────────────────────────────────────────────────

func TestProbeReady(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusOK, nil},
		{http.StatusNoContent, nil},
		{http.StatusUnauthorized, nil},
		{http.StatusBadGateway, ErrBackendWarming},
		{http.StatusServiceUnavailable, ErrBackendWarming},
		{http.StatusGatewayTimeout, ErrBackendWarming},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/ready", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := newTestGateway(t, srv.URL).ProbeReady(context.Background())
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestProbeReady_TimeoutIsWarming(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	g, err := NewHTTPCloudGateway(config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: 50 * time.Millisecond}, logger.Nop())
	require.NoError(t, err)

	err = g.ProbeReady(context.Background())
	assert.True(t, IsWarming(err), "got %v", err)
}

func TestProbeReady_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newTestGateway(t, url).ProbeReady(context.Background())
	assert.ErrorIs(t, err, ErrNetworkUnavailable)
}

func TestCanceledContextIsNotClassified(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestGateway(t, srv.URL).GetLatestSave(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrNetworkUnavailable))
	assert.False(t, IsWarming(err))
}

// ── helpers ─────────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: "https://saves.example.com/", want: "https://saves.example.com"},
		{in: "  http://127.0.0.1:9000  ", want: "http://127.0.0.1:9000"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRevisionConflictError_Message(t *testing.T) {
	assert.Equal(t, "save revision conflict", (&RevisionConflictError{}).Error())
	assert.Equal(t, "save revision conflict: stale", (&RevisionConflictError{Message: "stale"}).Error())
}
