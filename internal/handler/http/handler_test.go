package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/mock"
	"github.com/MKhiriev/go-save-sync/internal/service"
	"github.com/MKhiriev/go-save-sync/models"
)

const (
	testAccountID   int64 = 7
	testAccessToken       = "access-token"
)

type handlerFixture struct {
	auth    *mock.MockAuthService
	saves   *mock.MockSaveService
	appInfo *mock.MockAppInfoService
	ready   *stubReadiness

	handler *Handler
	router  *chi.Mux
}

type stubReadiness struct {
	err error
}

func (s *stubReadiness) Ping(_ context.Context) error {
	return s.err
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Auth: config.ServerAuth{
			TokenSignKey:         "secret",
			TokenIssuer:          "test",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 24 * time.Hour,
		},
		HTTP: config.ServerHTTP{
			MaxPayloadBytes:    1024,
			WriteRatePerSecond: 0,
		},
		Version: "test",
	}
}

func newHandlerFixture(t *testing.T, cfg *config.ServerConfig) *handlerFixture {
	t.Helper()
	if cfg == nil {
		cfg = testServerConfig()
	}

	ctrl := gomock.NewController(t)
	f := &handlerFixture{
		auth:    mock.NewMockAuthService(ctrl),
		saves:   mock.NewMockSaveService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
		ready:   &stubReadiness{},
	}

	f.handler = NewHandler(&service.Services{
		AuthService:    f.auth,
		SaveService:    f.saves,
		AppInfoService: f.appInfo,
	}, cfg, f.ready, logger.Nop())
	f.router = f.handler.Init()

	return f
}

// authorized makes the auth service accept testAccessToken for
// testAccountID.
func (f *handlerFixture) authorized() {
	f.auth.EXPECT().
		ParseAccessToken(gomock.Any(), testAccessToken).
		Return(models.Token{AccountID: testAccountID}, nil).
		AnyTimes()
}

func (f *handlerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func withBearer(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testAccessToken)
	return req
}

func TestHandler_PublicRoutes(t *testing.T) {
	f := newHandlerFixture(t, nil)
	f.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.4.0")

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.4.0", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))

	rec = f.do(httptest.NewRequest(http.MethodGet, "/api/ready", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "save_sync_http_requests_total")
}

func TestHandler_Readiness_NotReady(t *testing.T) {
	f := newHandlerFixture(t, nil)
	f.ready.err = errors.New("connection refused")

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "backend is starting")
}

func TestHandler_Readiness_NilChecker(t *testing.T) {
	h := NewHandler(&service.Services{}, testServerConfig(), nil, logger.Nop())

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ready", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_ProtectedRoutesRequireToken(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"get latest", http.MethodGet, "/api/saves/latest"},
		{"put latest", http.MethodPut, "/api/saves/latest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t, nil)

			rec := f.do(httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestHandler_UnsupportedMethodIsNotFound(t *testing.T) {
	f := newHandlerFixture(t, nil)

	rec := f.do(httptest.NewRequest(http.MethodDelete, "/api/saves/latest", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found\n", rec.Body.String())

	unknown := f.do(httptest.NewRequest(http.MethodGet, "/api/saves/history", nil))
	assert.Equal(t, rec.Code, unknown.Code)
	assert.Equal(t, rec.Body.String(), unknown.Body.String())
}

func TestHandler_MetricsCountRoutes(t *testing.T) {
	f := newHandlerFixture(t, nil)
	f.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0").Times(2)

	f.do(httptest.NewRequest(http.MethodGet, "/api/version", nil))
	f.do(httptest.NewRequest(http.MethodGet, "/api/version", nil))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`save_sync_http_requests_total{method="GET",route="/api/version",status="200"} 2`)
}
