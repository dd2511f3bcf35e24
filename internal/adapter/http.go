package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-save-sync/internal/config"
	"github.com/MKhiriev/go-save-sync/internal/envelope"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/utils"
	"github.com/MKhiriev/go-save-sync/models"
)

type httpCloudGateway struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string
	csrf  string
	email string

	logger *logger.Logger
}

// NewHTTPCloudGateway constructs the HTTP/JSON implementation of
// [CloudGateway]. It normalises the base URL from cfg.HTTPAddress and applies
// the request timeout.
func NewHTTPCloudGateway(cfg config.ClientAdapter, logger *logger.Logger) (CloudGateway, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client, err := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	client.SetHeader("Accept", "application/json")

	return &httpCloudGateway{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpCloudGateway) SetSession(session models.Session) {
	h.mu.Lock()
	h.token = strings.TrimSpace(session.AccessToken)
	h.csrf = session.CSRFToken
	h.email = session.Email
	h.mu.Unlock()

	h.client.SetCookieValue(models.AuthCookiePath, models.RefreshCookieName, session.RefreshToken)
	h.client.SetCookieValue("/", models.CSRFCookieName, session.CSRFToken)
}

func (h *httpCloudGateway) Session() models.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return models.Session{
		AccessToken:  h.token,
		RefreshToken: h.client.Cookie(models.AuthCookiePath, models.RefreshCookieName),
		CSRFToken:    h.csrf,
		Email:        h.email,
	}
}

// Register implements [CloudGateway]: POST /api/auth/register.
func (h *httpCloudGateway) Register(ctx context.Context, creds models.Credentials) (models.Session, error) {
	return h.authenticate(ctx, "register", "/api/auth/register", creds)
}

// Login implements [CloudGateway]: POST /api/auth/login.
func (h *httpCloudGateway) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	return h.authenticate(ctx, "login", "/api/auth/login", creds)
}

func (h *httpCloudGateway) authenticate(ctx context.Context, op, path string, creds models.Credentials) (models.Session, error) {
	var body models.AccessTokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&body).
		Post(path)
	if err != nil {
		return models.Session{}, mapTransportError(op+" request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}
	if body.AccessToken == "" {
		return models.Session{}, fmt.Errorf("%s: %w: no access token", op, ErrMalformedResponse)
	}

	h.mu.Lock()
	h.token = body.AccessToken
	h.csrf = h.client.Cookie("/", models.CSRFCookieName)
	h.email = creds.Email
	h.mu.Unlock()

	return h.Session(), nil
}

// Refresh implements [CloudGateway]: POST /api/auth/refresh with the CSRF
// header. On 403 the CSRF token is fetched once and the refresh retried once.
func (h *httpCloudGateway) Refresh(ctx context.Context) (models.Session, error) {
	session, err := h.refresh(ctx)
	if !errors.Is(err, ErrForbidden) {
		return session, err
	}

	h.logger.Debug().Msg("refresh rejected by CSRF check, fetching a new CSRF token")
	if err = h.fetchCSRF(ctx); err != nil {
		return models.Session{}, err
	}

	return h.refresh(ctx)
}

func (h *httpCloudGateway) refresh(ctx context.Context) (models.Session, error) {
	var body models.AccessTokenResponse

	h.mu.RLock()
	csrf := h.csrf
	h.mu.RUnlock()
	if csrf == "" {
		csrf = h.client.Cookie("/", models.CSRFCookieName)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(models.CSRFHeaderName, csrf).
		SetResult(&body).
		Post("/api/auth/refresh")
	if err != nil {
		return models.Session{}, mapTransportError("refresh request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}
	if body.AccessToken == "" {
		return models.Session{}, fmt.Errorf("refresh: %w: no access token", ErrMalformedResponse)
	}

	h.mu.Lock()
	h.token = body.AccessToken
	if rotated := h.client.Cookie("/", models.CSRFCookieName); rotated != "" {
		h.csrf = rotated
	}
	h.mu.Unlock()

	return h.Session(), nil
}

func (h *httpCloudGateway) fetchCSRF(ctx context.Context) error {
	var body models.CSRFResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/api/auth/csrf")
	if err != nil {
		return mapTransportError("csrf request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.mu.Lock()
	h.csrf = body.CSRFToken
	h.mu.Unlock()

	return nil
}

// Logout implements [CloudGateway]. Local credentials are dropped even when
// the server cannot be reached.
func (h *httpCloudGateway) Logout(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Post("/api/auth/logout")

	h.SetSession(models.Session{})

	if err != nil {
		return mapTransportError("logout request", err)
	}
	return mapHTTPError(resp)
}

// GetLatestSave implements [CloudGateway]: GET /api/saves/latest.
func (h *httpCloudGateway) GetLatestSave(ctx context.Context) (*models.CloudSave, error) {
	resp, err := h.authedRequest(ctx).Get("/api/saves/latest")
	if err != nil {
		return nil, mapTransportError("get latest save request", err)
	}
	if resp.StatusCode() == http.StatusNoContent {
		return nil, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	save, err := decodeCloudSave(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode latest save: %w: %w", ErrMalformedResponse, err)
	}

	return save, nil
}

// PutLatestSave implements [CloudGateway]: PUT /api/saves/latest.
func (h *httpCloudGateway) PutLatestSave(ctx context.Context, req models.PutSaveRequest) (models.CloudSaveMeta, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put("/api/saves/latest")
	if err != nil {
		return models.CloudSaveMeta{}, mapTransportError("put latest save request", err)
	}

	if resp.StatusCode() == http.StatusConflict {
		var conflict models.SaveMetaResponse
		if err = json.Unmarshal(resp.Body(), &conflict); err != nil {
			return models.CloudSaveMeta{}, fmt.Errorf("decode conflict: %w: %w", ErrMalformedResponse, err)
		}
		return models.CloudSaveMeta{}, &RevisionConflictError{Meta: conflict.Meta, Message: conflict.Message}
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CloudSaveMeta{}, err
	}

	var body models.SaveMetaResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.CloudSaveMeta{}, fmt.Errorf("decode save meta: %w: %w", ErrMalformedResponse, err)
	}

	return body.Meta, nil
}

// ProbeReady implements [CloudGateway]: GET /api/ready. 200, 204 and 401 all
// mean the backend is awake.
func (h *httpCloudGateway) ProbeReady(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/ready")
	if err != nil {
		return mapTransportError("ready probe", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusNoContent, http.StatusUnauthorized:
		return nil
	default:
		return mapHTTPError(resp)
	}
}

func (h *httpCloudGateway) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)

	h.mu.RLock()
	token := h.token
	h.mu.RUnlock()

	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// decodeCloudSave keeps payload numbers as json.Number so the fingerprint of
// a loaded save matches the fingerprint the writer computed.
func decodeCloudSave(data []byte) (*models.CloudSave, error) {
	var wire struct {
		Payload json.RawMessage      `json:"payload"`
		Meta    models.CloudSaveMeta `json:"meta"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}

	payload, err := envelope.DecodePayload(wire.Payload)
	if err != nil {
		return nil, err
	}

	return &models.CloudSave{Payload: payload, Meta: wire.Meta}, nil
}
