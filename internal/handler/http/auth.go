package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/service"
	"github.com/MKhiriev/go-save-sync/internal/utils"
	"github.com/MKhiriev/go-save-sync/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, "register")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, "login")
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request, op string) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	var (
		tokens models.AuthTokens
		err    error
	)
	if op == "register" {
		tokens, err = h.services.AuthService.Register(ctx, creds)
	} else {
		tokens, err = h.services.AuthService.Login(ctx, creds)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.startSession(w, tokens); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("account_id", tokens.AccountID).Str("op", op).Msg("session started")
	utils.WriteJSON(w, http.StatusOK, models.AccessTokenResponse{AccessToken: tokens.AccessToken})
}

// csrf issues a fresh CSRF cookie for a client holding a refresh cookie.
func (h *Handler) csrf(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(models.RefreshCookieName); err != nil {
		writeError(w, r, ErrMissingRefreshCookie)
		return
	}

	token, err := h.services.AuthService.NewCSRFToken()
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setCSRFCookie(w, token)
	utils.WriteJSON(w, http.StatusOK, models.CSRFResponse{CSRFToken: token})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(models.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, r, ErrMissingRefreshCookie)
		return
	}

	tokens, err := h.services.AuthService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.clearCookies(w)
		writeError(w, r, err)
		return
	}

	if err = h.startSession(w, tokens); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.AccessTokenResponse{AccessToken: tokens.AccessToken})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(models.RefreshCookieName); err == nil {
		if err = h.services.AuthService.Logout(r.Context(), cookie.Value); err != nil {
			logger.FromRequest(r).Err(err).Msg("revoking refresh token failed")
		}
	}

	h.clearCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// startSession sets the refresh and CSRF cookies for tokens.
func (h *Handler) startSession(w http.ResponseWriter, tokens models.AuthTokens) error {
	csrf, err := h.services.AuthService.NewCSRFToken()
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     models.RefreshCookieName,
		Value:    tokens.RefreshToken,
		Path:     models.AuthCookiePath,
		Expires:  tokens.RefreshExpiresAt,
		MaxAge:   int(time.Until(tokens.RefreshExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	h.setCSRFCookie(w, csrf)

	return nil
}

// setCSRFCookie sets the double-submit cookie. It is readable by the client
// so it can be echoed in the CSRF header.
func (h *Handler) setCSRFCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     models.CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: models.RefreshCookieName, Path: models.AuthCookiePath, MaxAge: -1, HttpOnly: true, Secure: h.secureCookies})
	http.SetCookie(w, &http.Cookie{Name: models.CSRFCookieName, Path: "/", MaxAge: -1, Secure: h.secureCookies})
}

// decodeJSON decodes the request body into dst. Oversized bodies map to
// [ErrPayloadTooLarge], anything else unreadable to a 400.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	err := dec.Decode(dst)
	var maxBytesErr *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &maxBytesErr):
		return ErrPayloadTooLarge
	default:
		return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
	}
}
