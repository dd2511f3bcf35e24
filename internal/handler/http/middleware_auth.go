package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/MKhiriev/go-save-sync/internal/utils"
	"github.com/MKhiriev/go-save-sync/models"
)

// auth is an HTTP middleware that enforces bearer access tokens.
//
// It validates the token via [service.AuthService.ParseAccessToken] and
// stores the account id in the request context under
// [utils.AccountIDCtxKey]. Missing, malformed, expired and forged tokens
// all answer 401, which makes the client refresh once.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseAccessToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithAccountID(ctx, token.AccountID)))
	})
}

// checkCSRF enforces the double-submit pattern: the X-CSRF-Token header
// must equal the csrf_token cookie.
func (h *Handler) checkCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(models.CSRFHeaderName)
		cookie, err := r.Cookie(models.CSRFCookieName)

		if err != nil || header == "" || subtle.ConstantTimeCompare([]byte(header), []byte(cookie.Value)) != 1 {
			writeError(w, r, ErrCSRFMismatch)
			return
		}

		next.ServeHTTP(w, r)
	})
}
