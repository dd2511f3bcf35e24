package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-save-sync/internal/app"
	"github.com/MKhiriev/go-save-sync/internal/logger"
	"github.com/MKhiriev/go-save-sync/internal/service"
	"github.com/MKhiriev/go-save-sync/internal/store"
)

type errorResponse struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorResponse{
	service.ErrInvalidDataProvided:     {http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrWrongPassword:           {http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	service.ErrRefreshTokenInvalid:     {http.StatusUnauthorized, app.MsgRefreshTokenInvalid},

	ErrEmptyAuthorizationHeader:   {http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	ErrInvalidAuthorizationHeader: {http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	ErrMissingRefreshCookie:       {http.StatusUnauthorized, app.MsgRefreshTokenInvalid},
	ErrCSRFMismatch:               {http.StatusForbidden, app.MsgCSRFMismatch},
	ErrPayloadTooLarge:            {http.StatusRequestEntityTooLarge, app.MsgPayloadTooLarge},
	ErrRateLimited:                {http.StatusTooManyRequests, app.MsgRateLimited},
	ErrBadContentEncoding:         {http.StatusBadRequest, app.MsgInvalidDataProvided},

	store.ErrEmailAlreadyExists: {http.StatusConflict, app.MsgEmailAlreadyExists},
	store.ErrRevisionConflict:   {http.StatusConflict, app.MsgSaveRevisionConflict},
}

// statusFromError returns the response status and a message safe to show
// to the caller. Unknown errors are 500 and never leak details.
func statusFromError(err error) (int, string) {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err and answers with the mapped status.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	http.Error(w, message, status)
}
