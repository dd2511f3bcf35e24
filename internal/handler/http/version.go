package http

import (
	"net/http"

	"github.com/MKhiriev/go-save-sync/internal/app"
	"github.com/MKhiriev/go-save-sync/internal/logger"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

// readiness answers 204 once the database responds. Clients treat 502, 503
// and 504 as a backend that is still waking up.
func (h *Handler) readiness(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready.Ping(r.Context()); err != nil {
			logger.FromRequest(r).Warn().Err(err).Msg("not ready")
			http.Error(w, app.MsgNotReady, http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
