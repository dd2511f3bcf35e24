package http

import (
	"net/http"

	"github.com/MKhiriev/go-save-sync/internal/app"
	"github.com/MKhiriev/go-save-sync/internal/logger"
)

// methodNotFound answers a known path called with an unrouted method.
// The backend does not advertise which methods a path accepts, so the
// caller gets the same 404 as for an unknown path.
func methodNotFound(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("method is not routed")

	http.Error(w, app.MsgNotFound, http.StatusNotFound)
}
