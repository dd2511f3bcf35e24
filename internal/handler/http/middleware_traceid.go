package http

import (
	"net/http"

	"github.com/MKhiriev/go-save-sync/internal/utils"
)

const (
	traceIDHeader = utils.TraceIDHeader

	// maxTraceIDLen bounds a caller supplied trace id.
	maxTraceIDLen = 64
)

var traceIDs = utils.NewUUIDGenerator()

// withTraceID tags the request logger and the response with a trace id.
// A well formed id sent by the client is kept so client and backend logs
// of one sync can be joined.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !validTraceID(traceID) {
			traceID = traceIDs.Generate()
		}

		l := h.logger.With().Str("trace_id", traceID).Logger()

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLen {
		return false
	}
	for _, c := range id {
		ok := c == '-' || c == '_' || c == '.' ||
			(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !ok {
			return false
		}
	}
	return true
}
