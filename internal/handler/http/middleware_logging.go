package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-save-sync/internal/logger"
)

// withLogging writes one access log line per request. Server errors are
// logged at error level, rejected requests at warn, the rest at info.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		status := rec.Status()
		level := zerolog.InfoLevel
		switch {
		case status >= http.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case status == http.StatusConflict || status == http.StatusTooManyRequests:
			level = zerolog.WarnLevel
		}

		logger.FromRequest(r).WithLevel(level).
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", status).
			Int64("bytes_in", r.ContentLength).
			Int("bytes_out", rec.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
