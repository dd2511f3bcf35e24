package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// authBodyLimit caps credential bodies; save writes use the configured
// payload limit.
const authBodyLimit = 16 << 10

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, withCompression)

	router.Get("/api/ready", h.readiness)
	router.Get("/api/version", h.getServerVersion)
	router.Handle("/metrics", h.metrics.handler())

	router.Route("/api/auth", func(r chi.Router) {
		r.With(limitBody(authBodyLimit)).Post("/register", h.register)
		r.With(limitBody(authBodyLimit)).Post("/login", h.login)
		r.Get("/csrf", h.csrf)
		r.With(h.checkCSRF).Post("/refresh", h.refresh)
		r.Post("/logout", h.logout)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/saves/latest", h.getLatestSave)
		r.With(limitBody(h.maxPayloadBytes), h.limitWrites).Put("/api/saves/latest", h.putLatestSave)
	})

	router.MethodNotAllowed(methodNotFound)
	router.NotFound(methodNotFound)

	return router
}
