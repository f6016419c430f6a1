package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/ping", h.ping)
	})

	// sync protocol, bearer token required
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/sync/push", h.push)
		r.Get("/api/sync/pull", h.pull)
	})

	return router
}
