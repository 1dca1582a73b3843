package http

import (
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/login", h.login)
	})

	// routes for any authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/auth/profile", h.profile)
		r.Get("/api/profile", h.profile)
	})

	// administrative routes
	router.Route("/api/admin", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireRole(models.RoleAdmin))
		r.Get("/users", h.listUsers)
		r.Patch("/users/{id}", h.updateUser)
		r.Get("/stats", h.stats)
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	return router
}
