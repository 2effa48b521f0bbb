package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if len(h.cfg.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", traceIDHeader},
			ExposedHeaders: []string{traceIDHeader},
			MaxAge:         300,
		}))
	}
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}
	router.Use(middleware.Compress(5, "application/json"))

	router.NotFound(h.routeNotFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Group(func(r chi.Router) {
			r.Use(h.serialize)

			// routes without authorization
			r.Post("/session", h.login)

			r.Group(func(r chi.Router) {
				r.Use(h.auth)

				r.Delete("/session", h.logout)

				r.Route("/patients", func(r chi.Router) {
					r.Get("/", h.listPatients)
					r.Post("/", h.createPatient)
					r.Get("/{phn}", h.searchPatient)
					r.Put("/{phn}", h.updatePatient)
					r.Delete("/{phn}", h.deletePatient)
				})

				r.Get("/current", h.getCurrentPatient)
				r.Put("/current", h.setCurrentPatient)
				r.Delete("/current", h.unsetCurrentPatient)

				r.Route("/notes", func(r chi.Router) {
					r.Get("/", h.listNotes)
					r.Post("/", h.createNote)
					r.Get("/{code}", h.searchNote)
					r.Put("/{code}", h.updateNote)
					r.Delete("/{code}", h.deleteNote)
				})
			})
		})
	})

	return router
}
