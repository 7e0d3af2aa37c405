/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the back-office frontend

ROUTE GROUPS:
  /api/bookings/*   Schedule, pricing, rooming per booking
  /api/templates/*  Master template management

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/bookings/{id}", func(r chi.Router) {
			r.Get("/schedule", h.GetSchedule)
			r.Post("/schedule/regenerate", h.Regenerate)
			r.Post("/schedule/save-as-template", h.SaveAsTemplate)
			r.Put("/rows/{rowID}/notes", h.SaveRowNotes)
			r.Delete("/rows/{rowID}", h.DeleteRow)
			r.Get("/price", h.GetPrice)
			r.Get("/rooms", h.GetRooms)
		})

		r.Route("/templates/{tourType}/{kind}", func(r chi.Router) {
			r.Get("/", h.GetTemplate)
			r.Put("/", h.PutTemplate)
		})
	})

	return r
}
