/*
server.go - HTTP router and middleware configuration

ROUTER: chi

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the recording frontend

ROUTE GROUPS:
  /api/compute             One-shot breakdown computation
  /api/settings            Rate schedule configuration
  /api/entries/*           Stored day records
  /api/months/*            Monthly summaries and payslip export
  /api/holidays/*          National holiday calendar
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/compute", h.Compute)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.UpdateSettings)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", h.ListEntries)
			r.Get("/{date}", h.GetEntry)
			r.Put("/{date}", h.UpsertEntry)
			r.Delete("/{date}", h.DeleteEntry)
		})

		r.Route("/months", func(r chi.Router) {
			r.Get("/{year}/{month}", h.MonthSummary)
			r.Get("/{year}/{month}/payslip.pdf", h.MonthPayslip)
		})

		r.Get("/holidays/{year}", h.ListHolidays)
	})

	return r
}
