/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for spreadsheet add-ins and frontends

ROUTE GROUPS:
  /api/assets/*      Register and per-asset figures
  /api/portfolio/*   Register-wide totals
  /api/calculate     Stateless evaluation
  /api/scenarios/*   Demo registers
  /                  Endpoint index

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/assets", func(r chi.Router) {
			r.Get("/", h.ListAssets)
			r.Post("/", h.CreateAsset)
			r.Get("/{id}", h.GetAsset)
			r.Delete("/{id}", h.DeleteAsset)
			r.Get("/{id}/figures", h.GetFigures)
			r.Get("/{id}/schedule", h.GetSchedule)
			r.Get("/{id}/closings", h.ListClosings)
			r.Post("/{id}/closings", h.CloseYear)
		})

		r.Get("/portfolio/summary", h.GetPortfolioSummary)
		r.Post("/calculate", h.Calculate)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetRegister)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Fixed Asset Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Fixed Asset Engine API</h1>
<ul>
<li><a href="/api/assets">/api/assets</a> - List assets</li>
<li><a href="/api/portfolio/summary">/api/portfolio/summary</a> - Register totals for the current year</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo registers</li>
</ul>
</body>
</html>`))
	})

	return r
}
