/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       The kiosk page may be hosted separately
  5. Metrics:    Prometheus request counters/histograms

ROUTE GROUPS:
  /api/verificar-acesso   Public verification
  /api/cardapio-do-dia    Public menu of the day
  /api/admin/*            Secret-protected report and reset
  /metrics                Prometheus exposition
  /*                      Static files (kiosk + admin pages)

STATIC FILE SERVING:
  Serves ./public when present (index.html for employees, admin.html
  for the canteen staff). The real protection is on the admin API
  routes, not on the static page.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(metricsMiddleware)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/verificar-acesso", h.VerifyAccess)
		r.Get("/cardapio-do-dia", h.MenuOfTheDay)

		r.Route("/admin", func(r chi.Router) {
			r.With(h.adminOnly).Get("/relatorio", h.AdminReport)
			r.With(h.adminOnly).Get("/baixar-relatorio", h.DownloadReport)
			// The reset secret is checked inside the handler; it is a
			// different credential from the general admin secret.
			r.Post("/zerar", h.ResetLog)
		})
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Serve static files (kiosk and admin pages) when present
	staticDir := "./public"
	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			path := filepath.Join(staticDir, r.URL.Path)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	}

	return r
}
