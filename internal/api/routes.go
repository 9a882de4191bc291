package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/tanggalan/internal/config"
	"github.com/zapponejosh/tanggalan/internal/metrics"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health
//	GET  /metrics                    (API key when configured)
//	GET  /api/v1/today
//	GET  /api/v1/dates?start=&end=
//	GET  /api/v1/dates/{date}
//	POST /api/v1/parse
//	GET  /api/v1/weton/next?date=&weton=
//	GET  /api/v1/years/{year}
//	GET  /api/v1/wektu
func SetupRoutes(handlers *Handlers, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
		MetricsMiddleware(m),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	// ==========================================================================
	// Operational routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)
	r.With(AuthMiddleware(cfg, logger)).Handle("/metrics", m.Handler())

	// ==========================================================================
	// Calendar routes
	// ==========================================================================
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/today", handlers.GetToday)
		r.Get("/dates", handlers.GetRange)
		r.Get("/dates/{date}", handlers.GetDate)
		r.Post("/parse", handlers.Parse)
		r.Get("/weton/next", handlers.NextWeton)
		r.Get("/years/{year}", handlers.GetYear)
		r.Get("/wektu", handlers.GetWektu)
	})

	return r
}
