package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/santiago/autovidriera/internal/metrics"
	"github.com/santiago/autovidriera/internal/middleware"
)

// RouterDeps bundles everything NewRouter needs.
type RouterDeps struct {
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	Catalog      CatalogService
	ContactPhone string

	// Metrics exposure; Gatherer serves /metrics, StatusRecorder
	// receives per-response status codes. Both may be nil in tests.
	Gatherer       prometheus.Gatherer
	StatusRecorder middleware.StatusRecorder
}

// NewRouter returns the chi.Router with the full middleware chain and
// every API route.
//
// Middleware order, outermost first:
//
//	RequestID → Logging → Recovery → SecurityHeaders → CORS
//
// /health and /metrics sit outside the rate limits; the /api group is
// rate limited per client, with a separate tighter limit on refresh.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.StatusRecorder))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	vehicleHandler := NewVehicleHandler(deps.Catalog, deps.ContactPhone, deps.Logger)
	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.SetupMetricsRoute(deps.Gatherer))
	}

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Route("/api/vehicles", func(r chi.Router) {
			r.Get("/", vehicleHandler.ListVehicles)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", vehicleHandler.GetVehicle)
				r.Get("/contact", vehicleHandler.GetContact)
			})
		})

		r.Get("/api/filters", vehicleHandler.GetFilters)

		// POST /api/catalog/refresh - forced reload, tighter limit.
		r.With(deps.RateLimiter.RefreshMiddleware()).Post("/api/catalog/refresh", catalogHandler.RefreshCatalog)
	})

	return r
}
