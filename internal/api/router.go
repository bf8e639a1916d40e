package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"lakewatch/internal/middleware"
)

// RouterConfig holds router-level settings.
type RouterConfig struct {
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	Logger             *slog.Logger
}

// NewRouter assembles the chi router: request id, recovery, request logging,
// per-client rate limiting, CORS, and the dashboard routes.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	if cfg.Logger != nil {
		r.Use(middleware.Logger(cfg.Logger.With("component", "http")))
	}
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		}))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Get("/healthz", h.Healthz)

	r.Route("/api/securitylake", func(r chi.Router) {
		r.Get("/status", h.GetStatus)
		r.Get("/sources", h.GetSources)
		r.Get("/tables", h.GetTables)
		r.Get("/queries", h.ListQueries)
		r.Post("/query", h.RunQuery)
	})

	return r
}
