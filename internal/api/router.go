package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vua-solutions/vua/internal/api/middleware"
	"github.com/vua-solutions/vua/internal/handlers"
)

// NewRouter creates and configures the HTTP router. The redis client is
// optional; without it the rate limiter is skipped.
func NewRouter(logger zerolog.Logger, h *handlers.Handler, redisClient *redis.Client) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(16 * 1024)) // 16KB max body

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	if redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient, logger)
		r.Use(limiter.Middleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	// Chat channels
	r.Post("/chat", h.Chat)
	r.Post("/vua", h.IncomingSMS)

	// SMS utilities
	r.Get("/send-sms", h.SendWelcomeSMS)
	r.Post("/delivery-reports", h.DeliveryReports)

	// Profile management
	r.Post("/update-profile", h.UpdateProfile)

	return r
}
