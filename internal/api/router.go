package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/sayafh/curriculum-chat/internal/api/handler"
	customMiddleware "github.com/sayafh/curriculum-chat/internal/api/middleware"
	"github.com/sayafh/curriculum-chat/internal/config"
	"github.com/sayafh/curriculum-chat/internal/domain"
	"github.com/sayafh/curriculum-chat/internal/repository/redis"
	"github.com/sayafh/curriculum-chat/internal/session"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, catalog *domain.Catalog, manager *session.Manager, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", customMiddleware.SessionIDHeader},
		ExposedHeaders:   []string{"X-Request-ID", customMiddleware.SessionIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Handlers
	courseHandler := handler.NewCourseHandler(catalog)
	sessionHandler := handler.NewSessionHandler()
	uploadHandler := handler.NewUploadHandler()

	// Rate limiting applies only to the gateway-backed ask endpoint, and
	// only when Redis is configured.
	var rateLimit func(http.Handler) http.Handler
	if redisClient != nil {
		limiter := redis.NewRateLimiter(
			redisClient,
			cfg.RateLimit.RequestsPerMinute,
			cfg.RateLimit.Burst,
		)
		rateLimit = customMiddleware.NewRateLimitMiddleware(limiter).Limit
		log.Info().Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute).Msg("ask rate limiting enabled")
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.SessionContext(manager))

			r.Get("/courses", courseHandler.List)

			r.Route("/session", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Post("/select", sessionHandler.Select)
				r.Post("/back", sessionHandler.Back)
				r.Post("/start", sessionHandler.Start)
				r.Put("/focus", sessionHandler.Focus)
				r.Get("/transcript", sessionHandler.Transcript)

				r.Post("/document", uploadHandler.Upload)
				r.Get("/document", uploadHandler.Get)
				r.Delete("/document", uploadHandler.Delete)

				if rateLimit != nil {
					r.With(rateLimit).Post("/ask", sessionHandler.Ask)
				} else {
					r.Post("/ask", sessionHandler.Ask)
				}
			})
		})
	})

	return r
}
