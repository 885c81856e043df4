package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/capitalize-ai/health-assistant/internal/middleware"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
)

// WriteScope is required on conversation updates and deletes when auth is enabled.
const WriteScope = "conversations:write"

// RouterConfig carries the settings the route tree depends on.
type RouterConfig struct {
	AuthEnabled       bool
	JWTSecret         string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	AllowedOrigins    []string
}

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health        *HealthHandler
	Conversations *ConversationHandler
	Messages      *MessageHandler
	Stream        *StreamHandler
	WebSocket     *WebSocketHandler
	Content       *ContentHandler
}

// NewRouter builds the HTTP route tree.
func NewRouter(cfg RouterConfig, h Handlers, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health endpoints (no auth required)
	r.Get("/health", h.Health.Health)
	r.Get("/ready", h.Health.Ready)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Browsing catalogs are public.
		r.Route("/content", func(r chi.Router) {
			r.Get("/suggestions", h.Content.Suggestions)
			r.Get("/prevention", h.Content.Prevention)
			r.Get("/welcome", h.Content.Welcome)
			r.Get("/languages", h.Content.Languages)
			r.Get("/navigation", h.Content.Navigation)
			r.Get("/categories", h.Content.Categories)
		})

		r.Group(func(r chi.Router) {
			if cfg.AuthEnabled {
				r.Use(middleware.Auth(cfg.JWTSecret))
			} else {
				r.Use(middleware.Anonymous)
			}
			r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

			r.Post("/respond", h.Content.Respond)

			r.Route("/conversations", func(r chi.Router) {
				r.Post("/", h.Conversations.Create)
				r.Get("/", h.Conversations.List)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Conversations.Get)
					r.Group(func(r chi.Router) {
						if cfg.AuthEnabled {
							r.Use(middleware.RequireScope(WriteScope))
						}
						r.Put("/", h.Conversations.Update)
						r.Delete("/", h.Conversations.Delete)
					})

					r.Get("/messages", h.Messages.List)
					r.Post("/messages", h.Messages.Send)

					r.Get("/stream", h.Stream.Stream)
					r.Post("/stream", h.Stream.StreamWithMessage)

					r.Get("/ws", h.WebSocket.Serve)
				})
			})
		})
	})

	return r
}
