package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Akshaya1307/workbuddy/internal/app"
	"github.com/Akshaya1307/workbuddy/internal/middleware"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
)

// RouterConfig carries the HTTP-level settings of the router.
type RouterConfig struct {
	JWTSecret         string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Zero values use the stream defaults.
	StreamPollInterval      time.Duration
	StreamHeartbeatInterval time.Duration
}

// NewRouter mounts every endpoint over the assembled app.
func NewRouter(a *app.App, cfg RouterConfig, log *logger.Logger) http.Handler {
	healthHandler := NewHealthHandler(a.NATS)
	conversationHandler := NewConversationHandler(a.Conversations, log.Named("conversations"))
	messageHandler := NewMessageHandler(a.Assistant, a.Conversations, log.Named("messages"))
	dashboardHandler := NewDashboardHandler(a.Dashboard, a.Catalog.QuickActions)
	streamHandler := NewStreamHandler(a.Dashboard, log.Named("stream"))
	if cfg.StreamPollInterval > 0 {
		streamHandler.PollInterval = cfg.StreamPollInterval
	}
	if cfg.StreamHeartbeatInterval > 0 {
		streamHandler.HeartbeatInterval = cfg.StreamHeartbeatInterval
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log.Named("http")))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())

	// Health endpoints (no identity required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity(cfg.JWTSecret))
		if cfg.RateLimitRequests > 0 && cfg.RateLimitWindow > 0 {
			r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
		}

		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", conversationHandler.Create)
			r.Get("/", conversationHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", conversationHandler.Get)
				r.Delete("/", conversationHandler.Delete)

				r.Get("/messages", messageHandler.List)
				r.Post("/messages", messageHandler.Send)
			})
		})

		r.Get("/quick-actions", dashboardHandler.QuickActions)
		r.Get("/dashboard", dashboardHandler.Dashboard)
		r.Get("/tickets", dashboardHandler.Tickets)
		r.Get("/onboarding", dashboardHandler.Onboarding)

		r.Route("/workflow", func(r chi.Router) {
			r.Get("/logs", dashboardHandler.Logs)
			r.Get("/stream", streamHandler.Stream)
		})
	})

	return r
}
