package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/chirp-api/internal/application/notification"
	"github.com/chirp-api/internal/config"
	"github.com/chirp-api/internal/pkg/latency"
	"github.com/chirp-api/internal/transport/http/handler"
	appmiddleware "github.com/chirp-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. ctx bounds background
// work started by middleware.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(appmiddleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	sendRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.SendRateLimit), cfg.SendRateBurst)

	sleeper := deps.Sleeper
	if sleeper == nil {
		sleeper = latencySleeper(cfg)
	}
	notifSvc := notification.NewService(notification.ServiceDeps{
		Repo:          deps.NotificationRepo,
		Notifier:      deps.Notifier,
		Deliverer:     deps.Deliverer,
		Sleeper:       sleeper,
		Latency:       cfg.Latency,
		CurrentUserID: cfg.CurrentUserID,
	})

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(notifSvc, deps.Users)
	notifH := handler.NewNotificationHandler(notifSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		r.Get("/users/current", userH.Current)
		r.Get("/users/{userID}/notifications", notifH.List)
		r.Put("/users/{userID}/notifications/read", notifH.MarkAllAsRead)

		r.With(sendRL.Limit).Post("/notifications", notifH.Send)
		r.Get("/notifications/{id}", notifH.Get)
		r.Put("/notifications/{id}/read", notifH.MarkAsRead)
	})

	return r
}

func latencySleeper(cfg *config.Config) latency.Sleeper {
	if cfg.SimulateLatency {
		return latency.Real{}
	}
	return latency.None{}
}
