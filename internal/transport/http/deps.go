package http

import (
	"context"
	"log/slog"

	"github.com/chirp-api/internal/application/notification"
	"github.com/chirp-api/internal/domain"
	"github.com/chirp-api/internal/pkg/latency"
)

// UserDirectory resolves user profiles.
type UserDirectory interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// Deps holds the collaborators the router wires into the notification service.
type Deps struct {
	NotificationRepo notification.Store
	Users            UserDirectory // nil: the current-user endpoint returns the id only
	Notifier         notification.Notifier
	Deliverer        notification.Deliverer // nil disables external delivery
	Sleeper          latency.Sleeper
	Logger           *slog.Logger
}
