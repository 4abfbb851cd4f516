package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/chirp-api/internal/domain"
	"github.com/chirp-api/internal/pkg/id"
	"github.com/chirp-api/internal/pkg/latency"
)

// User-facing result messages.
const (
	MsgListed            = "Notifications retrieved successfully"
	MsgListFailed        = "Failed to retrieve notifications"
	MsgFetched           = "Notification retrieved successfully"
	MsgFetchFailed       = "Failed to retrieve notification"
	MsgSent              = "Notification sent successfully"
	MsgSendFailed        = "Failed to send notification"
	MsgMarkedRead        = "Notification marked as read"
	MsgNotFound          = "Notification not found"
	MsgMarkReadFailed    = "Failed to mark notification as read"
	MsgMarkedAllRead     = "All notifications marked as read"
	MsgMarkAllReadFailed = "Failed to mark all notifications as read"
)

// Service exposes the notification operations. Every call waits its simulated
// latency first and always yields exactly one result; failures are reported
// through Success=false, never as an error or panic. Once started, an
// operation runs to completion even if the caller's context is cancelled.
type Service interface {
	List(ctx context.Context, userID string) domain.NotificationsResponse
	Get(ctx context.Context, notificationID string) domain.NotificationResponse
	Send(ctx context.Context, req domain.SendNotificationRequest) domain.NotificationResponse
	MarkAsRead(ctx context.Context, notificationID string) domain.NotificationResponse
	MarkAllAsRead(ctx context.Context, userID string) domain.NotificationsResponse
	CurrentUserID() string
}

// Store is the persistence the service requires.
type Store interface {
	Put(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) ([]domain.Notification, error)
}

// Notifier surfaces transient user-facing messages (toasts).
type Notifier interface {
	NotifySuccess(ctx context.Context, text string)
	NotifyFailure(ctx context.Context, text string)
}

// Deliverer pushes a freshly sent notification to its external channel.
type Deliverer interface {
	Deliver(ctx context.Context, n domain.Notification) error
}

// ServiceDeps groups the service collaborators. Only Repo is required.
type ServiceDeps struct {
	Repo          Store
	Notifier      Notifier
	Deliverer     Deliverer
	Sleeper       latency.Sleeper
	Latency       latency.Profile
	Clock         func() time.Time
	NewID         func() string
	CurrentUserID string
}

type service struct {
	repo          Store
	notifier      Notifier
	deliverer     Deliverer
	sleeper       latency.Sleeper
	latency       latency.Profile
	clock         func() time.Time
	newID         func() string
	currentUserID string
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:          deps.Repo,
		notifier:      deps.Notifier,
		deliverer:     deps.Deliverer,
		sleeper:       deps.Sleeper,
		latency:       deps.Latency,
		clock:         deps.Clock,
		newID:         deps.NewID,
		currentUserID: deps.CurrentUserID,
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.sleeper == nil {
		s.sleeper = latency.Real{}
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return id.NewWithPrefix("notif") }
	}
	if s.currentUserID == "" {
		s.currentUserID = domain.DemoUserID
	}
	return s
}

func (s *service) CurrentUserID() string { return s.currentUserID }

func (s *service) List(ctx context.Context, userID string) domain.NotificationsResponse {
	var list []domain.Notification
	err := s.run(ctx, "list notifications", s.latency.List, func(ctx context.Context) error {
		var err error
		list, err = s.repo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "error fetching notifications", "user_id", userID, "err", err)
		return domain.NotificationsResponse{Message: MsgListFailed, Data: []domain.Notification{}}
	}
	return domain.NotificationsResponse{Success: true, Message: MsgListed, Data: nonNil(list)}
}

// Get fetches a single notification. Like MarkAsRead it reports a missing id
// with MsgNotFound and no data.
func (s *service) Get(ctx context.Context, notificationID string) domain.NotificationResponse {
	var found *domain.Notification
	err := s.run(ctx, "get notification", s.latency.Get, func(ctx context.Context) error {
		var err error
		found, err = s.repo.Get(ctx, notificationID)
		return err
	})
	switch {
	case err == nil:
		return domain.NotificationResponse{Success: true, Message: MsgFetched, Data: found}
	case errors.Is(err, domain.ErrNotFound):
		return domain.NotificationResponse{Message: MsgNotFound}
	default:
		slog.ErrorContext(ctx, "error fetching notification", "notification_id", notificationID, "err", err)
		return domain.NotificationResponse{Message: MsgFetchFailed}
	}
}

func (s *service) Send(ctx context.Context, req domain.SendNotificationRequest) domain.NotificationResponse {
	var created domain.Notification
	err := s.run(ctx, "send notification", s.latency.Send, func(ctx context.Context) error {
		created = domain.Notification{
			ID:        s.newID(),
			UserID:    req.UserID,
			Type:      req.Type,
			Title:     req.Title,
			Content:   req.Content,
			Timestamp: s.clock().UTC(),
			Read:      false,
			Metadata:  maps.Clone(req.Metadata),
		}
		return s.repo.Put(ctx, &created)
	})
	if err != nil {
		slog.ErrorContext(ctx, "error sending notification", "user_id", req.UserID, "type", req.Type, "err", err)
		s.notifier.NotifyFailure(ctx, MsgSendFailed)
		return domain.NotificationResponse{Message: MsgSendFailed}
	}

	if s.deliverer != nil {
		if err := s.deliverer.Deliver(context.WithoutCancel(ctx), created.Clone()); err != nil {
			slog.WarnContext(ctx, "failed to deliver notification", "notification_id", created.ID, "type", created.Type, "err", err)
		}
	}

	s.notifier.NotifySuccess(ctx, MsgSent)
	return domain.NotificationResponse{Success: true, Message: MsgSent, Data: &created}
}

func (s *service) MarkAsRead(ctx context.Context, notificationID string) domain.NotificationResponse {
	var updated *domain.Notification
	err := s.run(ctx, "mark notification read", s.latency.MarkRead, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.MarkAsRead(ctx, notificationID)
		return err
	})
	switch {
	case err == nil:
		return domain.NotificationResponse{Success: true, Message: MsgMarkedRead, Data: updated}
	case errors.Is(err, domain.ErrNotFound):
		return domain.NotificationResponse{Message: MsgNotFound}
	default:
		slog.ErrorContext(ctx, "error marking notification as read", "notification_id", notificationID, "err", err)
		return domain.NotificationResponse{Message: MsgMarkReadFailed}
	}
}

func (s *service) MarkAllAsRead(ctx context.Context, userID string) domain.NotificationsResponse {
	var list []domain.Notification
	err := s.run(ctx, "mark all notifications read", s.latency.MarkAllRead, func(ctx context.Context) error {
		var err error
		list, err = s.repo.MarkAllAsRead(ctx, userID)
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "error marking all notifications as read", "user_id", userID, "err", err)
		s.notifier.NotifyFailure(ctx, MsgMarkAllReadFailed)
		return domain.NotificationsResponse{Message: MsgMarkAllReadFailed, Data: []domain.Notification{}}
	}
	s.notifier.NotifySuccess(ctx, MsgMarkedAllRead)
	return domain.NotificationsResponse{Success: true, Message: MsgMarkedAllRead, Data: nonNil(list)}
}

// run waits out the simulated round trip, then calls fn. Both run on a context
// detached from ctx's cancellation: no operation can be cancelled once started.
// A panic inside fn is converted into an error wrapping domain.ErrUnexpected;
// any other non not-found error is wrapped the same way.
func (s *service) run(ctx context.Context, op string, delay time.Duration, fn func(context.Context) error) (err error) {
	ctx = context.WithoutCancel(ctx)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v: %w", op, r, domain.ErrUnexpected)
		}
	}()
	if err := s.sleeper.Sleep(ctx, delay); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrUnexpected, err)
	}
	if err := fn(ctx); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%s: %w: %w", op, domain.ErrUnexpected, err)
	}
	return nil
}

func nonNil(list []domain.Notification) []domain.Notification {
	if list == nil {
		return []domain.Notification{}
	}
	return list
}

type nopNotifier struct{}

func (nopNotifier) NotifySuccess(context.Context, string) {}
func (nopNotifier) NotifyFailure(context.Context, string) {}
