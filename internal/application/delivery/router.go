// Package delivery pushes sent notifications to their external channel.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chirp-api/internal/domain"
	"github.com/chirp-api/internal/infrastructure/email"
)

// Metadata keys holding channel addresses.
const (
	MetaPhone = "phone"
	MetaEmail = "email"
)

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type emailSender interface {
	Send(ctx context.Context, msg email.Message) error
}

type userLookup interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// Router picks the channel from the notification type. A nil sender disables
// that channel. Addresses come from the notification metadata first, then from
// the recipient's directory entry when users is set.
type Router struct {
	sms   smsSender
	email emailSender
	users userLookup
}

func NewRouter(sms smsSender, mail emailSender, users userLookup) *Router {
	return &Router{sms: sms, email: mail, users: users}
}

func (r *Router) Deliver(ctx context.Context, n domain.Notification) error {
	switch n.Type {
	case domain.NotificationTypeSMS:
		return r.deliverSMS(ctx, n)
	case domain.NotificationTypeEmail:
		return r.deliverEmail(ctx, n)
	default:
		return nil
	}
}

func (r *Router) deliverSMS(ctx context.Context, n domain.Notification) error {
	phone, ok := r.address(ctx, n, MetaPhone, func(u *domain.User) string { return u.Phone })
	if !ok || r.sms == nil {
		slog.DebugContext(ctx, "sms delivery skipped", "notification_id", n.ID, "has_phone", ok)
		return nil
	}
	if err := r.sms.SendSMS(ctx, phone, smsBody(n)); err != nil {
		return fmt.Errorf("deliver %s via sms: %w", n.ID, err)
	}
	return nil
}

func (r *Router) deliverEmail(ctx context.Context, n domain.Notification) error {
	to, ok := r.address(ctx, n, MetaEmail, func(u *domain.User) string { return u.Email })
	if !ok || r.email == nil {
		slog.DebugContext(ctx, "email delivery skipped", "notification_id", n.ID, "has_email", ok)
		return nil
	}
	html, err := email.RenderMarkdown(n.Content)
	if err != nil {
		return fmt.Errorf("deliver %s via email: %w", n.ID, err)
	}
	msg := email.Message{To: to, Subject: n.Title, Text: n.Content, HTML: html}
	if err := r.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("deliver %s via email: %w", n.ID, err)
	}
	return nil
}

func (r *Router) address(ctx context.Context, n domain.Notification, key string, field func(*domain.User) string) (string, bool) {
	if v, ok := n.MetadataString(key); ok {
		return v, true
	}
	if r.users == nil {
		return "", false
	}
	u, err := r.users.Get(ctx, n.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.WarnContext(ctx, "recipient lookup failed", "notification_id", n.ID, "user_id", n.UserID, "err", err)
		}
		return "", false
	}
	v := field(u)
	return v, v != ""
}

func smsBody(n domain.Notification) string {
	if n.Title == "" {
		return n.Content
	}
	if n.Content == "" {
		return n.Title
	}
	return n.Title + ": " + n.Content
}
