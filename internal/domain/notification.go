package domain

import (
	"maps"
	"time"
)

// NotificationType is the delivery channel a notification was sent through.
type NotificationType string

const (
	NotificationTypeEmail NotificationType = "email"
	NotificationTypeSMS   NotificationType = "sms"
	NotificationTypeInApp NotificationType = "in-app"
)

// Notification is a single message delivered to a user. ID and Timestamp are
// fixed at creation; Read only ever moves from false to true.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
}

// Clone returns a copy that shares no mutable state with n.
func (n Notification) Clone() Notification {
	n.Metadata = maps.Clone(n.Metadata)
	return n
}

// MetadataString returns metadata[key] when it holds a non-empty string.
func (n Notification) MetadataString(key string) (string, bool) {
	v, ok := n.Metadata[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// SendNotificationRequest carries the inputs of a send. Type, title and content
// are accepted as-is.
type SendNotificationRequest struct {
	UserID   string           `json:"userId"`
	Type     NotificationType `json:"type"`
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Metadata map[string]any   `json:"metadata,omitempty"`
}

// NotificationResponse is the result of an operation producing at most one notification.
type NotificationResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *Notification `json:"data,omitempty"`
}

// NotificationsResponse is the result of an operation producing a list. Data is
// never nil so it always encodes as a JSON array.
type NotificationsResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    []Notification `json:"data"`
}
