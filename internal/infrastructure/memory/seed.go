package memory

import (
	"time"

	"github.com/chirp-api/internal/domain"
)

// SeedUserID owns the two seed notifications that do not belong to the demo user.
const SeedUserID = "user-456"

// Seed returns the fixed demo notifications, newest first, with timestamps
// relative to now.
func Seed(now time.Time) []domain.Notification {
	return []domain.Notification{
		{
			ID:        "notif-1",
			UserID:    domain.DemoUserID,
			Type:      domain.NotificationTypeEmail,
			Title:     "New Email Update",
			Content:   "You have received a new email from your manager about the quarterly review.",
			Timestamp: now.Add(-time.Hour),
			Metadata: map[string]any{
				"sender":   "manager@company.com",
				"priority": "high",
			},
		},
		{
			ID:        "notif-2",
			UserID:    domain.DemoUserID,
			Type:      domain.NotificationTypeSMS,
			Title:     "SMS Verification",
			Content:   "Your verification code is 123456. It expires in 10 minutes.",
			Timestamp: now.Add(-2 * time.Hour),
			Read:      true,
		},
		{
			ID:        "notif-3",
			UserID:    SeedUserID,
			Type:      domain.NotificationTypeInApp,
			Title:     "Welcome to Chirp!",
			Content:   "Welcome to our notification system. Explore the features and let us know what you think!",
			Timestamp: now.Add(-24 * time.Hour),
		},
		{
			ID:        "notif-4",
			UserID:    SeedUserID,
			Type:      domain.NotificationTypeEmail,
			Title:     "Weekly Newsletter",
			Content:   "Check out the latest updates and features in our weekly newsletter.",
			Timestamp: now.Add(-48 * time.Hour),
			Read:      true,
		},
	}
}

// SeedUsers returns the owners of the seed notifications.
func SeedUsers() []domain.User {
	return []domain.User{
		{
			ID:    domain.DemoUserID,
			Name:  "Demo User",
			Email: "demo.user@example.com",
			Phone: "+15555550123",
		},
		{
			ID:    SeedUserID,
			Name:  "Alex Morgan",
			Email: "alex.morgan@example.com",
		},
	}
}
