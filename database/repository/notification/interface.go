// File: database/repository/notification/interface.go
package notificationRepo

import (
	"context"
	"time"

	"citaflow/models"
)

// NotificationRepository stores in-app notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	List(ctx context.Context, staffID int, unreadOnly bool, limit int64) ([]models.Notification, error)
	CountUnread(ctx context.Context, staffID int) (int64, error)
	MarkAllRead(ctx context.Context, staffID int) (int64, error)
	// DeleteReadBefore removes read notifications created before the cutoff
	// and returns how many were removed. Used by the cleanup worker.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// AchievementMarkerRepository gates gamified notifications to at-most-once
// per (agent, kind, period).
type AchievementMarkerRepository interface {
	// Claim records the marker and reports whether this call inserted it.
	// Only the claiming caller may send the notification.
	Claim(ctx context.Context, agentID int, kind, period string) (bool, error)
}
