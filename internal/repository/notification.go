package repository

import (
	"context"

	"transit/internal/domain"
)

// NotificationRepository defines the persistence operations for
// notifications.
type NotificationRepository interface {
	// Create persists a new notification and sets its ID.
	Create(ctx context.Context, notification *domain.Notification) error

	// GetByUser retrieves a user's notifications, newest first.
	GetByUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
}
