package postgres

import (
	"context"
	"database/sql"

	"transit/internal/domain"
	"transit/internal/repository"
)

// NotificationRepository is a PostgreSQL implementation of
// repository.NotificationRepository.
type NotificationRepository struct {
	q Querier
}

// NewNotificationRepository creates a new PostgreSQL notification repository.
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{q: db}
}

// Create persists a new notification and sets its ID.
func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.q.QueryRowContext(ctx, query,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.IsRead,
		notification.CreatedAt,
	).Scan(&notification.ID)
}

// GetByUser retrieves a user's notifications, newest first.
func (r *NotificationRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, title, message, is_read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT 100
	`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// Ensure NotificationRepository implements
// repository.NotificationRepository.
var _ repository.NotificationRepository = (*NotificationRepository)(nil)
