package repository

import (
	"context"

	"transit/internal/domain"
)

// ReviewRepository defines the persistence operations for route reviews.
type ReviewRepository interface {
	// Create persists a new review and sets its ID.
	Create(ctx context.Context, review *domain.Review) error

	// GetByRoute retrieves the reviews of a route, newest first.
	GetByRoute(ctx context.Context, routeID int64) ([]*domain.Review, error)
}
