package repository

import (
	"context"

	"transit/internal/domain"
)

// LoyaltyRepository defines the persistence operations for loyalty points.
type LoyaltyRepository interface {
	// Add accumulates points onto the user's account, creating it if needed.
	Add(ctx context.Context, userID int64, points int64) error

	// GetByUser retrieves the user's loyalty account. Returns ErrNotFound
	// when the user has never earned points.
	GetByUser(ctx context.Context, userID int64) (*domain.LoyaltyAccount, error)
}
