package postgres

import (
	"context"
	"database/sql"
	"errors"

	"transit/internal/domain"
	"transit/internal/repository"
)

// LoyaltyRepository is a PostgreSQL implementation of
// repository.LoyaltyRepository.
type LoyaltyRepository struct {
	q Querier
}

// NewLoyaltyRepository creates a new PostgreSQL loyalty repository.
func NewLoyaltyRepository(db *sql.DB) *LoyaltyRepository {
	return &LoyaltyRepository{q: db}
}

// Add accumulates points onto the user's account, creating it if needed.
func (r *LoyaltyRepository) Add(ctx context.Context, userID int64, points int64) error {
	query := `
		INSERT INTO loyalty_points (user_id, points, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET points = loyalty_points.points + EXCLUDED.points, updated_at = NOW()
	`
	_, err := r.q.ExecContext(ctx, query, userID, points)
	return err
}

// GetByUser retrieves the user's loyalty account.
func (r *LoyaltyRepository) GetByUser(ctx context.Context, userID int64) (*domain.LoyaltyAccount, error) {
	query := `SELECT id, user_id, points, updated_at FROM loyalty_points WHERE user_id = $1`

	var account domain.LoyaltyAccount
	err := r.q.QueryRowContext(ctx, query, userID).Scan(
		&account.ID,
		&account.UserID,
		&account.Points,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Ensure LoyaltyRepository implements repository.LoyaltyRepository.
var _ repository.LoyaltyRepository = (*LoyaltyRepository)(nil)
