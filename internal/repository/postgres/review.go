package postgres

import (
	"context"
	"database/sql"

	"transit/internal/domain"
	"transit/internal/repository"
)

// ReviewRepository is a PostgreSQL implementation of
// repository.ReviewRepository.
type ReviewRepository struct {
	q Querier
}

// NewReviewRepository creates a new PostgreSQL review repository.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{q: db}
}

// Create persists a new review and sets its ID.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (user_id, route_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.q.QueryRowContext(ctx, query,
		review.UserID,
		review.RouteID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	).Scan(&review.ID)
}

// GetByRoute retrieves the reviews of a route, newest first.
func (r *ReviewRepository) GetByRoute(ctx context.Context, routeID int64) ([]*domain.Review, error) {
	query := `
		SELECT id, user_id, route_id, rating, COALESCE(comment, ''), created_at
		FROM reviews WHERE route_id = $1 ORDER BY created_at DESC
	`
	rows, err := r.q.QueryContext(ctx, query, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.RouteID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, &review)
	}
	return reviews, rows.Err()
}

// Ensure ReviewRepository implements repository.ReviewRepository.
var _ repository.ReviewRepository = (*ReviewRepository)(nil)
