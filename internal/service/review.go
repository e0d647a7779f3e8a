package service

import (
	"context"
	"time"

	"transit/internal/domain"
	"transit/internal/repository"
)

// ReviewService handles passenger reviews of routes.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	routeRepo  repository.RouteRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, routeRepo repository.RouteRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		routeRepo:  routeRepo,
	}
}

// CreateReviewRequest contains the parameters for posting a review.
type CreateReviewRequest struct {
	UserID  int64
	RouteID int64
	Rating  int
	Comment string
}

// Create validates and stores a review.
func (s *ReviewService) Create(ctx context.Context, req CreateReviewRequest) (*domain.Review, error) {
	if req.UserID <= 0 {
		return nil, ErrInvalidUserID
	}
	if req.RouteID <= 0 {
		return nil, ErrInvalidRouteID
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.routeRepo.GetByID(ctx, req.RouteID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		UserID:    req.UserID,
		RouteID:   req.RouteID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByRoute retrieves the reviews of a route.
func (s *ReviewService) ListByRoute(ctx context.Context, routeID int64) ([]*domain.Review, error) {
	if routeID <= 0 {
		return nil, ErrInvalidRouteID
	}
	return s.reviewRepo.GetByRoute(ctx, routeID)
}
