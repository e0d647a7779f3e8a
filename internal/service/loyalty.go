package service

import (
	"context"

	"transit/internal/domain"
	"transit/internal/repository"
)

// pointsPerCurrencyUnit is how much spend earns one loyalty point.
const pointsPerCurrencyUnit = 100.0

// LoyaltyService awards points for completed payments.
type LoyaltyService struct {
	loyaltyRepo repository.LoyaltyRepository
}

// NewLoyaltyService creates a new LoyaltyService.
func NewLoyaltyService(loyaltyRepo repository.LoyaltyRepository) *LoyaltyService {
	return &LoyaltyService{loyaltyRepo: loyaltyRepo}
}

// AwardForPayment credits the buyer with points proportional to the amount
// paid. Small fares below one point earn nothing.
func (s *LoyaltyService) AwardForPayment(ctx context.Context, userID int64, amount float64) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	points := int64(amount / pointsPerCurrencyUnit)
	if points <= 0 {
		return nil
	}
	return s.loyaltyRepo.Add(ctx, userID, points)
}

// Balance retrieves a user's loyalty account. Users who never earned points
// get an empty account rather than an error.
func (s *LoyaltyService) Balance(ctx context.Context, userID int64) (*domain.LoyaltyAccount, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	account, err := s.loyaltyRepo.GetByUser(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return &domain.LoyaltyAccount{UserID: userID}, nil
		}
		return nil, err
	}
	return account, nil
}
