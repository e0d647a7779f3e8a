package domain

import "time"

// LoyaltyAccount accumulates points awarded on completed payments.
type LoyaltyAccount struct {
	ID        int64
	UserID    int64
	Points    int64
	UpdatedAt time.Time
}
