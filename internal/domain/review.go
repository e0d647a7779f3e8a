package domain

import "time"

// Review is a passenger rating of a route, 1 to 5 stars.
type Review struct {
	ID        int64
	UserID    int64
	RouteID   int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}
