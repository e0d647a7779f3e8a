package redis

import (
	"context"
	"time"
)

// LocationStoreInterface defines the interface for vehicle location
// operations.
type LocationStoreInterface interface {
	UpdateLocation(ctx context.Context, vehicleID int64, lat, lng float64) error
	FindNearbyVehicles(ctx context.Context, lat, lng, radiusKm float64) ([]VehicleLocation, error)
	RemoveLocation(ctx context.Context, vehicleID int64) error
}

// LockStoreInterface defines the interface for payment locking.
type LockStoreInterface interface {
	AcquirePaymentLock(ctx context.Context, ticketID int64, ttl time.Duration) (bool, error)
	ReleasePaymentLock(ctx context.Context, ticketID int64) error
}

// RouteCacheInterface defines the interface for the route cache.
type RouteCacheInterface interface {
	GetRoute(ctx context.Context, routeID int64) (*CachedRoute, error)
	SetRoute(ctx context.Context, route *CachedRoute) error
	InvalidateRoute(ctx context.Context, routeID int64) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ RouteCacheInterface    = (*RouteCache)(nil)
)
