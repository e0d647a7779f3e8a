package repository

import (
	"context"

	"transit/internal/domain"
)

// RouteRepository defines the persistence operations for routes.
type RouteRepository interface {
	// Create adds a new route and sets its ID.
	Create(ctx context.Context, route *domain.Route) error

	// GetByID retrieves a route by ID.
	GetByID(ctx context.Context, id int64) (*domain.Route, error)

	// GetAll retrieves all routes.
	GetAll(ctx context.Context) ([]*domain.Route, error)

	// SetAssignedDriver updates the route's assigned driver.
	SetAssignedDriver(ctx context.Context, routeID, driverID int64) error

	// SetAssignedVehicle updates the route's assigned vehicle.
	SetAssignedVehicle(ctx context.Context, routeID, vehicleID int64) error
}

// RouteStopRepository defines the persistence operations for route stops.
type RouteStopRepository interface {
	// Create adds a new stop to a route and sets its ID.
	Create(ctx context.Context, stop *domain.RouteStop) error

	// GetByRoute retrieves all stops of a route ordered by stop_order.
	GetByRoute(ctx context.Context, routeID int64) ([]*domain.RouteStop, error)

	// GetPair retrieves the stops of a route matching the two ids, ordered
	// by stop_order ascending. Fewer than two rows come back when either id
	// does not belong to the route.
	GetPair(ctx context.Context, routeID, stopIDA, stopIDB int64) ([]*domain.RouteStop, error)

	// Delete removes a stop from a route.
	Delete(ctx context.Context, routeID, stopID int64) error
}
