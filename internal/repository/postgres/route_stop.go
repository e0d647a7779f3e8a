package postgres

import (
	"context"
	"database/sql"

	"transit/internal/domain"
	"transit/internal/repository"
)

// RouteStopRepository is a PostgreSQL implementation of
// repository.RouteStopRepository.
type RouteStopRepository struct {
	q Querier
}

// NewRouteStopRepository creates a new PostgreSQL route stop repository.
func NewRouteStopRepository(db *sql.DB) *RouteStopRepository {
	return &RouteStopRepository{q: db}
}

const stopColumns = `id, route_id, stop_name, stop_order, distance_from_start_km, fare_from_start`

// Create adds a new stop to a route and sets its ID.
func (r *RouteStopRepository) Create(ctx context.Context, stop *domain.RouteStop) error {
	query := `
		INSERT INTO route_stops (route_id, stop_name, stop_order, distance_from_start_km, fare_from_start)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.q.QueryRowContext(ctx, query,
		stop.RouteID,
		stop.StopName,
		stop.StopOrder,
		stop.DistanceFromStartKm,
		stop.FareFromStart,
	).Scan(&stop.ID)
}

// GetByRoute retrieves all stops of a route ordered by stop_order.
func (r *RouteStopRepository) GetByRoute(ctx context.Context, routeID int64) ([]*domain.RouteStop, error) {
	query := `SELECT ` + stopColumns + ` FROM route_stops WHERE route_id = $1 ORDER BY stop_order`
	return r.queryStops(ctx, query, routeID)
}

// GetPair retrieves the stops of a route matching the two ids, ordered by
// stop_order ascending.
func (r *RouteStopRepository) GetPair(ctx context.Context, routeID, stopIDA, stopIDB int64) ([]*domain.RouteStop, error) {
	query := `
		SELECT ` + stopColumns + `
		FROM route_stops
		WHERE route_id = $1 AND id IN ($2, $3)
		ORDER BY stop_order
	`
	return r.queryStops(ctx, query, routeID, stopIDA, stopIDB)
}

// Delete removes a stop from a route.
func (r *RouteStopRepository) Delete(ctx context.Context, routeID, stopID int64) error {
	query := `DELETE FROM route_stops WHERE route_id = $1 AND id = $2`
	result, err := r.q.ExecContext(ctx, query, routeID, stopID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RouteStopRepository) queryStops(ctx context.Context, query string, args ...any) ([]*domain.RouteStop, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []*domain.RouteStop
	for rows.Next() {
		var stop domain.RouteStop
		if err := rows.Scan(
			&stop.ID,
			&stop.RouteID,
			&stop.StopName,
			&stop.StopOrder,
			&stop.DistanceFromStartKm,
			&stop.FareFromStart,
		); err != nil {
			return nil, err
		}
		stops = append(stops, &stop)
	}
	return stops, rows.Err()
}

// Ensure RouteStopRepository implements repository.RouteStopRepository.
var _ repository.RouteStopRepository = (*RouteStopRepository)(nil)
