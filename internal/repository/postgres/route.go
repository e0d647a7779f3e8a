package postgres

import (
	"context"
	"database/sql"
	"errors"

	"transit/internal/domain"
	"transit/internal/repository"
)

// RouteRepository is a PostgreSQL implementation of
// repository.RouteRepository.
type RouteRepository struct {
	q Querier
}

// NewRouteRepository creates a new PostgreSQL route repository.
func NewRouteRepository(db *sql.DB) *RouteRepository {
	return &RouteRepository{q: db}
}

// NewRouteRepositoryWithTx creates a route repository using a transaction.
func NewRouteRepositoryWithTx(tx *sql.Tx) *RouteRepository {
	return &RouteRepository{q: tx}
}

const routeColumns = `id, name, start_location, end_location, base_fare,
	COALESCE(company_id, 0), COALESCE(assigned_vehicle_id, 0),
	COALESCE(assigned_driver_id, 0), scheduled_start`

// Create adds a new route and sets its ID.
func (r *RouteRepository) Create(ctx context.Context, route *domain.Route) error {
	query := `
		INSERT INTO routes (name, start_location, end_location, base_fare, company_id, scheduled_start)
		VALUES ($1, $2, $3, $4, NULLIF($5, 0), $6)
		RETURNING id
	`
	var scheduled sql.NullTime
	if !route.ScheduledStart.IsZero() {
		scheduled = sql.NullTime{Time: route.ScheduledStart, Valid: true}
	}
	return r.q.QueryRowContext(ctx, query,
		route.Name,
		route.StartLocation,
		route.EndLocation,
		route.BaseFare,
		route.CompanyID,
		scheduled,
	).Scan(&route.ID)
}

// GetByID retrieves a route by ID.
func (r *RouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE id = $1`

	route, err := scanRoute(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return route, nil
}

// GetAll retrieves all routes.
func (r *RouteRepository) GetAll(ctx context.Context) ([]*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []*domain.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

// SetAssignedDriver updates the route's assigned driver.
func (r *RouteRepository) SetAssignedDriver(ctx context.Context, routeID, driverID int64) error {
	query := `UPDATE routes SET assigned_driver_id = $1 WHERE id = $2`
	return r.execOne(ctx, query, driverID, routeID)
}

// SetAssignedVehicle updates the route's assigned vehicle.
func (r *RouteRepository) SetAssignedVehicle(ctx context.Context, routeID, vehicleID int64) error {
	query := `UPDATE routes SET assigned_vehicle_id = $1 WHERE id = $2`
	return r.execOne(ctx, query, vehicleID, routeID)
}

func (r *RouteRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (*domain.Route, error) {
	var route domain.Route
	var scheduled sql.NullTime
	err := row.Scan(
		&route.ID,
		&route.Name,
		&route.StartLocation,
		&route.EndLocation,
		&route.BaseFare,
		&route.CompanyID,
		&route.AssignedVehicleID,
		&route.AssignedDriverID,
		&scheduled,
	)
	if err != nil {
		return nil, err
	}
	if scheduled.Valid {
		route.ScheduledStart = scheduled.Time
	}
	return &route, nil
}

// Ensure RouteRepository implements repository.RouteRepository.
var _ repository.RouteRepository = (*RouteRepository)(nil)
