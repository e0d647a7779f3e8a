package postgres

import (
	"context"
	"database/sql"
	"errors"

	"transit/internal/domain"
	"transit/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of
// repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

const vehicleColumns = `id, plate_number, capacity, status,
	COALESCE(assigned_driver_id, 0), COALESCE(assigned_route_id, 0)`

// Create adds a new vehicle and sets its ID.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (plate_number, capacity, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.q.QueryRowContext(ctx, query,
		vehicle.PlateNumber,
		vehicle.Capacity,
		vehicle.Status,
	).Scan(&vehicle.ID)
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	var vehicle domain.Vehicle
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.PlateNumber,
		&vehicle.Capacity,
		&vehicle.Status,
		&vehicle.AssignedDriverID,
		&vehicle.AssignedRouteID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// GetAll retrieves all vehicles.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.PlateNumber,
			&vehicle.Capacity,
			&vehicle.Status,
			&vehicle.AssignedDriverID,
			&vehicle.AssignedRouteID,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}
	return vehicles, rows.Err()
}

// SetAssignedDriver updates the vehicle's assigned driver.
func (r *VehicleRepository) SetAssignedDriver(ctx context.Context, vehicleID, driverID int64) error {
	query := `UPDATE vehicles SET assigned_driver_id = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, driverID, vehicleID)
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

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)
