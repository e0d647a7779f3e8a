package repository

import (
	"context"

	"transit/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create adds a new vehicle and sets its ID.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)

	// GetAll retrieves all vehicles.
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)

	// SetAssignedDriver updates the vehicle's assigned driver.
	SetAssignedDriver(ctx context.Context, vehicleID, driverID int64) error
}
