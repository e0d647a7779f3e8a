package service

import (
	"context"

	"transit/internal/domain"
	"transit/internal/repository"
)

// FleetService handles vehicle and driver-profile administration.
type FleetService struct {
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
	userRepo    repository.UserRepository
}

// NewFleetService creates a new FleetService.
func NewFleetService(
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	userRepo repository.UserRepository,
) *FleetService {
	return &FleetService{
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		userRepo:    userRepo,
	}
}

// CreateVehicleRequest contains the parameters for registering a vehicle.
type CreateVehicleRequest struct {
	PlateNumber string
	Capacity    int
	Status      domain.VehicleStatus
}

// CreateVehicle registers a bus in the fleet. Unknown statuses default to
// active.
func (s *FleetService) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	status := req.Status
	if status != domain.VehicleStatusInactive {
		status = domain.VehicleStatusActive
	}

	vehicle := &domain.Vehicle{
		PlateNumber: req.PlateNumber,
		Capacity:    req.Capacity,
		Status:      status,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// GetVehicle retrieves a vehicle by id.
func (s *FleetService) GetVehicle(ctx context.Context, vehicleID int64) (*domain.Vehicle, error) {
	if vehicleID <= 0 {
		return nil, ErrInvalidVehicleID
	}
	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

// ListVehicles retrieves all vehicles.
func (s *FleetService) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetAll(ctx)
}

// CreateDriverRequest contains the parameters for creating a driver profile.
type CreateDriverRequest struct {
	UserID        int64
	LicenseNumber string
}

// CreateDriver creates the operational profile for a driver account. The
// backing user must exist and carry the driver role.
func (s *FleetService) CreateDriver(ctx context.Context, req CreateDriverRequest) (*domain.Driver, error) {
	if req.UserID <= 0 {
		return nil, ErrInvalidUserID
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleDriver {
		return nil, ErrInvalidDriverID
	}

	driver := &domain.Driver{
		UserID:        req.UserID,
		LicenseNumber: req.LicenseNumber,
		Status:        domain.DriverStatusActive,
	}
	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// ListDrivers retrieves all driver profiles.
func (s *FleetService) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	return s.driverRepo.GetAll(ctx)
}
