package service

import (
	"context"
	"database/sql"
	"log"

	"transit/internal/domain"
	"transit/internal/repository"
	"transit/internal/repository/postgres"
)

// AssignmentService keeps the driver, vehicle and route cross-references
// consistent when an administrator changes one link, and notifies the
// affected driver.
type AssignmentService struct {
	db                  *sql.DB
	vehicleRepo         repository.VehicleRepository
	driverRepo          repository.DriverRepository
	routeRepo           repository.RouteRepository
	userRepo            repository.UserRepository
	notificationService *NotificationService
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	db *sql.DB,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	routeRepo repository.RouteRepository,
	userRepo repository.UserRepository,
	notificationService *NotificationService,
) *AssignmentService {
	return &AssignmentService{
		db:                  db,
		vehicleRepo:         vehicleRepo,
		driverRepo:          driverRepo,
		routeRepo:           routeRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

// AssignDriverToVehicle binds a driver to a vehicle. When the vehicle
// already serves a route, the driver's assigned line follows it: the
// vehicle's route assignment is authoritative over the driver's. Both writes
// happen in one transaction; a vehicle updated without the driver's line
// following would be a correctness bug.
func (s *AssignmentService) AssignDriverToVehicle(ctx context.Context, vehicleID, driverID int64) (*domain.Vehicle, error) {
	if vehicleID <= 0 {
		return nil, ErrInvalidVehicleID
	}
	if driverID <= 0 {
		return nil, ErrInvalidDriverID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Create transaction-scoped repositories.
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)
	txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)

	if err = txVehicleRepo.SetAssignedDriver(ctx, vehicleID, driverID); err != nil {
		return nil, err
	}

	if vehicle.AssignedRouteID != 0 {
		if err = txDriverRepo.SetAssignedLine(ctx, driverID, vehicle.AssignedRouteID); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	vehicle.AssignedDriverID = driverID
	if vehicle.AssignedRouteID != 0 {
		driver.AssignedLineID = vehicle.AssignedRouteID
	}

	// Notify after commit, best effort.
	if s.notificationService != nil {
		if err := s.notificationService.NotifyVehicleAssigned(ctx, driver.UserID, vehicle); err != nil {
			log.Printf("assignment: vehicle notification for driver %d failed: %v", driverID, err)
		}
	}

	return vehicle, nil
}

// AssignDriverToRoute binds a driver to a route and notifies them.
func (s *AssignmentService) AssignDriverToRoute(ctx context.Context, routeID, driverID int64) (*domain.Route, error) {
	if routeID <= 0 {
		return nil, ErrInvalidRouteID
	}
	if driverID <= 0 {
		return nil, ErrInvalidDriverID
	}

	// The driver must exist together with its user account.
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, driver.UserID)
	if err != nil {
		return nil, err
	}

	route, err := s.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}

	if err := s.routeRepo.SetAssignedDriver(ctx, routeID, driverID); err != nil {
		return nil, err
	}
	route.AssignedDriverID = driverID

	if s.notificationService != nil {
		if err := s.notificationService.NotifyRouteAssigned(ctx, user.ID, route); err != nil {
			log.Printf("assignment: route notification for driver %d failed: %v", driverID, err)
		}
	}

	return route, nil
}

// AssignVehicleToRoute binds a vehicle to a route. Vehicle existence is
// checked before the route. No driver notification is sent here; the link
// connects equipment, not a person.
func (s *AssignmentService) AssignVehicleToRoute(ctx context.Context, routeID, vehicleID int64) (*domain.Route, error) {
	if routeID <= 0 {
		return nil, ErrInvalidRouteID
	}
	if vehicleID <= 0 {
		return nil, ErrInvalidVehicleID
	}

	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}

	route, err := s.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}

	if err := s.routeRepo.SetAssignedVehicle(ctx, routeID, vehicleID); err != nil {
		return nil, err
	}
	route.AssignedVehicleID = vehicleID

	return route, nil
}
