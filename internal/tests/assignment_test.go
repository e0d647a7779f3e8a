package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"transit/internal/domain"
	"transit/internal/repository"
	"transit/internal/service"
)

// ──────────────────────────────────────────────
// 4. ASSIGNMENT PROPAGATION
// ──────────────────────────────────────────────

type assignmentFixture struct {
	assignmentService *service.AssignmentService
	mock              sqlmock.Sqlmock
	vehicleRepo       *MockVehicleRepository
	driverRepo        *MockDriverRepository
	routeRepo         *MockRouteRepository
	userRepo          *MockUserRepository
	notificationRepo  *MockNotificationRepository
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	routeRepo := NewMockRouteRepository()
	userRepo := NewMockUserRepository()
	notificationRepo := NewMockNotificationRepository()
	notificationService := service.NewNotificationService(notificationRepo, userRepo)

	return &assignmentFixture{
		assignmentService: service.NewAssignmentService(db, vehicleRepo, driverRepo, routeRepo, userRepo, notificationService),
		mock:              mock,
		vehicleRepo:       vehicleRepo,
		driverRepo:        driverRepo,
		routeRepo:         routeRepo,
		userRepo:          userRepo,
		notificationRepo:  notificationRepo,
	}
}

func TestAssignDriverToVehicle_PropagatesRouteToDriver(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.userRepo.AddUser(&domain.User{ID: 20, Name: "Driver Dan", Role: domain.RoleDriver})
	f.driverRepo.AddDriver(&domain.Driver{ID: 3, UserID: 20})
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: 7, PlateNumber: "RAD 123 A", AssignedRouteID: 9})

	// Vehicle serves route 9, so the driver's line must follow in the same
	// transaction.
	f.mock.ExpectBegin()
	f.mock.ExpectExec("UPDATE vehicles SET assigned_driver_id").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec("UPDATE drivers SET assigned_line_id").
		WithArgs(int64(9), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	vehicle, err := f.assignmentService.AssignDriverToVehicle(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vehicle.AssignedDriverID != 3 {
		t.Errorf("expected driver 3 on vehicle, got %d", vehicle.AssignedDriverID)
	}

	// The driver hears about the new vehicle.
	if f.notificationRepo.CountForUser(20) != 1 {
		t.Error("expected a notification for the driver's user account")
	}

	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAssignDriverToVehicle_NoRouteSkipsDriverLineUpdate(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.userRepo.AddUser(&domain.User{ID: 20, Role: domain.RoleDriver})
	f.driverRepo.AddDriver(&domain.Driver{ID: 3, UserID: 20})
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: 7, PlateNumber: "RAD 123 A"})

	f.mock.ExpectBegin()
	f.mock.ExpectExec("UPDATE vehicles SET assigned_driver_id").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	if _, err := f.assignmentService.AssignDriverToVehicle(context.Background(), 7, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAssignDriverToVehicle_PropagationFailureRollsBackBothWrites(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.userRepo.AddUser(&domain.User{ID: 20, Role: domain.RoleDriver})
	f.driverRepo.AddDriver(&domain.Driver{ID: 3, UserID: 20})
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: 7, AssignedRouteID: 9})

	f.mock.ExpectBegin()
	f.mock.ExpectExec("UPDATE vehicles SET assigned_driver_id").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec("UPDATE drivers SET assigned_line_id").
		WillReturnError(errors.New("deadlock detected"))
	f.mock.ExpectRollback()

	if _, err := f.assignmentService.AssignDriverToVehicle(context.Background(), 7, 3); err == nil {
		t.Fatal("expected the assignment to fail")
	}

	// A failed assignment must not notify.
	if f.notificationRepo.CountAll() != 0 {
		t.Error("no notification on a rolled-back assignment")
	}

	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAssignDriverToVehicle_UnknownVehicleRejectedBeforeTx(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.driverRepo.AddDriver(&domain.Driver{ID: 3, UserID: 20})

	if _, err := f.assignmentService.AssignDriverToVehicle(context.Background(), 99, 3); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// No transaction was ever opened.
	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL activity: %v", err)
	}
}

func TestAssignDriverToRoute_UpdatesAndNotifies(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.userRepo.AddUser(&domain.User{ID: 20, Name: "Driver Dan", Role: domain.RoleDriver})
	f.driverRepo.AddDriver(&domain.Driver{ID: 3, UserID: 20})
	f.routeRepo.AddRoute(&domain.Route{ID: 9, Name: "Kigali - Huye", StartLocation: "Kigali", EndLocation: "Huye"})

	route, err := f.assignmentService.AssignDriverToRoute(context.Background(), 9, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if route.AssignedDriverID != 3 {
		t.Errorf("expected driver 3 on route, got %d", route.AssignedDriverID)
	}
	if f.routeRepo.GetRoute(9).AssignedDriverID != 3 {
		t.Error("driver assignment not persisted")
	}
	if f.notificationRepo.CountForUser(20) != 1 {
		t.Error("expected a route notification for the driver")
	}
}

func TestAssignDriverToRoute_MissingDriverProfileRejected(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.routeRepo.AddRoute(&domain.Route{ID: 9})

	if _, err := f.assignmentService.AssignDriverToRoute(context.Background(), 9, 3); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssignVehicleToRoute_UpdatesWithoutNotification(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.vehicleRepo.AddVehicle(&domain.Vehicle{ID: 7})
	f.routeRepo.AddRoute(&domain.Route{ID: 9})

	route, err := f.assignmentService.AssignVehicleToRoute(context.Background(), 9, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if route.AssignedVehicleID != 7 {
		t.Errorf("expected vehicle 7 on route, got %d", route.AssignedVehicleID)
	}
	if f.notificationRepo.CountAll() != 0 {
		t.Error("vehicle-to-route links do not notify anybody")
	}
}

func TestAssignVehicleToRoute_UnknownVehicleCheckedFirst(t *testing.T) {
	t.Parallel()

	f := newAssignmentFixture(t)
	f.routeRepo.AddRoute(&domain.Route{ID: 9})

	if _, err := f.assignmentService.AssignVehicleToRoute(context.Background(), 9, 99); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for the vehicle, got %v", err)
	}

	if f.routeRepo.GetRoute(9).AssignedVehicleID != 0 {
		t.Error("route must stay untouched when the vehicle is unknown")
	}
}
