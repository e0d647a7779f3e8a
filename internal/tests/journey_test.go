package tests

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"transit/internal/domain"
	"transit/internal/service"
)

// ──────────────────────────────────────────────
// 5. JOURNEY START AND GPS BROADCAST
// ──────────────────────────────────────────────

func newJourneyFixture() (*service.TicketService, *service.TrackingService, *ticketFixture, *MockLocationStore) {
	f := newTicketFixture()
	locationStore := NewMockLocationStore()
	notificationService := service.NewNotificationService(f.notificationRepo, f.userRepo)
	trackingService := service.NewTrackingService(locationStore, f.ticketRepo, notificationService)
	return f.ticketService, trackingService, f, locationStore
}

// seedPaidTickets creates n paid pending tickets on the vehicle, each bought
// by its own user.
func seedPaidTickets(f *ticketFixture, vehicleID int64, n int) {
	for i := 1; i <= n; i++ {
		userID := int64(100 + i)
		f.userRepo.AddUser(&domain.User{ID: userID, Name: fmt.Sprintf("Passenger %d", i)})
		ticket := pendingTicket(int64(i), userID, 3000)
		ticket.VehicleID = vehicleID
		ticket.PaymentStatus = domain.PaymentStatusCompleted
		f.ticketRepo.AddTicket(ticket)
	}
}

func TestStartJourney_TransitionsPaidTicketsAndNotifiesAll(t *testing.T) {
	t.Parallel()

	ticketService, _, f, _ := newJourneyFixture()
	seedPaidTickets(f, 7, 3)

	// One unpaid ticket on the same vehicle must be left alone.
	unpaid := pendingTicket(50, 200, 3000)
	unpaid.VehicleID = 7
	f.ticketRepo.AddTicket(unpaid)

	result, err := ticketService.StartJourney(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TicketsUpdated != 3 {
		t.Errorf("expected 3 tickets updated, got %d", result.TicketsUpdated)
	}
	if result.PassengersNotified != 3 {
		t.Errorf("expected 3 passengers notified, got %d", result.PassengersNotified)
	}

	if f.ticketRepo.GetTicket(50).JourneyStatus != domain.JourneyStatusPending {
		t.Error("unpaid ticket must stay pending")
	}
	for i := int64(1); i <= 3; i++ {
		if f.ticketRepo.GetTicket(i).JourneyStatus != domain.JourneyStatusInProgress {
			t.Errorf("ticket %d should be in progress", i)
		}
	}
}

func TestStartJourney_OneFailedNotificationDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	ticketService, _, f, _ := newJourneyFixture()
	seedPaidTickets(f, 7, 3)

	// Passenger 102's inbox write fails; the other two still go through.
	f.notificationRepo.FailForUser = 102

	result, err := ticketService.StartJourney(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TicketsUpdated != 3 {
		t.Errorf("expected 3 tickets updated, got %d", result.TicketsUpdated)
	}
	if result.PassengersNotified != 2 {
		t.Errorf("expected 2 passengers notified, got %d", result.PassengersNotified)
	}
}

func TestStartJourney_NoEligibleTickets(t *testing.T) {
	t.Parallel()

	ticketService, _, _, _ := newJourneyFixture()

	result, err := ticketService.StartJourney(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TicketsUpdated != 0 || result.PassengersNotified != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestUpdateLocation_StoresPositionAndBroadcasts(t *testing.T) {
	t.Parallel()

	_, trackingService, f, locationStore := newJourneyFixture()

	// Two passengers in progress on vehicle 7, one still pending boarding.
	seedPaidTickets(f, 7, 2)
	for i := int64(1); i <= 2; i++ {
		f.ticketRepo.GetTicket(i).JourneyStatus = domain.JourneyStatusInProgress
	}

	result, err := trackingService.UpdateLocation(context.Background(), service.UpdateLocationRequest{
		VehicleID: 7,
		Lat:       -1.9441,
		Lng:       30.0619,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loc, ok := locationStore.GetLocation(7)
	if !ok {
		t.Fatal("position not stored")
	}
	if loc.Lat != -1.9441 || loc.Lng != 30.0619 {
		t.Errorf("wrong stored position: %+v", loc)
	}

	if result.PassengersNotified != 2 {
		t.Errorf("expected 2 passengers notified, got %d", result.PassengersNotified)
	}
}

func TestUpdateLocation_InvalidCoordinatesRejected(t *testing.T) {
	t.Parallel()

	_, trackingService, _, locationStore := newJourneyFixture()

	cases := []struct {
		lat, lng float64
	}{
		{-91, 30},
		{91, 30},
		{0, -181},
		{0, 181},
	}
	for _, tc := range cases {
		if _, err := trackingService.UpdateLocation(context.Background(), service.UpdateLocationRequest{
			VehicleID: 7,
			Lat:       tc.lat,
			Lng:       tc.lng,
		}); !errors.Is(err, service.ErrInvalidLocation) {
			t.Errorf("(%v, %v): expected ErrInvalidLocation, got %v", tc.lat, tc.lng, err)
		}
	}

	if locationStore.UpdateCallCount != 0 {
		t.Error("invalid coordinates must never reach the store")
	}
}

func TestUpdateLocation_TicketLookupFailureDoesNotLosePosition(t *testing.T) {
	t.Parallel()

	_, trackingService, f, locationStore := newJourneyFixture()
	f.ticketRepo.InProgressByVehicleErr = errors.New("database down")

	result, err := trackingService.UpdateLocation(context.Background(), service.UpdateLocationRequest{
		VehicleID: 7,
		Lat:       -1.9441,
		Lng:       30.0619,
	})
	if err != nil {
		t.Fatalf("position write succeeded, broadcast failure must not surface: %v", err)
	}

	if _, ok := locationStore.GetLocation(7); !ok {
		t.Error("position should be stored despite the broadcast failure")
	}
	if result.PassengersNotified != 0 {
		t.Errorf("expected 0 notified, got %d", result.PassengersNotified)
	}
}
