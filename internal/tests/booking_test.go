package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"transit/internal/domain"
	"transit/internal/service"
)

// ──────────────────────────────────────────────
// 3. BOOKING (INSERT + TOKEN IN ONE TRANSACTION)
// ──────────────────────────────────────────────

func newBookingFixture(t *testing.T) (*service.TicketService, sqlmock.Sqlmock, *MockNotificationRepository) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	routeRepo := NewMockRouteRepository()
	routeRepo.AddRoute(&domain.Route{
		ID:            1,
		Name:          "Kigali - Huye",
		StartLocation: "Kigali",
		EndLocation:   "Huye",
		BaseFare:      3000,
	})
	stopRepo := NewMockRouteStopRepository()
	fareService := service.NewFareService(routeRepo, stopRepo, nil)

	userRepo := NewMockUserRepository()
	notificationRepo := NewMockNotificationRepository()
	notificationService := service.NewNotificationService(notificationRepo, userRepo)

	ticketService := service.NewTicketService(db, NewMockTicketRepository(), fareService, notificationService, nil, NewMockMomoProvider(), nil)
	return ticketService, mock, notificationRepo
}

func bookRequest() service.BookTicketRequest {
	return service.BookTicketRequest{
		UserID:     5,
		RouteID:    1,
		VehicleID:  7,
		TravelDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		SeatNumber: 4,
	}
}

func TestBook_InsertAndTokenShareOneTransaction(t *testing.T) {
	t.Parallel()

	ticketService, mock, notificationRepo := newBookingFixture(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tickets").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectExec("UPDATE tickets SET qr_code").
		WithArgs(sqlmock.AnyArg(), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ticket, err := ticketService.Book(context.Background(), bookRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ticket.ID != 42 {
		t.Errorf("expected generated id 42, got %d", ticket.ID)
	}
	if ticket.AmountPaid != 3000 {
		t.Errorf("expected resolved fare 3000, got %.0f", ticket.AmountPaid)
	}
	if ticket.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("new ticket must be pending payment, got %s", ticket.PaymentStatus)
	}
	if len(ticket.QRCode) != 32 {
		t.Errorf("expected a 32-character boarding token, got %q", ticket.QRCode)
	}
	if ticket.QRCode != domain.TicketQRCode(42, 7, 1, ticket.CreatedAt) {
		t.Error("boarding token must derive from the generated ticket id")
	}

	// Booking notification goes to the buyer.
	if notificationRepo.CountForUser(5) != 1 {
		t.Error("expected a booking notification for the buyer")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestBook_TokenWriteFailureRollsBackInsert(t *testing.T) {
	t.Parallel()

	ticketService, mock, notificationRepo := newBookingFixture(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tickets").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectExec("UPDATE tickets SET qr_code").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if _, err := ticketService.Book(context.Background(), bookRequest()); err == nil {
		t.Fatal("expected booking to fail")
	}

	// No half-booked ticket, no notification.
	if notificationRepo.CountAll() != 0 {
		t.Error("failed booking must not notify anybody")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestBook_ValidationRejectsBadRequests(t *testing.T) {
	t.Parallel()

	ticketService, _, _ := newBookingFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*service.BookTicketRequest)
		wantErr error
	}{
		{"missing user", func(r *service.BookTicketRequest) { r.UserID = 0 }, service.ErrInvalidUserID},
		{"missing route", func(r *service.BookTicketRequest) { r.RouteID = 0 }, service.ErrInvalidRouteID},
		{"bad seat", func(r *service.BookTicketRequest) { r.SeatNumber = 0 }, service.ErrInvalidSeatNumber},
		{"no travel date", func(r *service.BookTicketRequest) { r.TravelDate = time.Time{} }, service.ErrInvalidTravelDate},
	}

	for _, tc := range cases {
		req := bookRequest()
		tc.mutate(&req)
		if _, err := ticketService.Book(ctx, req); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestBook_UnknownRouteFails(t *testing.T) {
	t.Parallel()

	ticketService, _, _ := newBookingFixture(t)

	req := bookRequest()
	req.RouteID = 99
	if _, err := ticketService.Book(context.Background(), req); err == nil {
		t.Fatal("expected an error for an unknown route")
	}
}
