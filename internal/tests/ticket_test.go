package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"transit/internal/domain"
	"transit/internal/service"
)

// ──────────────────────────────────────────────
// 2. TICKET PAYMENT AND BOARDING
// ──────────────────────────────────────────────

type ticketFixture struct {
	ticketService    *service.TicketService
	ticketRepo       *MockTicketRepository
	userRepo         *MockUserRepository
	notificationRepo *MockNotificationRepository
	loyaltyRepo      *MockLoyaltyRepository
	momo             *MockMomoProvider
	locks            *MockLockStore
}

// newTicketFixture wires a TicketService over mocks. Book is exercised in
// booking_test.go against a SQL mock; everything here goes through the
// repository interfaces only.
func newTicketFixture() *ticketFixture {
	ticketRepo := NewMockTicketRepository()
	userRepo := NewMockUserRepository()
	notificationRepo := NewMockNotificationRepository()
	loyaltyRepo := NewMockLoyaltyRepository()
	momo := NewMockMomoProvider()
	locks := NewMockLockStore()

	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	loyaltyService := service.NewLoyaltyService(loyaltyRepo)
	ticketService := service.NewTicketService(nil, ticketRepo, nil, notificationService, loyaltyService, momo, locks)

	return &ticketFixture{
		ticketService:    ticketService,
		ticketRepo:       ticketRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		loyaltyRepo:      loyaltyRepo,
		momo:             momo,
		locks:            locks,
	}
}

func pendingTicket(id, userID int64, amount float64) *domain.Ticket {
	return &domain.Ticket{
		ID:             id,
		UserID:         userID,
		RouteID:        1,
		VehicleID:      7,
		StartLocation:  "Kigali",
		EndLocation:    "Huye",
		TravelDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		SeatNumber:     4,
		AmountPaid:     amount,
		PaymentStatus:  domain.PaymentStatusPending,
		BoardingStatus: domain.BoardingStatusPending,
		JourneyStatus:  domain.JourneyStatusPending,
		CreatedAt:      time.Now(),
	}
}

func TestPay_CompletesPendingTicket(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	f.userRepo.AddUser(&domain.User{ID: 5, Name: "Alice", Email: "alice@example.com"})
	f.ticketRepo.AddTicket(pendingTicket(1, 5, 3000))

	ticket, err := f.ticketService.Pay(context.Background(), service.PayTicketRequest{
		TicketID: 1,
		Phone:    "0788123456",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ticket.PaymentStatus != domain.PaymentStatusCompleted {
		t.Errorf("expected payment completed, got %s", ticket.PaymentStatus)
	}
	if ticket.PaymentMethod != domain.PaymentMethodMobileMoney {
		t.Errorf("expected mobile_money default, got %s", ticket.PaymentMethod)
	}
	if ticket.TransactionID == "" {
		t.Error("expected a transaction reference")
	}

	stored := f.ticketRepo.GetTicket(1)
	if stored.PaymentStatus != domain.PaymentStatusCompleted {
		t.Error("payment status not persisted")
	}
	if stored.AmountPaid != 3000 {
		t.Errorf("charged amount must stay the booked fare, got %.0f", stored.AmountPaid)
	}
}

func TestPay_InvalidPhoneRejected(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	f.ticketRepo.AddTicket(pendingTicket(1, 5, 3000))

	cases := []string{"", "123", "0781234567x", "0750000000", "250788123456"}
	for _, phone := range cases {
		if _, err := f.ticketService.Pay(context.Background(), service.PayTicketRequest{
			TicketID: 1,
			Phone:    phone,
		}); !errors.Is(err, service.ErrInvalidPhoneFormat) {
			t.Errorf("phone %q: expected ErrInvalidPhoneFormat, got %v", phone, err)
		}
	}

	if f.momo.ChargeCallCount != 0 {
		t.Error("provider must not be called for an invalid phone")
	}
}

func TestPay_AlreadyPaidTicketRejected(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := pendingTicket(1, 5, 3000)
	ticket.PaymentStatus = domain.PaymentStatusCompleted
	ticket.TransactionID = "MM-original"
	f.ticketRepo.AddTicket(ticket)

	if _, err := f.ticketService.Pay(context.Background(), service.PayTicketRequest{
		TicketID: 1,
		Phone:    "0788123456",
	}); !errors.Is(err, service.ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}

	if f.momo.ChargeCallCount != 0 {
		t.Error("a paid ticket must never be charged again")
	}
	if f.ticketRepo.GetTicket(1).TransactionID != "MM-original" {
		t.Error("original transaction reference must be preserved")
	}
}

func TestPay_ConcurrentAttemptBlockedByLock(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	f.ticketRepo.AddTicket(pendingTicket(1, 5, 3000))
	f.locks.Hold(1)

	if _, err := f.ticketService.Pay(context.Background(), service.PayTicketRequest{
		TicketID: 1,
		Phone:    "0788123456",
	}); !errors.Is(err, service.ErrPaymentInFlight) {
		t.Fatalf("expected ErrPaymentInFlight, got %v", err)
	}

	if f.momo.ChargeCallCount != 0 {
		t.Error("provider must not be called while the lock is held")
	}
}

func TestPay_ProviderDeclineSurfacesAndLeavesTicketPending(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	f.ticketRepo.AddTicket(pendingTicket(1, 5, 3000))
	f.momo.ChargeError = errors.New("insufficient funds")

	if _, err := f.ticketService.Pay(context.Background(), service.PayTicketRequest{
		TicketID: 1,
		Phone:    "0788123456",
	}); !errors.Is(err, service.ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined, got %v", err)
	}

	if f.ticketRepo.GetTicket(1).PaymentStatus != domain.PaymentStatusPending {
		t.Error("declined ticket must stay pending")
	}
	if f.loyaltyRepo.Points(5) != 0 {
		t.Error("no points for a declined payment")
	}
}

func TestPay_AwardsLoyaltyPoints(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	f.userRepo.AddUser(&domain.User{ID: 5, Name: "Alice"})
	f.ticketRepo.AddTicket(pendingTicket(1, 5, 3000))

	if _, err := f.ticketService.Pay(context.Background(), service.PayTicketRequest{
		TicketID: 1,
		Phone:    "0788123456",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3000 spent at 100 per point.
	if got := f.loyaltyRepo.Points(5); got != 30 {
		t.Errorf("expected 30 points, got %d", got)
	}
}

func TestPay_LoyaltyFailureDoesNotFailPayment(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	f.userRepo.AddUser(&domain.User{ID: 5, Name: "Alice"})
	f.ticketRepo.AddTicket(pendingTicket(1, 5, 3000))
	f.loyaltyRepo.AddError = errors.New("loyalty store down")

	ticket, err := f.ticketService.Pay(context.Background(), service.PayTicketRequest{
		TicketID: 1,
		Phone:    "0788123456",
	})
	if err != nil {
		t.Fatalf("payment must stand despite loyalty failure: %v", err)
	}
	if ticket.PaymentStatus != domain.PaymentStatusCompleted {
		t.Error("expected payment completed")
	}
}

func TestPay_BuyerAndTravelerBothNotified(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	// Buyer account 5, traveler is a different registered user reachable by
	// phone.
	f.userRepo.AddUser(&domain.User{ID: 5, Name: "Buyer", Email: "buyer@example.com"})
	f.userRepo.AddUser(&domain.User{ID: 6, Name: "Traveler", Phone: "0722000111"})

	ticket := pendingTicket(1, 5, 3000)
	ticket.PassengerName = "Traveler"
	ticket.PassengerPhone = "0722000111"
	f.ticketRepo.AddTicket(ticket)

	if _, err := f.ticketService.Pay(context.Background(), service.PayTicketRequest{
		TicketID: 1,
		Phone:    "0788123456",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.notificationRepo.CountForUser(6) != 1 {
		t.Error("traveler should be notified")
	}
	if f.notificationRepo.CountForUser(5) != 1 {
		t.Error("buyer should be notified when distinct from the traveler")
	}
}

// ──────────────────────────────────────────────
// BOARDING TOKEN
// ──────────────────────────────────────────────

func TestQRCode_DeterministicAndFixedLength(t *testing.T) {
	t.Parallel()

	bookedAt := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)

	a := domain.TicketQRCode(1, 7, 3, bookedAt)
	b := domain.TicketQRCode(1, 7, 3, bookedAt)
	if a != b {
		t.Error("token must be deterministic for identical inputs")
	}
	if len(a) != 32 {
		t.Errorf("expected 32-character token, got %d", len(a))
	}

	if a == domain.TicketQRCode(2, 7, 3, bookedAt) {
		t.Error("different tickets must get different tokens")
	}
	if a == domain.TicketQRCode(1, 7, 3, bookedAt.Add(time.Second)) {
		t.Error("different booking times must get different tokens")
	}
}

func TestScan_PaidTicketOnItsVehicleValidates(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := pendingTicket(1, 5, 3000)
	ticket.PaymentStatus = domain.PaymentStatusCompleted
	ticket.QRCode = domain.TicketQRCode(1, 7, 1, ticket.CreatedAt)
	f.ticketRepo.AddTicket(ticket)

	got, err := f.ticketService.ScanAndValidate(context.Background(), ticket.QRCode, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1 {
		t.Errorf("expected ticket 1, got %d", got.ID)
	}
}

func TestScan_UnpaidTicketRejected(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := pendingTicket(1, 5, 3000)
	ticket.QRCode = "UNPAIDTOKEN"
	f.ticketRepo.AddTicket(ticket)

	if _, err := f.ticketService.ScanAndValidate(context.Background(), "UNPAIDTOKEN", 7); !errors.Is(err, service.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound for unpaid ticket, got %v", err)
	}
}

func TestScan_UnknownTokenRejected(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()

	if _, err := f.ticketService.ScanAndValidate(context.Background(), "NOSUCHTOKEN", 7); !errors.Is(err, service.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestScan_WrongVehicleRejected(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := pendingTicket(1, 5, 3000)
	ticket.PaymentStatus = domain.PaymentStatusCompleted
	ticket.QRCode = "VALIDTOKEN"
	f.ticketRepo.AddTicket(ticket)

	if _, err := f.ticketService.ScanAndValidate(context.Background(), "VALIDTOKEN", 8); !errors.Is(err, service.ErrVehicleMismatch) {
		t.Fatalf("expected ErrVehicleMismatch, got %v", err)
	}
}

func TestScan_TicketWithoutVehicleValidatesAnywhere(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := pendingTicket(1, 5, 3000)
	ticket.VehicleID = 0
	ticket.PaymentStatus = domain.PaymentStatusCompleted
	ticket.QRCode = "FREETOKEN"
	f.ticketRepo.AddTicket(ticket)

	if _, err := f.ticketService.ScanAndValidate(context.Background(), "FREETOKEN", 99); err != nil {
		t.Fatalf("unbound ticket should validate on any vehicle: %v", err)
	}
}

func TestConfirmBoarding_MarksTicketInProgress(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	f.userRepo.AddUser(&domain.User{ID: 5, Name: "Alice"})
	ticket := pendingTicket(1, 5, 3000)
	ticket.PaymentStatus = domain.PaymentStatusCompleted
	f.ticketRepo.AddTicket(ticket)

	got, err := f.ticketService.ConfirmBoarding(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.BoardingStatus != domain.BoardingStatusConfirmed {
		t.Errorf("expected boarding confirmed, got %s", got.BoardingStatus)
	}
	if got.JourneyStatus != domain.JourneyStatusInProgress {
		t.Errorf("expected journey in progress, got %s", got.JourneyStatus)
	}
	if got.BoardedAt.IsZero() {
		t.Error("expected boarded timestamp")
	}

	stored := f.ticketRepo.GetTicket(1)
	if stored.BoardingStatus != domain.BoardingStatusConfirmed {
		t.Error("boarding status not persisted")
	}
}
