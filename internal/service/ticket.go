package service

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"transit/internal/domain"
	internalRedis "transit/internal/redis"
	"transit/internal/repository"
	"transit/internal/repository/postgres"
)

// paymentLockTTL bounds how long a crashed payment attempt can block a
// ticket.
const paymentLockTTL = 30 * time.Second

// TicketService handles the ticket lifecycle: booking, payment, boarding
// validation and journey start.
type TicketService struct {
	db                  *sql.DB
	ticketRepo          repository.TicketRepository
	fareService         *FareService
	notificationService *NotificationService
	loyaltyService      *LoyaltyService
	momo                MobileMoneyProvider
	locks               internalRedis.LockStoreInterface
}

// NewTicketService creates a new TicketService. loyaltyService and locks may
// be nil.
func NewTicketService(
	db *sql.DB,
	ticketRepo repository.TicketRepository,
	fareService *FareService,
	notificationService *NotificationService,
	loyaltyService *LoyaltyService,
	momo MobileMoneyProvider,
	locks internalRedis.LockStoreInterface,
) *TicketService {
	return &TicketService{
		db:                  db,
		ticketRepo:          ticketRepo,
		fareService:         fareService,
		notificationService: notificationService,
		loyaltyService:      loyaltyService,
		momo:                momo,
		locks:               locks,
	}
}

// BookTicketRequest contains the parameters for booking a ticket.
type BookTicketRequest struct {
	UserID         int64
	PassengerName  string
	PassengerPhone string
	PassengerEmail string
	RouteID        int64
	VehicleID      int64 // 0 when no vehicle is chosen yet
	StartStopID    int64 // 0 for the whole route
	EndStopID      int64
	TravelDate     time.Time
	SeatNumber     int
}

// Book creates a ticket in pending payment state. The fare comes from the
// fare resolver; the boarding token is derived from the new ticket id and
// persisted in the same transaction as the insert.
func (s *TicketService) Book(ctx context.Context, req BookTicketRequest) (*domain.Ticket, error) {
	if req.UserID <= 0 {
		return nil, ErrInvalidUserID
	}
	if req.RouteID <= 0 {
		return nil, ErrInvalidRouteID
	}
	if req.SeatNumber <= 0 {
		return nil, ErrInvalidSeatNumber
	}
	if req.TravelDate.IsZero() {
		return nil, ErrInvalidTravelDate
	}

	quote, err := s.fareService.Resolve(ctx, req.RouteID, req.StartStopID, req.EndStopID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ticket := &domain.Ticket{
		UserID:         req.UserID,
		PassengerName:  req.PassengerName,
		PassengerPhone: req.PassengerPhone,
		PassengerEmail: req.PassengerEmail,
		RouteID:        req.RouteID,
		VehicleID:      req.VehicleID,
		StartStopID:    req.StartStopID,
		EndStopID:      req.EndStopID,
		StartLocation:  quote.StartLocation,
		EndLocation:    quote.EndLocation,
		TravelDate:     req.TravelDate,
		SeatNumber:     req.SeatNumber,
		AmountPaid:     quote.Amount,
		DistanceKm:     quote.DistanceKm,
		PaymentStatus:  domain.PaymentStatusPending,
		BoardingStatus: domain.BoardingStatusPending,
		JourneyStatus:  domain.JourneyStatusPending,
		CreatedAt:      now,
	}

	// The boarding token depends on the generated ticket id, so the insert
	// and the token write share one transaction.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTicketRepo := postgres.NewTicketRepositoryWithTx(tx)

	if err = txTicketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	ticket.QRCode = domain.TicketQRCode(ticket.ID, ticket.VehicleID, ticket.RouteID, now)
	if err = txTicketRepo.SetQRCode(ctx, ticket.ID, ticket.QRCode); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		if err := s.notificationService.NotifyTicketBooked(ctx, req.UserID, ticket); err != nil {
			log.Printf("ticket: booking notification for user %d failed: %v", req.UserID, err)
		}
	}

	return ticket, nil
}

// PayTicketRequest contains the parameters for paying a ticket.
type PayTicketRequest struct {
	TicketID int64
	Phone    string
	Method   domain.PaymentMethod
}

// Pay charges the given mobile-money phone for a pending ticket. The charged
// amount is the fare computed at booking and is immutable afterwards.
func (s *TicketService) Pay(ctx context.Context, req PayTicketRequest) (*domain.Ticket, error) {
	if req.TicketID <= 0 {
		return nil, ErrInvalidTicketID
	}
	if !IsValidPaymentPhone(req.Phone) {
		return nil, ErrInvalidPhoneFormat
	}

	if s.locks != nil {
		ok, err := s.locks.AcquirePaymentLock(ctx, req.TicketID, paymentLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrPaymentInFlight
		}
		defer func() {
			_ = s.locks.ReleasePaymentLock(ctx, req.TicketID)
		}()
	}

	ticket, err := s.ticketRepo.GetByID(ctx, req.TicketID)
	if err != nil {
		return nil, err
	}

	if ticket.PaymentStatus == domain.PaymentStatusCompleted {
		return nil, ErrAlreadyPaid
	}

	transactionID, err := s.momo.Charge(ctx, req.Phone, ticket.AmountPaid)
	if err != nil {
		log.Printf("ticket: charge for ticket %d declined: %v", req.TicketID, err)
		return nil, ErrPaymentDeclined
	}

	method := req.Method
	if method == "" {
		method = domain.PaymentMethodMobileMoney
	}

	if err := s.ticketRepo.MarkPaid(ctx, ticket.ID, method, transactionID); err != nil {
		return nil, err
	}

	ticket.PaymentStatus = domain.PaymentStatusCompleted
	ticket.PaymentMethod = method
	ticket.TransactionID = transactionID

	// Loyalty points and notifications are side effects; the payment stands
	// even when they fail.
	if s.loyaltyService != nil {
		if err := s.loyaltyService.AwardForPayment(ctx, ticket.UserID, ticket.AmountPaid); err != nil {
			log.Printf("ticket: loyalty award for user %d failed: %v", ticket.UserID, err)
		}
	}

	s.notifyPaid(ctx, ticket)

	return ticket, nil
}

// notifyPaid notifies the traveling passenger and, when the buyer is a
// different account, the buyer too.
func (s *TicketService) notifyPaid(ctx context.Context, ticket *domain.Ticket) {
	if s.notificationService == nil {
		return
	}

	passenger, err := s.notificationService.ResolvePassenger(ctx, ticket)
	if err != nil {
		log.Printf("ticket: passenger for ticket %d unresolved: %v", ticket.ID, err)
		// Fall back to the buyer so somebody hears about the payment.
		if ticket.UserID > 0 {
			_ = s.notificationService.NotifyPaymentReceived(ctx, ticket.UserID, ticket)
		}
		return
	}

	if err := s.notificationService.NotifyPaymentReceived(ctx, passenger.ID, ticket); err != nil {
		log.Printf("ticket: payment notification for user %d failed: %v", passenger.ID, err)
	}

	if ticket.UserID > 0 && ticket.UserID != passenger.ID {
		if err := s.notificationService.NotifyPaymentReceived(ctx, ticket.UserID, ticket); err != nil {
			log.Printf("ticket: payment notification for buyer %d failed: %v", ticket.UserID, err)
		}
	}
}

// ScanAndValidate checks a boarding token presented aboard a vehicle. It is
// read-only: confirming the boarding is a separate call.
func (s *TicketService) ScanAndValidate(ctx context.Context, qrCode string, vehicleID int64) (*domain.Ticket, error) {
	if qrCode == "" {
		return nil, ErrTicketNotFound
	}
	if vehicleID <= 0 {
		return nil, ErrInvalidVehicleID
	}

	ticket, err := s.ticketRepo.GetByQRCode(ctx, qrCode)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	if ticket.PaymentStatus != domain.PaymentStatusCompleted {
		return nil, ErrTicketNotFound
	}

	if ticket.VehicleID != 0 && ticket.VehicleID != vehicleID {
		return nil, ErrVehicleMismatch
	}

	return ticket, nil
}

// ConfirmBoarding marks one ticket boarded and its journey in progress.
func (s *TicketService) ConfirmBoarding(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	if ticketID <= 0 {
		return nil, ErrInvalidTicketID
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	boardedAt := time.Now()
	if err := s.ticketRepo.ConfirmBoarding(ctx, ticketID, boardedAt); err != nil {
		return nil, err
	}

	ticket.BoardingStatus = domain.BoardingStatusConfirmed
	ticket.JourneyStatus = domain.JourneyStatusInProgress
	ticket.BoardedAt = boardedAt

	if s.notificationService != nil {
		passenger, err := s.notificationService.ResolvePassenger(ctx, ticket)
		if err == nil {
			if err := s.notificationService.NotifyBoardingConfirmed(ctx, passenger.ID, ticket); err != nil {
				log.Printf("ticket: boarding notification for user %d failed: %v", passenger.ID, err)
			}
		}
	}

	return ticket, nil
}

// StartJourneyResult reports the outcome of a bulk journey start.
type StartJourneyResult struct {
	TicketsUpdated     int
	PassengersNotified int
}

// StartJourney transitions every paid, still-pending ticket of a vehicle
// into journey_in_progress, then notifies the passengers. Each notification
// is an independent unit of work: one passenger failing to resolve must not
// block the others, so the result can report a partial notified count.
func (s *TicketService) StartJourney(ctx context.Context, vehicleID int64) (*StartJourneyResult, error) {
	if vehicleID <= 0 {
		return nil, ErrInvalidVehicleID
	}

	tickets, err := s.ticketRepo.StartJourneyForVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	var notified int32
	var wg sync.WaitGroup
	for _, ticket := range tickets {
		if s.notificationService == nil {
			break
		}
		wg.Add(1)
		go func(ticket *domain.Ticket) {
			defer wg.Done()
			passenger, err := s.notificationService.ResolvePassenger(ctx, ticket)
			if err != nil {
				log.Printf("ticket: journey-start passenger for ticket %d unresolved: %v", ticket.ID, err)
				return
			}
			if err := s.notificationService.NotifyJourneyStarted(ctx, passenger.ID, ticket); err != nil {
				log.Printf("ticket: journey-start notification for user %d failed: %v", passenger.ID, err)
				return
			}
			atomic.AddInt32(&notified, 1)
		}(ticket)
	}
	wg.Wait()

	return &StartJourneyResult{
		TicketsUpdated:     len(tickets),
		PassengersNotified: int(notified),
	}, nil
}

// GetTicketsForUser retrieves the tickets bought by a user.
func (s *TicketService) GetTicketsForUser(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.ticketRepo.GetByUser(ctx, userID)
}
