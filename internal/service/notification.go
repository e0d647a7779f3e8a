package service

import (
	"context"
	"fmt"
	"time"

	"transit/internal/domain"
	"transit/internal/repository"
)

// NotificationService creates notification rows for users. Delivery (push,
// SMS, email) happens outside this system; the inbox row is the contract.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Notify creates a notification row for a user.
func (s *NotificationService) Notify(ctx context.Context, userID int64, title, message string) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	return s.notificationRepo.Create(ctx, &domain.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// Inbox retrieves a user's notifications, newest first.
func (s *NotificationService) Inbox(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.notificationRepo.GetByUser(ctx, userID)
}

// ResolvePassenger finds the user account behind a ticket's traveler. The
// captured traveler details win over the buying account: a ticket may be
// bought by one user for a different named traveler.
func (s *NotificationService) ResolvePassenger(ctx context.Context, ticket *domain.Ticket) (*domain.User, error) {
	if ticket.PassengerPhone != "" {
		if user, err := s.userRepo.GetByPhone(ctx, ticket.PassengerPhone); err == nil {
			return user, nil
		}
	}
	if ticket.PassengerEmail != "" {
		if user, err := s.userRepo.GetByEmail(ctx, ticket.PassengerEmail); err == nil {
			return user, nil
		}
	}
	if ticket.UserID > 0 {
		return s.userRepo.GetByID(ctx, ticket.UserID)
	}
	return nil, repository.ErrNotFound
}

// NotifyVehicleAssigned informs a driver of their new vehicle.
func (s *NotificationService) NotifyVehicleAssigned(ctx context.Context, userID int64, vehicle *domain.Vehicle) error {
	return s.Notify(ctx, userID, "New Vehicle Assigned",
		fmt.Sprintf("You have been assigned vehicle %s.", vehicle.PlateNumber))
}

// NotifyRouteAssigned informs a driver of their new route.
func (s *NotificationService) NotifyRouteAssigned(ctx context.Context, userID int64, route *domain.Route) error {
	return s.Notify(ctx, userID, "New Route Assigned",
		fmt.Sprintf("You have been assigned route %s (%s - %s).",
			route.Name, route.StartLocation, route.EndLocation))
}

// NotifyTicketBooked informs the buying user that their booking was created.
func (s *NotificationService) NotifyTicketBooked(ctx context.Context, userID int64, ticket *domain.Ticket) error {
	return s.Notify(ctx, userID, "Ticket Booked",
		fmt.Sprintf("Ticket #%d booked for %s to %s. Amount due: %.0f. Complete payment to receive your boarding code.",
			ticket.ID, ticket.StartLocation, ticket.EndLocation, ticket.AmountPaid))
}

// NotifyPaymentReceived informs a user that a ticket payment completed.
func (s *NotificationService) NotifyPaymentReceived(ctx context.Context, userID int64, ticket *domain.Ticket) error {
	return s.Notify(ctx, userID, "Payment Received",
		fmt.Sprintf("Payment of %.0f for ticket #%d received (ref %s). Safe travels!",
			ticket.AmountPaid, ticket.ID, ticket.TransactionID))
}

// NotifyBoardingConfirmed informs the traveler that they were scanned aboard.
func (s *NotificationService) NotifyBoardingConfirmed(ctx context.Context, userID int64, ticket *domain.Ticket) error {
	return s.Notify(ctx, userID, "Boarding Confirmed",
		fmt.Sprintf("Boarding confirmed for ticket #%d. Your journey is now in progress.", ticket.ID))
}

// NotifyJourneyStarted informs a traveler that the vehicle departed.
func (s *NotificationService) NotifyJourneyStarted(ctx context.Context, userID int64, ticket *domain.Ticket) error {
	return s.Notify(ctx, userID, "Journey Started",
		fmt.Sprintf("Your journey from %s to %s has started.", ticket.StartLocation, ticket.EndLocation))
}

// NotifyLocationUpdate informs a traveler of the vehicle's latest position.
func (s *NotificationService) NotifyLocationUpdate(ctx context.Context, userID, vehicleID int64, lat, lng float64) error {
	return s.Notify(ctx, userID, "Vehicle Location Update",
		fmt.Sprintf("Vehicle %d is now at (%.5f, %.5f).", vehicleID, lat, lng))
}
