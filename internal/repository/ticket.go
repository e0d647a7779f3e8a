package repository

import (
	"context"
	"time"

	"transit/internal/domain"
)

// TicketRepository defines the persistence operations for tickets.
type TicketRepository interface {
	// Create persists a new ticket and sets its ID.
	Create(ctx context.Context, ticket *domain.Ticket) error

	// SetQRCode stores the derived boarding token for a ticket.
	SetQRCode(ctx context.Context, ticketID int64, qrCode string) error

	// GetByID retrieves a ticket by ID.
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)

	// GetByQRCode retrieves a ticket by its boarding token.
	GetByQRCode(ctx context.Context, qrCode string) (*domain.Ticket, error)

	// GetByUser retrieves all tickets bought by a user, newest first.
	GetByUser(ctx context.Context, userID int64) ([]*domain.Ticket, error)

	// MarkPaid records a completed payment. The fare amount itself is never
	// touched here.
	MarkPaid(ctx context.Context, ticketID int64, method domain.PaymentMethod, transactionID string) error

	// ConfirmBoarding marks the ticket boarded and its journey in progress.
	ConfirmBoarding(ctx context.Context, ticketID int64, boardedAt time.Time) error

	// StartJourneyForVehicle transitions every paid, still-pending ticket of
	// the vehicle into journey_in_progress and returns the affected tickets.
	StartJourneyForVehicle(ctx context.Context, vehicleID int64) ([]*domain.Ticket, error)

	// InProgressByVehicle retrieves the tickets currently travelling on the
	// vehicle.
	InProgressByVehicle(ctx context.Context, vehicleID int64) ([]*domain.Ticket, error)
}
