package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"transit/internal/domain"
	"transit/internal/repository"
)

// TicketRepository is a PostgreSQL implementation of
// repository.TicketRepository.
type TicketRepository struct {
	q Querier
}

// NewTicketRepository creates a new PostgreSQL ticket repository.
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{q: db}
}

// NewTicketRepositoryWithTx creates a ticket repository using a transaction.
func NewTicketRepositoryWithTx(tx *sql.Tx) *TicketRepository {
	return &TicketRepository{q: tx}
}

const ticketColumns = `id, user_id, COALESCE(passenger_name, ''), COALESCE(passenger_phone, ''),
	COALESCE(passenger_email, ''), route_id, COALESCE(vehicle_id, 0),
	COALESCE(start_stop_id, 0), COALESCE(end_stop_id, 0),
	COALESCE(start_location, ''), COALESCE(end_location, ''), travel_date, seat_number,
	amount_paid, distance_km, payment_status, COALESCE(payment_method, ''),
	COALESCE(transaction_id, ''), boarding_status, journey_status,
	COALESCE(qr_code, ''), created_at, boarded_at`

// Create persists a new ticket and sets its ID.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (user_id, passenger_name, passenger_phone, passenger_email,
			route_id, vehicle_id, start_stop_id, end_stop_id, start_location, end_location,
			travel_date, seat_number, amount_paid, distance_km, payment_status,
			boarding_status, journey_status, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0), NULLIF($7, 0), NULLIF($8, 0),
			$9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`
	return r.q.QueryRowContext(ctx, query,
		ticket.UserID,
		ticket.PassengerName,
		ticket.PassengerPhone,
		ticket.PassengerEmail,
		ticket.RouteID,
		ticket.VehicleID,
		ticket.StartStopID,
		ticket.EndStopID,
		ticket.StartLocation,
		ticket.EndLocation,
		ticket.TravelDate,
		ticket.SeatNumber,
		ticket.AmountPaid,
		ticket.DistanceKm,
		ticket.PaymentStatus,
		ticket.BoardingStatus,
		ticket.JourneyStatus,
		ticket.CreatedAt,
	).Scan(&ticket.ID)
}

// SetQRCode stores the derived boarding token for a ticket.
func (r *TicketRepository) SetQRCode(ctx context.Context, ticketID int64, qrCode string) error {
	query := `UPDATE tickets SET qr_code = $1 WHERE id = $2`
	return r.execOne(ctx, query, qrCode, ticketID)
}

// GetByID retrieves a ticket by ID.
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// GetByQRCode retrieves a ticket by its boarding token.
func (r *TicketRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE qr_code = $1`

	ticket, err := scanTicket(r.q.QueryRowContext(ctx, query, qrCode))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// GetByUser retrieves all tickets bought by a user, newest first.
func (r *TicketRepository) GetByUser(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryTickets(ctx, query, userID)
}

// MarkPaid records a completed payment. amount_paid is deliberately not part
// of the statement: the charged amount is immutable once payment completes.
func (r *TicketRepository) MarkPaid(ctx context.Context, ticketID int64, method domain.PaymentMethod, transactionID string) error {
	query := `
		UPDATE tickets
		SET payment_status = $1, payment_method = $2, transaction_id = $3
		WHERE id = $4
	`
	return r.execOne(ctx, query, domain.PaymentStatusCompleted, method, transactionID, ticketID)
}

// ConfirmBoarding marks the ticket boarded and its journey in progress.
func (r *TicketRepository) ConfirmBoarding(ctx context.Context, ticketID int64, boardedAt time.Time) error {
	query := `
		UPDATE tickets
		SET boarding_status = $1, journey_status = $2, boarded_at = $3
		WHERE id = $4
	`
	return r.execOne(ctx, query, domain.BoardingStatusConfirmed, domain.JourneyStatusInProgress, boardedAt, ticketID)
}

// StartJourneyForVehicle transitions every paid, still-pending ticket of the
// vehicle into journey_in_progress and returns the affected tickets.
func (r *TicketRepository) StartJourneyForVehicle(ctx context.Context, vehicleID int64) ([]*domain.Ticket, error) {
	query := `
		UPDATE tickets
		SET journey_status = $1
		WHERE vehicle_id = $2 AND payment_status = $3 AND journey_status = $4
		RETURNING ` + ticketColumns

	return r.queryTickets(ctx, query,
		domain.JourneyStatusInProgress,
		vehicleID,
		domain.PaymentStatusCompleted,
		domain.JourneyStatusPending,
	)
}

// InProgressByVehicle retrieves the tickets currently travelling on the
// vehicle.
func (r *TicketRepository) InProgressByVehicle(ctx context.Context, vehicleID int64) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE vehicle_id = $1 AND journey_status = $2`
	return r.queryTickets(ctx, query, vehicleID, domain.JourneyStatusInProgress)
}

func (r *TicketRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TicketRepository) queryTickets(ctx context.Context, query string, args ...any) ([]*domain.Ticket, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var boardedAt sql.NullTime
	err := row.Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.PassengerName,
		&ticket.PassengerPhone,
		&ticket.PassengerEmail,
		&ticket.RouteID,
		&ticket.VehicleID,
		&ticket.StartStopID,
		&ticket.EndStopID,
		&ticket.StartLocation,
		&ticket.EndLocation,
		&ticket.TravelDate,
		&ticket.SeatNumber,
		&ticket.AmountPaid,
		&ticket.DistanceKm,
		&ticket.PaymentStatus,
		&ticket.PaymentMethod,
		&ticket.TransactionID,
		&ticket.BoardingStatus,
		&ticket.JourneyStatus,
		&ticket.QRCode,
		&ticket.CreatedAt,
		&boardedAt,
	)
	if err != nil {
		return nil, err
	}
	if boardedAt.Valid {
		ticket.BoardedAt = boardedAt.Time
	}
	return &ticket, nil
}

// Ensure TicketRepository implements repository.TicketRepository.
var _ repository.TicketRepository = (*TicketRepository)(nil)
