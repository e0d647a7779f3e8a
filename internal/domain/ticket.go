package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// PaymentStatus represents whether a ticket has been paid for.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// BoardingStatus represents whether the passenger has been scanned aboard.
type BoardingStatus string

const (
	BoardingStatusPending   BoardingStatus = "pending"
	BoardingStatusConfirmed BoardingStatus = "confirmed"
)

// JourneyStatus represents travel progress, distinct from payment state.
type JourneyStatus string

const (
	JourneyStatusPending    JourneyStatus = "pending"
	JourneyStatusInProgress JourneyStatus = "in_progress"
	JourneyStatusCompleted  JourneyStatus = "completed"
)

// PaymentMethod represents how a ticket was paid.
type PaymentMethod string

const (
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
	PaymentMethodCash        PaymentMethod = "cash"
)

// Ticket is a purchasable right to travel a route (or a stop sub-segment) on
// a given date. UserID is the buying account; the Passenger* fields capture
// the traveler, who may be a different person.
//
// AmountPaid holds the calculated fare from booking onwards. Once
// PaymentStatus is completed it must never be mutated (there is no refund
// path).
type Ticket struct {
	ID             int64
	UserID         int64
	PassengerName  string
	PassengerPhone string
	PassengerEmail string
	RouteID        int64
	VehicleID      int64 // 0 when not yet bound to a vehicle
	StartStopID    int64 // 0 when travelling the whole route
	EndStopID      int64
	StartLocation  string
	EndLocation    string
	TravelDate     time.Time
	SeatNumber     int
	AmountPaid     float64
	DistanceKm     float64
	PaymentStatus  PaymentStatus
	PaymentMethod  PaymentMethod
	TransactionID  string
	BoardingStatus BoardingStatus
	JourneyStatus  JourneyStatus
	QRCode         string
	CreatedAt      time.Time
	BoardedAt      time.Time
}

// qrCodeLength is the fixed length of the boarding token.
const qrCodeLength = 32

// TicketQRCode derives the opaque boarding token for a ticket. The token is
// deterministic over the ticket id, the bound vehicle id (0 when unknown),
// the route id and the booking timestamp, rendered as fixed-length uppercase
// hex. It is matched verbatim at scan time; it is not a general QR payload.
func TicketQRCode(ticketID, vehicleID, routeID int64, bookedAt time.Time) string {
	seed := fmt.Sprintf("%d:%d:%d:%d", ticketID, vehicleID, routeID, bookedAt.Unix())
	sum := sha256.Sum256([]byte(seed))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:qrCodeLength]
}
