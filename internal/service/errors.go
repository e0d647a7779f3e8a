package service

import "errors"

var (
	// ErrInvalidRouteID is returned when a route ID is missing or not positive.
	ErrInvalidRouteID = errors.New("invalid route id")

	// ErrInvalidVehicleID is returned when a vehicle ID is missing or not positive.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidDriverID is returned when a driver ID is missing or not positive.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidTicketID is returned when a ticket ID is missing or not positive.
	ErrInvalidTicketID = errors.New("invalid ticket id")

	// ErrInvalidUserID is returned when a user ID is missing or not positive.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidStopPair is returned internally by the fare resolver when a
	// stop pair is malformed or not both stops belong to the route. It never
	// surfaces to callers; the resolver degrades to the base fare instead.
	ErrInvalidStopPair = errors.New("invalid stop pair")

	// ErrInvalidPhoneFormat is returned when a payment phone number does not
	// match the accepted mobile-money prefixes.
	ErrInvalidPhoneFormat = errors.New("invalid phone number format")

	// ErrAlreadyPaid is returned when paying a ticket whose payment is
	// already completed. The charged amount is immutable.
	ErrAlreadyPaid = errors.New("ticket already paid")

	// ErrPaymentInFlight is returned when another payment attempt holds the
	// ticket's payment lock.
	ErrPaymentInFlight = errors.New("payment already in progress for this ticket")

	// ErrPaymentDeclined is returned when the mobile-money provider rejects
	// the charge.
	ErrPaymentDeclined = errors.New("payment declined by provider")

	// ErrTicketNotFound is returned at scan time when no paid ticket matches
	// the presented code.
	ErrTicketNotFound = errors.New("ticket not found or not paid")

	// ErrVehicleMismatch is returned when a ticket is scanned aboard a
	// vehicle it is not bound to.
	ErrVehicleMismatch = errors.New("ticket is for a different vehicle")

	// ErrInvalidLocation is returned when location coordinates are out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidRating is returned when a review rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidSeatNumber is returned when a booking seat number is not positive.
	ErrInvalidSeatNumber = errors.New("invalid seat number")

	// ErrInvalidTravelDate is returned when a booking has no travel date.
	ErrInvalidTravelDate = errors.New("invalid travel date")

	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
