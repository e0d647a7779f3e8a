package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"transit/internal/domain"
	"transit/internal/middleware"
	"transit/internal/service"
)

// TicketHandler handles HTTP requests for booking and paying tickets.
type TicketHandler struct {
	ticketService *service.TicketService
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// BookTicketRequest is the HTTP request body for booking a ticket.
type BookTicketRequest struct {
	PassengerName  string `json:"passenger_name"`
	PassengerPhone string `json:"passenger_phone"`
	PassengerEmail string `json:"passenger_email"`
	RouteID        int64  `json:"route_id" binding:"required,gt=0"`
	VehicleID      int64  `json:"vehicle_id"`
	StartStopID    int64  `json:"start_stop_id"`
	EndStopID      int64  `json:"end_stop_id"`
	TravelDate     string `json:"travel_date" binding:"required"`
	SeatNumber     int    `json:"seat_number" binding:"required,gt=0"`
}

// PayTicketRequest is the HTTP request body for paying a ticket.
type PayTicketRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Method string `json:"method"`
}

// TicketResponse is the HTTP response for ticket operations.
type TicketResponse struct {
	ID             int64   `json:"id"`
	RouteID        int64   `json:"route_id"`
	VehicleID      int64   `json:"vehicle_id,omitempty"`
	PassengerName  string  `json:"passenger_name,omitempty"`
	StartLocation  string  `json:"start_location"`
	EndLocation    string  `json:"end_location"`
	TravelDate     string  `json:"travel_date"`
	SeatNumber     int     `json:"seat_number"`
	Amount         float64 `json:"amount"`
	DistanceKm     float64 `json:"distance_km,omitempty"`
	PaymentStatus  string  `json:"payment_status"`
	PaymentMethod  string  `json:"payment_method,omitempty"`
	TransactionID  string  `json:"transaction_id,omitempty"`
	BoardingStatus string  `json:"boarding_status"`
	JourneyStatus  string  `json:"journey_status"`
	QRCode         string  `json:"qr_code,omitempty"`
	BoardedAt      string  `json:"boarded_at,omitempty"`
}

func ticketResponse(ticket *domain.Ticket) TicketResponse {
	response := TicketResponse{
		ID:             ticket.ID,
		RouteID:        ticket.RouteID,
		VehicleID:      ticket.VehicleID,
		PassengerName:  ticket.PassengerName,
		StartLocation:  ticket.StartLocation,
		EndLocation:    ticket.EndLocation,
		TravelDate:     ticket.TravelDate.Format("2006-01-02"),
		SeatNumber:     ticket.SeatNumber,
		Amount:         ticket.AmountPaid,
		DistanceKm:     ticket.DistanceKm,
		PaymentStatus:  string(ticket.PaymentStatus),
		PaymentMethod:  string(ticket.PaymentMethod),
		TransactionID:  ticket.TransactionID,
		BoardingStatus: string(ticket.BoardingStatus),
		JourneyStatus:  string(ticket.JourneyStatus),
		QRCode:         ticket.QRCode,
	}
	if !ticket.BoardedAt.IsZero() {
		response.BoardedAt = ticket.BoardedAt.Format(time.RFC3339)
	}
	return response
}

// Book handles POST /v1/passenger/tickets
func (h *TicketHandler) Book(c *gin.Context) {
	var req BookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	travelDate, err := time.Parse("2006-01-02", req.TravelDate)
	if err != nil {
		respondError(c, service.ErrInvalidTravelDate)
		return
	}

	ticket, err := h.ticketService.Book(c.Request.Context(), service.BookTicketRequest{
		UserID:         middleware.UserID(c),
		PassengerName:  req.PassengerName,
		PassengerPhone: req.PassengerPhone,
		PassengerEmail: req.PassengerEmail,
		RouteID:        req.RouteID,
		VehicleID:      req.VehicleID,
		StartStopID:    req.StartStopID,
		EndStopID:      req.EndStopID,
		TravelDate:     travelDate,
		SeatNumber:     req.SeatNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, ticketResponse(ticket))
}

// Pay handles POST /v1/passenger/tickets/:id/pay
func (h *TicketHandler) Pay(c *gin.Context) {
	ticketID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidTicketID)
		return
	}

	var req PayTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ticket, err := h.ticketService.Pay(c.Request.Context(), service.PayTicketRequest{
		TicketID: ticketID,
		Phone:    req.Phone,
		Method:   domain.PaymentMethod(req.Method),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ticketResponse(ticket))
}

// MyTickets handles GET /v1/passenger/tickets
func (h *TicketHandler) MyTickets(c *gin.Context) {
	tickets, err := h.ticketService.GetTicketsForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		response = append(response, ticketResponse(ticket))
	}
	respondJSON(c, http.StatusOK, response)
}
