package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transit/internal/service"
)

// BoardingHandler handles HTTP requests from drivers aboard a vehicle:
// scanning boarding tokens, confirming boardings, starting the journey and
// reporting GPS positions.
type BoardingHandler struct {
	ticketService   *service.TicketService
	trackingService *service.TrackingService
}

// NewBoardingHandler creates a new BoardingHandler.
func NewBoardingHandler(ticketService *service.TicketService, trackingService *service.TrackingService) *BoardingHandler {
	return &BoardingHandler{
		ticketService:   ticketService,
		trackingService: trackingService,
	}
}

// ScanTicketRequest is the HTTP request body for validating a boarding token.
type ScanTicketRequest struct {
	QRCode    string `json:"qr_code" binding:"required"`
	VehicleID int64  `json:"vehicle_id" binding:"required,gt=0"`
}

// ScanTicket handles POST /v1/driver/tickets/scan
func (h *BoardingHandler) ScanTicket(c *gin.Context) {
	var req ScanTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ticket, err := h.ticketService.ScanAndValidate(c.Request.Context(), req.QRCode, req.VehicleID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ticketResponse(ticket))
}

// ConfirmBoarding handles POST /v1/driver/tickets/:id/board
func (h *BoardingHandler) ConfirmBoarding(c *gin.Context) {
	ticketID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidTicketID)
		return
	}

	ticket, err := h.ticketService.ConfirmBoarding(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ticketResponse(ticket))
}

// StartJourneyResponse is the HTTP response for a bulk journey start.
type StartJourneyResponse struct {
	TicketsUpdated     int `json:"tickets_updated"`
	PassengersNotified int `json:"passengers_notified"`
}

// StartJourney handles POST /v1/driver/vehicles/:id/start
func (h *BoardingHandler) StartJourney(c *gin.Context) {
	vehicleID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidVehicleID)
		return
	}

	result, err := h.ticketService.StartJourney(c.Request.Context(), vehicleID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, StartJourneyResponse{
		TicketsUpdated:     result.TicketsUpdated,
		PassengersNotified: result.PassengersNotified,
	})
}

// UpdateLocationRequest is the HTTP request body for a GPS update. Zero is a
// valid coordinate, so range checking happens in the service.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateLocationResponse is the HTTP response for a GPS update.
type UpdateLocationResponse struct {
	PassengersNotified int `json:"passengers_notified"`
}

// UpdateLocation handles PUT /v1/driver/vehicles/:id/location
func (h *BoardingHandler) UpdateLocation(c *gin.Context) {
	vehicleID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidVehicleID)
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.trackingService.UpdateLocation(c.Request.Context(), service.UpdateLocationRequest{
		VehicleID: vehicleID,
		Lat:       req.Lat,
		Lng:       req.Lng,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UpdateLocationResponse{
		PassengersNotified: result.PassengersNotified,
	})
}
