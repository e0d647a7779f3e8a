package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"transit/internal/domain"
	"transit/internal/service"
)

// RouteHandler handles HTTP requests for route administration.
type RouteHandler struct {
	routeService      *service.RouteService
	assignmentService *service.AssignmentService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(routeService *service.RouteService, assignmentService *service.AssignmentService) *RouteHandler {
	return &RouteHandler{
		routeService:      routeService,
		assignmentService: assignmentService,
	}
}

// CreateRouteRequest is the HTTP request body for creating a route.
type CreateRouteRequest struct {
	Name           string  `json:"name" binding:"required"`
	StartLocation  string  `json:"start_location" binding:"required"`
	EndLocation    string  `json:"end_location" binding:"required"`
	BaseFare       float64 `json:"base_fare" binding:"required,gt=0"`
	CompanyID      int64   `json:"company_id"`
	ScheduledStart string  `json:"scheduled_start"`
}

// RouteResponse is the HTTP response for route operations.
type RouteResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	StartLocation     string  `json:"start_location"`
	EndLocation       string  `json:"end_location"`
	BaseFare          float64 `json:"base_fare"`
	CompanyID         int64   `json:"company_id,omitempty"`
	AssignedVehicleID int64   `json:"assigned_vehicle_id,omitempty"`
	AssignedDriverID  int64   `json:"assigned_driver_id,omitempty"`
	ScheduledStart    string  `json:"scheduled_start,omitempty"`
}

func routeResponse(route *domain.Route) RouteResponse {
	response := RouteResponse{
		ID:                route.ID,
		Name:              route.Name,
		StartLocation:     route.StartLocation,
		EndLocation:       route.EndLocation,
		BaseFare:          route.BaseFare,
		CompanyID:         route.CompanyID,
		AssignedVehicleID: route.AssignedVehicleID,
		AssignedDriverID:  route.AssignedDriverID,
	}
	if !route.ScheduledStart.IsZero() {
		response.ScheduledStart = route.ScheduledStart.Format(time.RFC3339)
	}
	return response
}

// CreateRoute handles POST /v1/admin/routes
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var scheduledStart time.Time
	if req.ScheduledStart != "" {
		parsed, err := time.Parse(time.RFC3339, req.ScheduledStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "scheduled_start must be RFC 3339"})
			return
		}
		scheduledStart = parsed
	}

	route, err := h.routeService.Create(c.Request.Context(), service.CreateRouteRequest{
		Name:           req.Name,
		StartLocation:  req.StartLocation,
		EndLocation:    req.EndLocation,
		BaseFare:       req.BaseFare,
		CompanyID:      req.CompanyID,
		ScheduledStart: scheduledStart,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, routeResponse(route))
}

// GetRoute handles GET /v1/routes/:id
func (h *RouteHandler) GetRoute(c *gin.Context) {
	routeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidRouteID)
		return
	}

	route, err := h.routeService.Get(c.Request.Context(), routeID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, routeResponse(route))
}

// GetAll handles GET /v1/routes
func (h *RouteHandler) GetAll(c *gin.Context) {
	routes, err := h.routeService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RouteResponse, 0, len(routes))
	for _, route := range routes {
		response = append(response, routeResponse(route))
	}
	respondJSON(c, http.StatusOK, response)
}

// AddStopRequest is the HTTP request body for adding a stop.
type AddStopRequest struct {
	StopName            string  `json:"stop_name" binding:"required"`
	StopOrder           int     `json:"stop_order" binding:"required,gt=0"`
	DistanceFromStartKm float64 `json:"distance_from_start_km" binding:"gte=0"`
	FareFromStart       float64 `json:"fare_from_start" binding:"gte=0"`
}

// StopResponse is the HTTP response for stop operations.
type StopResponse struct {
	ID                  int64   `json:"id"`
	RouteID             int64   `json:"route_id"`
	StopName            string  `json:"stop_name"`
	StopOrder           int     `json:"stop_order"`
	DistanceFromStartKm float64 `json:"distance_from_start_km"`
	FareFromStart       float64 `json:"fare_from_start"`
}

func stopResponse(stop *domain.RouteStop) StopResponse {
	return StopResponse{
		ID:                  stop.ID,
		RouteID:             stop.RouteID,
		StopName:            stop.StopName,
		StopOrder:           stop.StopOrder,
		DistanceFromStartKm: stop.DistanceFromStartKm,
		FareFromStart:       stop.FareFromStart,
	}
}

// AddStop handles POST /v1/admin/routes/:id/stops
func (h *RouteHandler) AddStop(c *gin.Context) {
	routeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidRouteID)
		return
	}

	var req AddStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	stop, err := h.routeService.AddStop(c.Request.Context(), service.AddStopRequest{
		RouteID:             routeID,
		StopName:            req.StopName,
		StopOrder:           req.StopOrder,
		DistanceFromStartKm: req.DistanceFromStartKm,
		FareFromStart:       req.FareFromStart,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, stopResponse(stop))
}

// GetStops handles GET /v1/routes/:id/stops
func (h *RouteHandler) GetStops(c *gin.Context) {
	routeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidRouteID)
		return
	}

	stops, err := h.routeService.ListStops(c.Request.Context(), routeID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]StopResponse, 0, len(stops))
	for _, stop := range stops {
		response = append(response, stopResponse(stop))
	}
	respondJSON(c, http.StatusOK, response)
}

// DeleteStop handles DELETE /v1/admin/routes/:id/stops/:stopID
func (h *RouteHandler) DeleteStop(c *gin.Context) {
	routeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidRouteID)
		return
	}
	stopID, err := pathID(c, "stopID")
	if err != nil {
		respondError(c, service.ErrInvalidRouteID)
		return
	}

	if err := h.routeService.RemoveStop(c.Request.Context(), routeID, stopID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AssignDriverRequest is the HTTP request body for assigning a driver.
type AssignDriverRequest struct {
	DriverID int64 `json:"driver_id" binding:"required,gt=0"`
}

// AssignVehicleRequest is the HTTP request body for assigning a vehicle.
type AssignVehicleRequest struct {
	VehicleID int64 `json:"vehicle_id" binding:"required,gt=0"`
}

// AssignDriver handles PUT /v1/admin/routes/:id/driver
func (h *RouteHandler) AssignDriver(c *gin.Context) {
	routeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidRouteID)
		return
	}

	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	route, err := h.assignmentService.AssignDriverToRoute(c.Request.Context(), routeID, req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, routeResponse(route))
}

// AssignVehicle handles PUT /v1/admin/routes/:id/vehicle
func (h *RouteHandler) AssignVehicle(c *gin.Context) {
	routeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidRouteID)
		return
	}

	var req AssignVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	route, err := h.assignmentService.AssignVehicleToRoute(c.Request.Context(), routeID, req.VehicleID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, routeResponse(route))
}

// pathID parses a positive int64 path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
