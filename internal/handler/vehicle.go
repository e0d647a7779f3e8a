package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transit/internal/domain"
	"transit/internal/service"
)

// VehicleHandler handles HTTP requests for fleet administration.
type VehicleHandler struct {
	fleetService      *service.FleetService
	assignmentService *service.AssignmentService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(fleetService *service.FleetService, assignmentService *service.AssignmentService) *VehicleHandler {
	return &VehicleHandler{
		fleetService:      fleetService,
		assignmentService: assignmentService,
	}
}

// CreateVehicleRequest is the HTTP request body for registering a vehicle.
type CreateVehicleRequest struct {
	PlateNumber string `json:"plate_number" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	Status      string `json:"status"`
}

// VehicleResponse is the HTTP response for vehicle operations.
type VehicleResponse struct {
	ID               int64  `json:"id"`
	PlateNumber      string `json:"plate_number"`
	Capacity         int    `json:"capacity"`
	Status           string `json:"status"`
	AssignedDriverID int64  `json:"assigned_driver_id,omitempty"`
	AssignedRouteID  int64  `json:"assigned_route_id,omitempty"`
}

func vehicleResponse(vehicle *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:               vehicle.ID,
		PlateNumber:      vehicle.PlateNumber,
		Capacity:         vehicle.Capacity,
		Status:           string(vehicle.Status),
		AssignedDriverID: vehicle.AssignedDriverID,
		AssignedRouteID:  vehicle.AssignedRouteID,
	}
}

// Create handles POST /v1/admin/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	vehicle, err := h.fleetService.CreateVehicle(c.Request.Context(), service.CreateVehicleRequest{
		PlateNumber: req.PlateNumber,
		Capacity:    req.Capacity,
		Status:      domain.VehicleStatus(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, vehicleResponse(vehicle))
}

// GetAll handles GET /v1/admin/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	vehicles, err := h.fleetService.ListVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		response = append(response, vehicleResponse(vehicle))
	}
	respondJSON(c, http.StatusOK, response)
}

// AssignDriver handles PUT /v1/admin/vehicles/:id/driver
func (h *VehicleHandler) AssignDriver(c *gin.Context) {
	vehicleID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidVehicleID)
		return
	}

	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	vehicle, err := h.assignmentService.AssignDriverToVehicle(c.Request.Context(), vehicleID, req.DriverID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, vehicleResponse(vehicle))
}
