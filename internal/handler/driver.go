package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transit/internal/domain"
	"transit/internal/service"
)

// DriverHandler handles HTTP requests for driver-profile administration.
type DriverHandler struct {
	fleetService *service.FleetService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(fleetService *service.FleetService) *DriverHandler {
	return &DriverHandler{fleetService: fleetService}
}

// CreateDriverRequest is the HTTP request body for creating a driver profile.
type CreateDriverRequest struct {
	UserID        int64  `json:"user_id" binding:"required,gt=0"`
	LicenseNumber string `json:"license_number" binding:"required"`
}

// DriverResponse is the HTTP response for driver operations.
type DriverResponse struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	LicenseNumber  string `json:"license_number"`
	Status         string `json:"status"`
	AssignedLineID int64  `json:"assigned_line_id,omitempty"`
}

func driverResponse(driver *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:             driver.ID,
		UserID:         driver.UserID,
		LicenseNumber:  driver.LicenseNumber,
		Status:         string(driver.Status),
		AssignedLineID: driver.AssignedLineID,
	}
}

// Create handles POST /v1/admin/drivers
func (h *DriverHandler) Create(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	driver, err := h.fleetService.CreateDriver(c.Request.Context(), service.CreateDriverRequest{
		UserID:        req.UserID,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, driverResponse(driver))
}

// GetAll handles GET /v1/admin/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers, err := h.fleetService.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, driver := range drivers {
		response = append(response, driverResponse(driver))
	}
	respondJSON(c, http.StatusOK, response)
}
