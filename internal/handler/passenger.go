package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"transit/internal/middleware"
	"transit/internal/service"
)

// PassengerHandler handles HTTP requests for the passenger surface beyond
// tickets: notifications, loyalty, reviews and nearby vehicles.
type PassengerHandler struct {
	notificationService *service.NotificationService
	loyaltyService      *service.LoyaltyService
	reviewService       *service.ReviewService
	trackingService     *service.TrackingService
}

// NewPassengerHandler creates a new PassengerHandler.
func NewPassengerHandler(
	notificationService *service.NotificationService,
	loyaltyService *service.LoyaltyService,
	reviewService *service.ReviewService,
	trackingService *service.TrackingService,
) *PassengerHandler {
	return &PassengerHandler{
		notificationService: notificationService,
		loyaltyService:      loyaltyService,
		reviewService:       reviewService,
		trackingService:     trackingService,
	}
}

// NotificationResponse is the HTTP view of an inbox row.
type NotificationResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// Notifications handles GET /v1/passenger/notifications
func (h *PassengerHandler) Notifications(c *gin.Context) {
	notifications, err := h.notificationService.Inbox(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	respondJSON(c, http.StatusOK, response)
}

// LoyaltyResponse is the HTTP view of a loyalty account.
type LoyaltyResponse struct {
	UserID int64 `json:"user_id"`
	Points int64 `json:"points"`
}

// Loyalty handles GET /v1/passenger/loyalty
func (h *PassengerHandler) Loyalty(c *gin.Context) {
	account, err := h.loyaltyService.Balance(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, LoyaltyResponse{
		UserID: account.UserID,
		Points: account.Points,
	})
}

// CreateReviewRequest is the HTTP request body for posting a review.
type CreateReviewRequest struct {
	RouteID int64  `json:"route_id" binding:"required,gt=0"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ReviewResponse is the HTTP view of a review.
type ReviewResponse struct {
	ID        int64  `json:"id"`
	RouteID   int64  `json:"route_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

// CreateReview handles POST /v1/passenger/reviews
func (h *PassengerHandler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), service.CreateReviewRequest{
		UserID:  middleware.UserID(c),
		RouteID: req.RouteID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, ReviewResponse{
		ID:        review.ID,
		RouteID:   review.RouteID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
	})
}

// RouteReviews handles GET /v1/routes/:id/reviews
func (h *PassengerHandler) RouteReviews(c *gin.Context) {
	routeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, service.ErrInvalidRouteID)
		return
	}

	reviews, err := h.reviewService.ListByRoute(c.Request.Context(), routeID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		response = append(response, ReviewResponse{
			ID:        review.ID,
			RouteID:   review.RouteID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt.Format(time.RFC3339),
		})
	}
	respondJSON(c, http.StatusOK, response)
}

// NearbyVehicleResponse is the HTTP view of a vehicle position.
type NearbyVehicleResponse struct {
	VehicleID int64   `json:"vehicle_id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// NearbyVehicles handles GET /v1/passenger/vehicles/nearby
func (h *PassengerHandler) NearbyVehicles(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondError(c, service.ErrInvalidLocation)
		return
	}

	radiusKm, _ := strconv.ParseFloat(c.Query("radius_km"), 64)

	locations, err := h.trackingService.Nearby(c.Request.Context(), lat, lng, radiusKm)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]NearbyVehicleResponse, 0, len(locations))
	for _, loc := range locations {
		response = append(response, NearbyVehicleResponse{
			VehicleID: loc.VehicleID,
			Lat:       loc.Lat,
			Lng:       loc.Lng,
		})
	}
	respondJSON(c, http.StatusOK, response)
}
