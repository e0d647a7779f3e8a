package service

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"transit/internal/domain"
	internalRedis "transit/internal/redis"
	"transit/internal/repository"
)

// TrackingService handles vehicle GPS updates and the best-effort broadcast
// to passengers currently travelling on the vehicle.
type TrackingService struct {
	locationStore       internalRedis.LocationStoreInterface
	ticketRepo          repository.TicketRepository
	notificationService *NotificationService
}

// NewTrackingService creates a new TrackingService.
func NewTrackingService(
	locationStore internalRedis.LocationStoreInterface,
	ticketRepo repository.TicketRepository,
	notificationService *NotificationService,
) *TrackingService {
	return &TrackingService{
		locationStore:       locationStore,
		ticketRepo:          ticketRepo,
		notificationService: notificationService,
	}
}

// UpdateLocationRequest contains the parameters for a GPS update.
type UpdateLocationRequest struct {
	VehicleID int64
	Lat       float64
	Lng       float64
}

// BroadcastResult reports how many in-progress passengers heard about a
// location change.
type BroadcastResult struct {
	PassengersNotified int
}

// UpdateLocation stores the vehicle's position and fans a location
// notification out to every passenger in progress on it. The fan-out is
// best effort: one passenger failing to resolve is logged and skipped, never
// escalated.
func (s *TrackingService) UpdateLocation(ctx context.Context, req UpdateLocationRequest) (*BroadcastResult, error) {
	if req.VehicleID <= 0 {
		return nil, ErrInvalidVehicleID
	}
	if !isValidLatitude(req.Lat) || !isValidLongitude(req.Lng) {
		return nil, ErrInvalidLocation
	}

	if err := s.locationStore.UpdateLocation(ctx, req.VehicleID, req.Lat, req.Lng); err != nil {
		return nil, err
	}

	tickets, err := s.ticketRepo.InProgressByVehicle(ctx, req.VehicleID)
	if err != nil {
		// The position is stored; the broadcast is a bonus.
		log.Printf("tracking: in-progress tickets for vehicle %d unavailable: %v", req.VehicleID, err)
		return &BroadcastResult{}, nil
	}

	var notified int32
	var wg sync.WaitGroup
	for _, ticket := range tickets {
		if s.notificationService == nil {
			break
		}
		wg.Add(1)
		go func(ticket *domain.Ticket) {
			defer wg.Done()
			passenger, err := s.notificationService.ResolvePassenger(ctx, ticket)
			if err != nil {
				log.Printf("tracking: passenger for ticket %d unresolved: %v", ticket.ID, err)
				return
			}
			if err := s.notificationService.NotifyLocationUpdate(ctx, passenger.ID, req.VehicleID, req.Lat, req.Lng); err != nil {
				log.Printf("tracking: location notification for user %d failed: %v", passenger.ID, err)
				return
			}
			atomic.AddInt32(&notified, 1)
		}(ticket)
	}
	wg.Wait()

	return &BroadcastResult{PassengersNotified: int(notified)}, nil
}

// Nearby returns the vehicles within radiusKm of a point, closest first.
func (s *TrackingService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]internalRedis.VehicleLocation, error) {
	if !isValidLatitude(lat) || !isValidLongitude(lng) {
		return nil, ErrInvalidLocation
	}
	if radiusKm <= 0 {
		radiusKm = 5
	}
	return s.locationStore.FindNearbyVehicles(ctx, lat, lng, radiusKm)
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
