package service

import (
	"context"
	"log"
	"time"

	"transit/internal/domain"
	internalRedis "transit/internal/redis"
	"transit/internal/repository"
)

// RouteService handles route and stop administration.
type RouteService struct {
	routeRepo  repository.RouteRepository
	stopRepo   repository.RouteStopRepository
	routeCache internalRedis.RouteCacheInterface
}

// NewRouteService creates a new RouteService. routeCache may be nil.
func NewRouteService(
	routeRepo repository.RouteRepository,
	stopRepo repository.RouteStopRepository,
	routeCache internalRedis.RouteCacheInterface,
) *RouteService {
	return &RouteService{
		routeRepo:  routeRepo,
		stopRepo:   stopRepo,
		routeCache: routeCache,
	}
}

// CreateRouteRequest contains the parameters for creating a route.
type CreateRouteRequest struct {
	Name           string
	StartLocation  string
	EndLocation    string
	BaseFare       float64
	CompanyID      int64
	ScheduledStart time.Time
}

// Create stores a new route.
func (s *RouteService) Create(ctx context.Context, req CreateRouteRequest) (*domain.Route, error) {
	route := &domain.Route{
		Name:           req.Name,
		StartLocation:  req.StartLocation,
		EndLocation:    req.EndLocation,
		BaseFare:       req.BaseFare,
		CompanyID:      req.CompanyID,
		ScheduledStart: req.ScheduledStart,
	}
	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// Get retrieves a route by id.
func (s *RouteService) Get(ctx context.Context, routeID int64) (*domain.Route, error) {
	if routeID <= 0 {
		return nil, ErrInvalidRouteID
	}
	return s.routeRepo.GetByID(ctx, routeID)
}

// List retrieves all routes.
func (s *RouteService) List(ctx context.Context) ([]*domain.Route, error) {
	return s.routeRepo.GetAll(ctx)
}

// AddStopRequest contains the parameters for adding a stop to a route.
type AddStopRequest struct {
	RouteID             int64
	StopName            string
	StopOrder           int
	DistanceFromStartKm float64
	FareFromStart       float64
}

// AddStop appends a stop to a route and invalidates the cached route so the
// fare resolver sees the change.
func (s *RouteService) AddStop(ctx context.Context, req AddStopRequest) (*domain.RouteStop, error) {
	if req.RouteID <= 0 {
		return nil, ErrInvalidRouteID
	}

	if _, err := s.routeRepo.GetByID(ctx, req.RouteID); err != nil {
		return nil, err
	}

	stop := &domain.RouteStop{
		RouteID:             req.RouteID,
		StopName:            req.StopName,
		StopOrder:           req.StopOrder,
		DistanceFromStartKm: req.DistanceFromStartKm,
		FareFromStart:       req.FareFromStart,
	}
	if err := s.stopRepo.Create(ctx, stop); err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.RouteID)
	return stop, nil
}

// ListStops retrieves the stops of a route in traversal order.
func (s *RouteService) ListStops(ctx context.Context, routeID int64) ([]*domain.RouteStop, error) {
	if routeID <= 0 {
		return nil, ErrInvalidRouteID
	}
	return s.stopRepo.GetByRoute(ctx, routeID)
}

// RemoveStop deletes a stop from a route and invalidates the cached route.
func (s *RouteService) RemoveStop(ctx context.Context, routeID, stopID int64) error {
	if routeID <= 0 {
		return ErrInvalidRouteID
	}
	if err := s.stopRepo.Delete(ctx, routeID, stopID); err != nil {
		return err
	}
	s.invalidate(ctx, routeID)
	return nil
}

func (s *RouteService) invalidate(ctx context.Context, routeID int64) {
	if s.routeCache == nil {
		return
	}
	if err := s.routeCache.InvalidateRoute(ctx, routeID); err != nil {
		log.Printf("route: cache invalidation for route %d failed: %v", routeID, err)
	}
}
