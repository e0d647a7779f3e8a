package service

import (
	"context"
	"log"
	"math"

	internalRedis "transit/internal/redis"
	"transit/internal/repository"

	"transit/internal/domain"
)

// FareService computes the amount a passenger owes for a journey on a route,
// either the route's flat base fare or a stop-to-stop sub-segment price.
type FareService struct {
	routeRepo  repository.RouteRepository
	stopRepo   repository.RouteStopRepository
	routeCache internalRedis.RouteCacheInterface
}

// NewFareService creates a new FareService. routeCache may be nil.
func NewFareService(
	routeRepo repository.RouteRepository,
	stopRepo repository.RouteStopRepository,
	routeCache internalRedis.RouteCacheInterface,
) *FareService {
	return &FareService{
		routeRepo:  routeRepo,
		stopRepo:   stopRepo,
		routeCache: routeCache,
	}
}

// FareQuote is the result of resolving a fare.
type FareQuote struct {
	Amount        float64
	DistanceKm    float64
	StartLocation string
	EndLocation   string
	StopBased     bool
}

// Resolve computes the fare for a journey on routeID. Stop ids of 0 mean the
// whole route. A booking must always get some fare: when the stop pair
// cannot be resolved the route's base fare is charged instead of failing.
// Only a missing route (or a storage error fetching it) is a hard error.
func (s *FareService) Resolve(ctx context.Context, routeID, startStopID, endStopID int64) (*FareQuote, error) {
	if routeID <= 0 {
		return nil, ErrInvalidRouteID
	}

	route, err := s.lookupRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}

	if startStopID <= 0 || endStopID <= 0 || startStopID == endStopID {
		return baseFareQuote(route), nil
	}

	quote, err := s.resolveStopPair(ctx, route, startStopID, endStopID)
	if err != nil {
		// Availability over precision: charge the base fare rather than
		// blocking the booking.
		log.Printf("fare: stop pair (%d, %d) on route %d unresolved, falling back to base fare: %v",
			startStopID, endStopID, routeID, err)
		return baseFareQuote(route), nil
	}
	return quote, nil
}

// resolveStopPair prices the segment between two stops of the route. The
// caller's argument order is irrelevant: stops are normalized by stop_order
// so the fare is the absolute progress along the route.
func (s *FareService) resolveStopPair(ctx context.Context, route *domain.Route, startStopID, endStopID int64) (*FareQuote, error) {
	stops, err := s.stopRepo.GetPair(ctx, route.ID, startStopID, endStopID)
	if err != nil {
		return nil, err
	}
	if len(stops) != 2 || stops[0].ID == stops[1].ID {
		return nil, ErrInvalidStopPair
	}

	// GetPair orders by stop_order, so stops[0] is the earlier point.
	earlier, later := stops[0], stops[1]

	return &FareQuote{
		Amount:        math.Abs(later.FareFromStart - earlier.FareFromStart),
		DistanceKm:    math.Abs(later.DistanceFromStartKm - earlier.DistanceFromStartKm),
		StartLocation: earlier.StopName,
		EndLocation:   later.StopName,
		StopBased:     true,
	}, nil
}

func (s *FareService) lookupRoute(ctx context.Context, routeID int64) (*domain.Route, error) {
	if s.routeCache != nil {
		cached, err := s.routeCache.GetRoute(ctx, routeID)
		if err == nil && cached != nil {
			return &domain.Route{
				ID:            cached.ID,
				Name:          cached.Name,
				StartLocation: cached.StartLocation,
				EndLocation:   cached.EndLocation,
				BaseFare:      cached.BaseFare,
			}, nil
		}
	}

	route, err := s.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}

	if s.routeCache != nil {
		_ = s.routeCache.SetRoute(ctx, &internalRedis.CachedRoute{
			ID:            route.ID,
			Name:          route.Name,
			StartLocation: route.StartLocation,
			EndLocation:   route.EndLocation,
			BaseFare:      route.BaseFare,
		})
	}
	return route, nil
}

func baseFareQuote(route *domain.Route) *FareQuote {
	return &FareQuote{
		Amount:        route.BaseFare,
		StartLocation: route.StartLocation,
		EndLocation:   route.EndLocation,
	}
}
