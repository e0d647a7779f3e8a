package tests

import (
	"context"
	"errors"
	"testing"

	"transit/internal/domain"
	"transit/internal/service"
)

// ──────────────────────────────────────────────
// 1. FARE RESOLUTION
// ──────────────────────────────────────────────

func newFareFixture() (*service.FareService, *MockRouteRepository, *MockRouteStopRepository) {
	routeRepo := NewMockRouteRepository()
	stopRepo := NewMockRouteStopRepository()

	routeRepo.AddRoute(&domain.Route{
		ID:            1,
		Name:          "Kigali - Huye",
		StartLocation: "Kigali",
		EndLocation:   "Huye",
		BaseFare:      3000,
	})

	// Three stops: S1 at the start, S2 mid-way, S3 at the end.
	stopRepo.AddStop(&domain.RouteStop{ID: 10, RouteID: 1, StopName: "Nyabugogo", StopOrder: 1, DistanceFromStartKm: 0, FareFromStart: 0})
	stopRepo.AddStop(&domain.RouteStop{ID: 11, RouteID: 1, StopName: "Muhanga", StopOrder: 2, DistanceFromStartKm: 45, FareFromStart: 1200})
	stopRepo.AddStop(&domain.RouteStop{ID: 12, RouteID: 1, StopName: "Huye Town", StopOrder: 3, DistanceFromStartKm: 133, FareFromStart: 3000})

	return service.NewFareService(routeRepo, stopRepo, nil), routeRepo, stopRepo
}

func TestFare_WholeRouteUsesBaseFare(t *testing.T) {
	t.Parallel()

	fareService, _, _ := newFareFixture()

	quote, err := fareService.Resolve(context.Background(), 1, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Amount != 3000 {
		t.Errorf("expected base fare 3000, got %.0f", quote.Amount)
	}
	if quote.StopBased {
		t.Error("whole-route quote should not be stop based")
	}
	if quote.StartLocation != "Kigali" || quote.EndLocation != "Huye" {
		t.Errorf("expected route endpoints, got %s - %s", quote.StartLocation, quote.EndLocation)
	}
}

func TestFare_StopPairUsesCumulativeDifference(t *testing.T) {
	t.Parallel()

	fareService, _, _ := newFareFixture()

	quote, err := fareService.Resolve(context.Background(), 1, 10, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Amount != 1200 {
		t.Errorf("expected segment fare 1200, got %.0f", quote.Amount)
	}
	if !quote.StopBased {
		t.Error("expected a stop-based quote")
	}
	if quote.DistanceKm != 45 {
		t.Errorf("expected segment distance 45, got %.0f", quote.DistanceKm)
	}
}

func TestFare_StopPairOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	fareService, _, _ := newFareFixture()
	ctx := context.Background()

	forward, err := fareService.Resolve(ctx, 1, 11, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backward, err := fareService.Resolve(ctx, 1, 12, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if forward.Amount != backward.Amount {
		t.Errorf("fare must be symmetric: %.0f vs %.0f", forward.Amount, backward.Amount)
	}
	if forward.Amount != 1800 {
		t.Errorf("expected segment fare 1800, got %.0f", forward.Amount)
	}
	if forward.Amount < 0 {
		t.Error("fare must never be negative")
	}
}

func TestFare_StopNamesPreferredOverRouteEndpoints(t *testing.T) {
	t.Parallel()

	fareService, _, _ := newFareFixture()

	quote, err := fareService.Resolve(context.Background(), 1, 10, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.StartLocation != "Nyabugogo" {
		t.Errorf("expected stop name Nyabugogo, got %s", quote.StartLocation)
	}
	if quote.EndLocation != "Muhanga" {
		t.Errorf("expected stop name Muhanga, got %s", quote.EndLocation)
	}
}

func TestFare_UnknownStopFallsBackToBaseFare(t *testing.T) {
	t.Parallel()

	fareService, _, _ := newFareFixture()

	// Stop 99 does not exist on the route.
	quote, err := fareService.Resolve(context.Background(), 1, 10, 99)
	if err != nil {
		t.Fatalf("fallback must not surface an error, got: %v", err)
	}

	if quote.Amount != 3000 {
		t.Errorf("expected base fare fallback 3000, got %.0f", quote.Amount)
	}
	if quote.StopBased {
		t.Error("fallback quote should not be stop based")
	}
}

func TestFare_StopStorageFailureFallsBackToBaseFare(t *testing.T) {
	t.Parallel()

	fareService, _, stopRepo := newFareFixture()
	stopRepo.GetPairError = errors.New("connection reset")

	quote, err := fareService.Resolve(context.Background(), 1, 10, 11)
	if err != nil {
		t.Fatalf("fallback must not surface an error, got: %v", err)
	}

	if quote.Amount != 3000 {
		t.Errorf("expected base fare fallback 3000, got %.0f", quote.Amount)
	}
}

func TestFare_SameStopTwiceUsesBaseFare(t *testing.T) {
	t.Parallel()

	fareService, _, _ := newFareFixture()

	quote, err := fareService.Resolve(context.Background(), 1, 11, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Amount != 3000 {
		t.Errorf("expected base fare 3000, got %.0f", quote.Amount)
	}
}

func TestFare_MissingRouteIsAHardError(t *testing.T) {
	t.Parallel()

	fareService, _, _ := newFareFixture()

	if _, err := fareService.Resolve(context.Background(), 42, 0, 0); err == nil {
		t.Fatal("expected an error for a missing route")
	}
}

func TestFare_InvalidRouteIDRejected(t *testing.T) {
	t.Parallel()

	fareService, _, _ := newFareFixture()

	if _, err := fareService.Resolve(context.Background(), 0, 0, 0); !errors.Is(err, service.ErrInvalidRouteID) {
		t.Fatalf("expected ErrInvalidRouteID, got %v", err)
	}
}
