package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"transit/internal/auth"
	"transit/internal/domain"
	"transit/internal/service"
)

// ──────────────────────────────────────────────
// 6. ACCOUNTS AND ACCESS TOKENS
// ──────────────────────────────────────────────

func TestRegister_HashesPasswordAndDefaultsToPassenger(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userService := service.NewUserService(userRepo, 4)

	user, err := userService.Register(context.Background(), service.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret123",
		Role:     "admin", // must not be honored
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Role != domain.RolePassenger {
		t.Errorf("self-registration must not grant %s", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email should be normalized, got %s", user.Email)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userService := service.NewUserService(userRepo, 4)
	ctx := context.Background()

	if _, err := userService.Register(ctx, service.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := userService.Register(ctx, service.RegisterRequest{
		Name: "Impostor", Email: "alice@example.com", Password: "other456",
	}); !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthenticate_RoundTrip(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userService := service.NewUserService(userRepo, 4)
	ctx := context.Background()

	registered, err := userService.Register(ctx, service.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := userService.Authenticate(ctx, "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %d, got %d", registered.ID, user.ID)
	}

	if _, err := userService.Authenticate(ctx, "alice@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := userService.Authenticate(ctx, "nobody@example.com", "secret123"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	token, err := auth.NewAccessToken("test-secret", 42, domain.RoleDriver, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := auth.ParseAccessToken("test-secret", token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user 42, got %d", claims.UserID)
	}
	if claims.Role != domain.RoleDriver {
		t.Errorf("expected driver role, got %s", claims.Role)
	}
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	token, err := auth.NewAccessToken("test-secret", 42, domain.RolePassenger, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := auth.ParseAccessToken("other-secret", token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAccessToken_ExpiredRejected(t *testing.T) {
	t.Parallel()

	token, err := auth.NewAccessToken("test-secret", 42, domain.RolePassenger, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := auth.ParseAccessToken("test-secret", token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for an expired token, got %v", err)
	}
}

// ──────────────────────────────────────────────
// REVIEWS
// ──────────────────────────────────────────────

func TestReview_RatingBoundsEnforced(t *testing.T) {
	t.Parallel()

	reviewRepo := NewMockReviewRepository()
	routeRepo := NewMockRouteRepository()
	routeRepo.AddRoute(&domain.Route{ID: 1})
	reviewService := service.NewReviewService(reviewRepo, routeRepo)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		if _, err := reviewService.Create(ctx, service.CreateReviewRequest{
			UserID: 5, RouteID: 1, Rating: rating,
		}); !errors.Is(err, service.ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}

	review, err := reviewService.Create(ctx, service.CreateReviewRequest{
		UserID: 5, RouteID: 1, Rating: 5, Comment: "Smooth ride",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.ID == 0 {
		t.Error("expected a generated review id")
	}

	reviews, err := reviewService.ListByRoute(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reviews) != 1 {
		t.Errorf("expected 1 review, got %d", len(reviews))
	}
}

func TestReview_UnknownRouteRejected(t *testing.T) {
	t.Parallel()

	reviewService := service.NewReviewService(NewMockReviewRepository(), NewMockRouteRepository())

	if _, err := reviewService.Create(context.Background(), service.CreateReviewRequest{
		UserID: 5, RouteID: 42, Rating: 4,
	}); err == nil {
		t.Fatal("expected an error for an unknown route")
	}
}
