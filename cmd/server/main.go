package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"transit/internal/app"
	"transit/internal/config"
	"transit/internal/handler"
	internalRedis "transit/internal/redis"
	"transit/internal/repository/postgres"
	"transit/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	if err := app.ValidateSchema(ctx, db); err != nil {
		log.Fatalf("schema validation failed: %v", err)
	}

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	locationStore := internalRedis.NewLocationStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	routeCache := internalRedis.NewRouteCache(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	routeRepo := postgres.NewRouteRepository(db)
	stopRepo := postgres.NewRouteStopRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	loyaltyRepo := postgres.NewLoyaltyRepository(db)

	// Initialize services.
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	fareService := service.NewFareService(routeRepo, stopRepo, routeCache)
	routeService := service.NewRouteService(routeRepo, stopRepo, routeCache)
	fleetService := service.NewFleetService(vehicleRepo, driverRepo, userRepo)
	assignmentService := service.NewAssignmentService(db, vehicleRepo, driverRepo, routeRepo, userRepo, notificationService)
	loyaltyService := service.NewLoyaltyService(loyaltyRepo)
	momo := service.NewMockMobileMoney()
	ticketService := service.NewTicketService(db, ticketRepo, fareService, notificationService, loyaltyService, momo, lockStore)
	trackingService := service.NewTrackingService(locationStore, ticketRepo, notificationService)
	reviewService := service.NewReviewService(reviewRepo, routeRepo)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(userService, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	routeHandler := handler.NewRouteHandler(routeService, assignmentService)
	vehicleHandler := handler.NewVehicleHandler(fleetService, assignmentService)
	driverHandler := handler.NewDriverHandler(fleetService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	boardingHandler := handler.NewBoardingHandler(ticketService, trackingService)
	passengerHandler := handler.NewPassengerHandler(notificationService, loyaltyService, reviewService, trackingService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:      authHandler,
		RouteHandler:     routeHandler,
		VehicleHandler:   vehicleHandler,
		DriverHandler:    driverHandler,
		TicketHandler:    ticketHandler,
		BoardingHandler:  boardingHandler,
		PassengerHandler: passengerHandler,
		RedisClient:      redisClient,
		NewRelicApp:      nrApp,
		JWTSecret:        cfg.Auth.JWTSecret,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
