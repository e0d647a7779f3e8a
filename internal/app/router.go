package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"transit/internal/domain"
	"transit/internal/handler"
	"transit/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler      *handler.AuthHandler
	RouteHandler     *handler.RouteHandler
	VehicleHandler   *handler.VehicleHandler
	DriverHandler    *handler.DriverHandler
	TicketHandler    *handler.TicketHandler
	BoardingHandler  *handler.BoardingHandler
	PassengerHandler *handler.PassengerHandler
	RedisClient      *redis.Client
	NewRelicApp      *newrelic.Application
	JWTSecret        string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Public auth routes.
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", deps.AuthHandler.Register)
			authGroup.POST("/login", deps.AuthHandler.Login)
		}

		// Public route catalog.
		routes := v1.Group("/routes")
		{
			routes.GET("", deps.RouteHandler.GetAll)
			routes.GET("/:id", deps.RouteHandler.GetRoute)
			routes.GET("/:id/stops", deps.RouteHandler.GetStops)
			routes.GET("/:id/reviews", deps.PassengerHandler.RouteReviews)
		}

		authenticated := v1.Group("")
		authenticated.Use(middleware.Authenticate(deps.JWTSecret))

		// Admin routes.
		admin := authenticated.Group("/admin")
		admin.Use(middleware.RequireRole(domain.RoleAdmin))
		{
			admin.POST("/routes", deps.RouteHandler.CreateRoute)
			admin.POST("/routes/:id/stops", deps.RouteHandler.AddStop)
			admin.DELETE("/routes/:id/stops/:stopID", deps.RouteHandler.DeleteStop)
			admin.PUT("/routes/:id/driver", deps.RouteHandler.AssignDriver)
			admin.PUT("/routes/:id/vehicle", deps.RouteHandler.AssignVehicle)

			admin.POST("/vehicles", deps.VehicleHandler.Create)
			admin.GET("/vehicles", deps.VehicleHandler.GetAll)
			admin.PUT("/vehicles/:id/driver", deps.VehicleHandler.AssignDriver)

			admin.POST("/drivers", deps.DriverHandler.Create)
			admin.GET("/drivers", deps.DriverHandler.GetAll)
		}

		// Passenger routes.
		passenger := authenticated.Group("/passenger")
		passenger.Use(middleware.RequireRole(domain.RolePassenger))
		{
			passenger.POST("/tickets", deps.TicketHandler.Book)
			passenger.POST("/tickets/:id/pay", deps.TicketHandler.Pay)
			passenger.GET("/tickets", deps.TicketHandler.MyTickets)

			passenger.GET("/notifications", deps.PassengerHandler.Notifications)
			passenger.GET("/loyalty", deps.PassengerHandler.Loyalty)
			passenger.POST("/reviews", deps.PassengerHandler.CreateReview)
			passenger.GET("/vehicles/nearby", deps.PassengerHandler.NearbyVehicles)
		}

		// Driver routes.
		driver := authenticated.Group("/driver")
		driver.Use(middleware.RequireRole(domain.RoleDriver))
		{
			driver.POST("/tickets/scan", deps.BoardingHandler.ScanTicket)
			driver.POST("/tickets/:id/board", deps.BoardingHandler.ConfirmBoarding)
			driver.POST("/vehicles/:id/start", deps.BoardingHandler.StartJourney)
			driver.PUT("/vehicles/:id/location", deps.BoardingHandler.UpdateLocation)
		}
	}

	return router
}
