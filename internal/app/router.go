package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ecoruta/internal/handler"
	"ecoruta/internal/middleware"
	"ecoruta/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthService    *service.AuthService
	AuthHandler    *handler.AuthHandler
	TripHandler    *handler.TripHandler
	PaymentHandler *handler.PaymentHandler
	HistoryHandler *handler.HistoryHandler
	NavHandler     *handler.NavHandler
	PlaceHandler   *handler.PlaceHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes (no session required).
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", deps.AuthHandler.SignUp)
			auth.POST("/signin", deps.AuthHandler.SignIn)
		}

		// Everything else requires a live session.
		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(deps.AuthService))
		{
			authed.POST("/auth/signout", deps.AuthHandler.SignOut)

			profile := authed.Group("/profile")
			{
				profile.GET("", deps.AuthHandler.Profile)
				profile.PUT("", deps.AuthHandler.UpdateProfile)
			}

			trips := authed.Group("/trips")
			{
				trips.POST("/confirm", deps.TripHandler.Confirm)
				trips.GET("/status", deps.TripHandler.Status)
				trips.POST("/cancel", deps.TripHandler.Cancel)
				trips.POST("/emergency-cancel", deps.TripHandler.EmergencyCancel)
			}

			authed.GET("/fares/quote", deps.TripHandler.Quote)

			payments := authed.Group("/payments")
			{
				payments.POST("/validate", deps.PaymentHandler.Validate)
				payments.GET("/banks", deps.PaymentHandler.Banks)
				payments.GET("", deps.PaymentHandler.List)
				payments.GET("/last-method", deps.PaymentHandler.LastMethod)
			}

			history := authed.Group("/history")
			{
				history.GET("", deps.HistoryHandler.List)
				history.GET("/routes", deps.HistoryHandler.Routes)
			}

			navigation := authed.Group("/navigation")
			{
				navigation.GET("/current", deps.NavHandler.Current)
				navigation.POST("/navigate", deps.NavHandler.Navigate)
			}

			places := authed.Group("/places")
			{
				places.GET("/suggestions", deps.PlaceHandler.Suggestions)
				places.GET("/reverse", deps.PlaceHandler.ReverseGeocode)
			}
		}
	}

	return router
}
