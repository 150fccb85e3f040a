package routes

import (
	"net/http"
	"time"

	"questbook/config"
	"questbook/handlers"
	"questbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and password recovery.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/forgot-password", hb.Auth.ForgotPasswordHandler)
		api.POST("/reset-password", hb.Auth.ResetPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.Auth.MeHandler)
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.GetProfileHandler)
		api.GET("/me/stats", hb.Users.GetUserStatsHandler)
		api.PATCH("/me", hb.Users.UpdateProfileHandler)
		api.POST("/me/onboarding", hb.Users.CompleteOnboardingHandler)
	}
}

// RegisterLocationRoutes registers the location catalog. Reads are public;
// writes require an admin.
func RegisterLocationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/locations")
	{
		api.GET("", hb.Locations.ListLocationsHandler)
		api.GET("/:locationId", hb.Locations.GetLocationHandler)
		api.GET("/:locationId/slots", hb.Locations.GetSlotsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		protected.Use(middleware.AdminOnlyMiddleware(hb.UserRepo))
		protected.POST("", hb.Locations.CreateLocationHandler)
		protected.PUT("/:locationId", hb.Locations.UpdateLocationHandler)
	}
}

// RegisterBookingRoutes sets up the reservation endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.Bookings.CreateBookingHandler)
		api.GET("", hb.Bookings.ListBookingsHandler)
		api.GET("/stats", hb.Bookings.BookingStatsHandler)
		api.DELETE("/:bookingId", hb.Bookings.CancelBookingHandler)
		api.GET("/locations/:locationId/slots", hb.Bookings.BookingSlotsHandler)
	}
}

// RegisterStatsRoutes registers game statistics endpoints. The save endpoint
// is called by the game server and stays open.
func RegisterStatsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/stats")
	{
		api.POST("", hb.Stats.SaveStatsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		protected.GET("/me", hb.Stats.UserSummaryHandler)
		protected.GET("/me/games", hb.Stats.UserHistoryHandler)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		admin.Use(middleware.AdminOnlyMiddleware(hb.UserRepo))
		admin.GET("/admin", hb.Stats.AdminReportHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		adminGroup.Use(middleware.AdminOnlyMiddleware(hb.UserRepo))
		adminGroup.GET("/users", hb.Admin.GetAllUsersHandler)
		adminGroup.GET("/bookings", hb.Admin.ListAllBookingsHandler)
		adminGroup.PATCH("/bookings/:bookingId/status", hb.Admin.UpdateBookingStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Questbook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterLocationRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterStatsRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
