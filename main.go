package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"questbook/config"
	"questbook/database"
	bookingRepoPkg "questbook/database/repository/booking"
	locationRepoPkg "questbook/database/repository/location"
	statsRepoPkg "questbook/database/repository/stats"
	userRepoPkg "questbook/database/repository/user"
	"questbook/handlers"
	"questbook/middleware"
	"questbook/routes"
	"questbook/services/availability"
	"questbook/services/booking"
	"questbook/services/mail"
	"questbook/services/stats"
	"questbook/services/user"
	"questbook/utils"
	"questbook/workers"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	workers.InitMailWorker()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	locationRepo := locationRepoPkg.NewMongoLocationRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	statsRepo := statsRepoPkg.NewMongoGameStatsRepo()

	// services.
	mailer := mail.NewAsynqMailer()

	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Bookings: bookingRepo,
		Mailer:   mailer,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:      bookingRepo,
		Locations: locationRepo,
		Users:     userRepo,
		Mailer:    mailer,
	}
	statsService := &stats.DefaultStatsService{
		Repo:     statsRepo,
		Bookings: bookingRepo,
	}
	availabilityEngine := availability.NewEngine(locationRepo, bookingRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:      handlers.NewAuthHandler(userService),
		Users:     handlers.NewUserHandler(userService),
		Locations: handlers.NewLocationHandler(locationRepo, availabilityEngine),
		Bookings:  handlers.NewBookingHandler(bookingService, availabilityEngine),
		Stats:     handlers.NewStatsHandler(statsService),
		Admin:     handlers.NewAdminHandler(userService, bookingService),
		UserRepo:  userRepo,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := mailer.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close mail client: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
