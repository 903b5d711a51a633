package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-booking-backend/config"
	"hotel-booking-backend/controllers"
	"hotel-booking-backend/repositories"
	"hotel-booking-backend/routes"
	"hotel-booking-backend/services"
)

func main() {
	logger := config.GetLogger()

	// .env is optional; real deployments use environment variables.
	if err := godotenv.Load(); err != nil {
		logger.Info(".env not found, continuing with environment variables")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		logger.WithError(err).Fatal("database connect failed")
	}
	logger.Info("database connected and migrations applied")

	store := repositories.NewGormStore(db)

	settingsService := services.NewSettingsService(store)
	availabilityService := services.NewAvailabilityService(store)
	blockedDateService := services.NewBlockedDateService(store)
	bookingService := services.NewBookingService(store, availabilityService, settingsService)
	enquiryService := services.NewEnquiryService(store)
	paymentService := services.NewPaymentService(store, settingsService)
	roomService := services.NewRoomService(store)
	authService := services.NewAuthService(store)

	router := routes.SetupRouter(routes.Controllers{
		Auth:         controllers.NewAuthController(authService),
		Availability: controllers.NewAvailabilityController(availabilityService),
		BlockedDates: controllers.NewBlockedDateController(blockedDateService),
		Bookings:     controllers.NewBookingController(bookingService),
		Enquiries:    controllers.NewEnquiryController(enquiryService),
		Payments:     controllers.NewPaymentController(paymentService),
		Rooms:        controllers.NewRoomController(roomService),
		Settings:     controllers.NewSettingsController(settingsService),
	}, authService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.WithField("addr", addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("server forced to shutdown")
	}
	logger.Info("server stopped gracefully")
}
