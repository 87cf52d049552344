// File: bookify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"bookify/api"
	"bookify/config"
	"bookify/cron"
	"bookify/database"
	orderRepoPkg "bookify/database/repository/order"
	"bookify/handlers"
	"bookify/middleware"
	"bookify/routes"
	"bookify/services"
	"bookify/services/booking"
	"bookify/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// Upstream plugin API client and repositories.
	client := api.NewClient()
	serviceRepo := api.NewServiceRepo(client)
	employeeRepo := api.NewEmployeeRepo(client)
	locationRepo := api.NewLocationRepo(client)
	couponRepo := api.NewCouponRepo(client)
	scheduleRepo := api.NewScheduleRepo(client)
	reservationRepo := api.NewReservationRepo(client)
	orderRepo := orderRepoPkg.NewMongoOrderRepo()

	loader := services.NewAvailabilityLoader(client, utils.GetCacheClient())
	slotService := services.NewSlotService(serviceRepo, employeeRepo, scheduleRepo, reservationRepo)
	sessions := booking.NewSessionStore(utils.GetSessionCacheClient())

	deps := booking.WizardDeps{
		Loader:    loader,
		Client:    client,
		Services:  serviceRepo,
		Employees: employeeRepo,
		Locations: locationRepo,
		Coupons:   couponRepo,
		Orders:    orderRepo,
		Payments:  booking.NewStripePaymentHandler(logger),
		Reminders: cron.NewReminderScheduler(),
	}

	bookingHandler := handlers.NewBookingHandler(sessions, deps)
	availabilityHandler := handlers.NewAvailabilityHandler(loader, client, slotService)

	routes.RegisterRoutes(router, bookingHandler, availabilityHandler)

	// Background reminder worker.
	cron.InitReminderWorker()

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

	logger.Sugar().Info("main: server stopped gracefully")
}
