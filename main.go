// File: bookify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookify/config"
	"bookify/cron"
	"bookify/database"
	apptRepoPkg "bookify/database/repository/appointment"
	notificationRepoPkg "bookify/database/repository/notification"
	profileRepoPkg "bookify/database/repository/profile"
	reviewRepoPkg "bookify/database/repository/review"
	slotRepoPkg "bookify/database/repository/slot"
	"bookify/handlers"
	"bookify/middleware"
	"bookify/routes"
	bookingSvc "bookify/services/booking"
	emailSvc "bookify/services/email"
	notificationSvc "bookify/services/notification"
	profileSvc "bookify/services/profile"
	reviewSvc "bookify/services/review"
	slotSvc "bookify/services/slot"
	"bookify/services/tasks"
	"bookify/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	apptRepo := apptRepoPkg.NewMongoAppointmentRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	profileRepo := profileRepoPkg.NewMongoProfileRepo()

	for name, ensure := range map[string]func() error{
		"slots":         slotRepo.EnsureIndexes,
		"appointments":  apptRepo.EnsureIndexes,
		"reviews":       reviewRepo.EnsureIndexes,
		"notifications": notificationRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	slotService := &slotSvc.DefaultSlotService{
		Repo:     slotRepo,
		DailyCap: config.AppConfig.SlotDailyCap,
	}

	dispatcher := tasks.NewAsynqDispatcher()
	defer dispatcher.Close()

	bookingService := &bookingSvc.DefaultBookingService{
		Appointments: apptRepo,
		Slots:        slotRepo,
		Dispatcher:   dispatcher,
	}

	reviewService := &reviewSvc.DefaultReviewService{
		Reviews:      reviewRepo,
		Appointments: apptRepo,
	}

	notificationService, err := notificationSvc.NewDefaultNotificationService(notificationRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	profileService := &profileSvc.DefaultProfileService{
		Repo: profileRepo,
	}

	var emailer emailSvc.EmailNotifier
	if sg := emailSvc.NewSendGridNotifier(); sg != nil {
		emailer = sg
	} else {
		logger.Sugar().Warn("main: no SendGrid API key configured, emails will be logged only")
		emailer = &emailSvc.StubNotifier{}
	}

	// Side-effect worker consumes the booking events the dispatcher enqueues.
	cron.InitSideEffectWorker(notificationService, emailer, profileService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Slots:         &handlers.SlotHandler{Service: slotService},
		Bookings:      &handlers.BookingHandler{Service: bookingService},
		Reviews:       &handlers.ReviewHandler{Service: reviewService},
		Notifications: &handlers.NotificationHandler{Service: notificationService},
	}

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

	logger.Sugar().Info("main: server stopped gracefully")
}
