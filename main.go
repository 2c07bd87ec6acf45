// File: citaflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"citaflow/config"
	"citaflow/cron"
	"citaflow/database"
	appointmentRepoPkg "citaflow/database/repository/appointment"
	calendarRepoPkg "citaflow/database/repository/calendarsync"
	notificationRepoPkg "citaflow/database/repository/notification"
	settingsRepoPkg "citaflow/database/repository/settings"
	staffRepoPkg "citaflow/database/repository/staff"
	planRepoPkg "citaflow/database/repository/weeklyplan"
	"citaflow/handlers"
	"citaflow/routes"
	"citaflow/services/achievement"
	"citaflow/services/appointment"
	"citaflow/services/availability"
	"citaflow/services/notification"
	"citaflow/services/provisioning"
	"citaflow/services/staff"
	"citaflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// indexed is implemented by repositories that maintain their own indexes.
type indexed interface {
	EnsureIndexes() error
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	staffRepo := staffRepoPkg.NewMongoStaffRepo()
	calendarRepo := calendarRepoPkg.NewMongoCalendarBusyRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	planRepo := planRepoPkg.NewMongoWeeklyPlanRepo()
	settingsRepo := settingsRepoPkg.NewMongoMeetingSettingsRepo()
	tokenRepo := settingsRepoPkg.NewMongoIntegrationTokenRepo()
	notifRepo := notificationRepoPkg.NewMongoNotificationRepo()
	markerRepo := notificationRepoPkg.NewMongoAchievementMarkerRepo()

	for _, repo := range []any{apptRepo, notifRepo, markerRepo} {
		if idx, ok := repo.(indexed); ok {
			if err := idx.EnsureIndexes(); err != nil {
				logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
			}
		}
	}

	location := config.AgendaLocation()

	// services.
	availabilityService := &availability.DefaultAvailabilityService{
		Staff:        staffRepo,
		CalendarRepo: calendarRepo,
		Appointments: apptRepo,
		Plans:        planRepo,
		Location:     location,
	}

	meetClient := provisioning.NewGoogleMeetClient(tokenRepo)
	provisioningService := provisioning.NewProvisioningService(settingsRepo, tokenRepo, meetClient)

	notificationService := notification.NewDefaultNotificationService(notifRepo, notification.LogMailer{})

	achievementService := &achievement.DefaultAchievementService{
		Appointments: apptRepo,
		Markers:      markerRepo,
		Notifier:     notificationService,
		Location:     location,
	}

	appointmentService := &appointment.DefaultAppointmentService{
		Repo:         apptRepo,
		Staff:        staffRepo,
		Availability: availabilityService,
		Provisioner:  provisioningService,
		Plans:        planRepo,
		Achievements: achievementService,
		Notifier:     notificationService,
		Locker:       utils.NewRedisStaffLocker(utils.GetLockClient()),
		Location:     location,
	}

	directoryService := &staff.DefaultDirectoryService{
		Staff:    staffRepo,
		Tokens:   tokenRepo,
		Settings: settingsRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		StaffRepo:     staffRepo,
		Availability:  availabilityService,
		Appointments:  appointmentService,
		Directory:     directoryService,
		Notifications: notificationService,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers and monitors.
	cron.InitCleanupWorker(notifRepo)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetLockClient()},
		database.MongoClient,
	)

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
