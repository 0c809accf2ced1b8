// File: nhap/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nhap/config"
	"nhap/cron"
	"nhap/database"
	bookingRepo "nhap/database/repository/booking"
	userRepo "nhap/database/repository/user"
	"nhap/events"
	"nhap/handlers"
	"nhap/middleware"
	"nhap/routes"
	"nhap/services/booking"
	"nhap/services/dispatcher"
	"nhap/services/notification"
	"nhap/services/reminder"
	"nhap/services/tasks"
	"nhap/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	displayLoc, err := config.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	reminderLoc, err := config.LoadLocation(cfg.ReminderTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	tracerProvider, err := utils.InitTracer(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("main: tracer shutdown", zap.Error(err))
		}
	}()

	// Backend clients.
	fb, err := utils.NewFirebaseClients(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	fs, err := database.InitFirestore(ctx, fb.App, cfg.BookingsCollection, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	defer fs.Close()

	// repositories.
	users := userRepo.NewFirestoreUserRepo(fs, cfg.UsersCollection)
	bookings := bookingRepo.NewFirestoreBookingRepo(fs, cfg.BookingsCollection, cfg.BookingsField, logger)

	// services.
	gateway := notification.NewMetricsGateway(
		notification.NewTracingGateway(fb.Messaging, tracerProvider),
		prometheus.DefaultRegisterer,
	)
	notificationService, err := notification.NewDefaultNotificationService(users, gateway, cfg.NotificationChannelID, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	bookingDispatcher := &dispatcher.BookingDispatcher{
		Notifier:    notificationService,
		Logger:      logger.Named("dispatcher"),
		Location:    displayLoc,
		Options:     booking.DecideOptions{NotifyPatientOnCreate: cfg.NotifyPatientOnCreate},
		Concurrency: cfg.DispatchConcurrency,
	}

	sweeper := &reminder.Sweeper{
		Bookings:        bookings,
		Notifier:        notificationService,
		Location:        reminderLoc,
		DisplayLocation: displayLoc,
		Logger:          logger.Named("reminder"),
	}
	if cfg.ReminderSendsPerSecond > 0 {
		sweeper.Limiter = rate.NewLimiter(rate.Limit(cfg.ReminderSendsPerSecond), 1)
	}

	var redisClient *redis.Client
	if cfg.ReminderQueueEnabled {
		taskClient := asynq.NewClient(cron.RedisOpt(cfg))
		defer taskClient.Close()
		sweeper.Enqueuer = &tasks.AsynqEnqueuer{Client: taskClient}

		worker := cron.InitReminderWorker(cfg, notificationService, displayLoc, logger.Named("reminder-worker"))
		defer worker.Shutdown()

		redisClient, err = utils.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		defer redisClient.Close()
	}

	if _, err := cron.StartReminderCron(ctx, cfg.ReminderSchedule, reminderLoc, sweeper, logger.Named("cron")); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	health := utils.NewHealthMonitor(func(ctx context.Context) error {
		return database.Ping(ctx, fs, cfg.BookingsCollection)
	}, redisClient)
	health.Start(ctx, 60*time.Second)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))

	eventHandler := handlers.NewBookingEventHandler(
		events.Decoder{Collection: cfg.BookingsCollection, Field: cfg.BookingsField},
		bookingDispatcher,
	)
	taskHandler := handlers.NewReminderTaskHandler(sweeper)
	healthHandler := &handlers.HealthHandler{Monitor: health}

	handlerBundle := &handlers.HandlerBundle{
		BookingEventHandler:     eventHandler.HandleBookingEvent,
		RunReminderSweepHandler: taskHandler.RunReminderSweep,
		HealthHandler:           healthHandler.GetHealth,
		MetricsHandler:          gin.WrapH(promhttp.Handler()),
		TaskRateLimit:           middleware.RateLimit(cfg.TaskRatePerMinute, cfg.TaskRateBurst),
	}
	switch {
	case cfg.TriggerAudience != "":
		handlerBundle.TriggerAuth = middleware.BearerAuth(middleware.GoogleIDTokenValidator(cfg.TriggerAudience))
	case cfg.TriggerAuthToken != "":
		handlerBundle.TriggerAuth = middleware.BearerAuth(middleware.SharedSecretValidator(cfg.TriggerAuthToken))
	default:
		logger.Warn("main: trigger endpoints are unauthenticated; set TRIGGER_AUDIENCE or TRIGGER_AUTH_TOKEN")
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
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
	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
