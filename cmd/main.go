package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cancelBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/create_booking"
	getAvailabilitySummaryHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_availability_summary"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_booking"
	getBookingHistoryHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_booking_history"
	getConflictsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_conflicts"
	getCustomerBookingsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_customer_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/update_booking_status"
	validateBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/validate_booking"
	"github.com/m04kA/SMC-SpaBookingService/internal/config"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/availability"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/slots"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/cache"
	"github.com/m04kA/SMC-SpaBookingService/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-SpaBookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
	getAvailabilitySummaryUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_availability_summary"
	getAvailableSlotsUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_slots"
	getConflictsUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_conflicts"
	rescheduleBookingUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/reschedule_booking"
	validateBookingUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level, logger.WithRotation(logger.Rotation{
		MaxSizeMB:  cfg.Logs.MaxSizeMB,
		MaxBackups: cfg.Logs.MaxBackups,
		MaxAgeDays: cfg.Logs.MaxAgeDays,
	}))
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SpaBookingService...")
	log.Info("Configuration loaded from %s (storage=%s)", configPath, cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: PostgreSQL или память
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openStorage(startupCtx, cfg, log, metricsCollector, stopMetricsCh)
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Публикация событий
	var publisher interface {
		events.Sender
		Close() error
	} = events.NoopPublisher{}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Booking events are published to exchange %s", cfg.Events.Exchange)
	}
	defer publisher.Close()
	notifier := events.NewNotifier(publisher, log)

	// Бизнес-часы уже проверены в config.Validate
	openTime, _ := cfg.BusinessHours.OpenTime()
	closeTime, _ := cfg.BusinessHours.CloseTime()

	// Движок доступности
	availabilityCache := cache.New(cfg.Availability.SummaryTTL(), cfg.Availability.CleanupInterval())
	generator := slots.NewGenerator(store.catalog, store.schedules, store.bookings, slots.Config{
		OpenTime:               openTime,
		CloseTime:              closeTime,
		StepMinutes:            cfg.Availability.SlotStepMinutes,
		DefaultDurationMinutes: cfg.Booking.DefaultDurationMinutes,
		MinNoticeMinutes:       cfg.Booking.MinNoticeMinutes,
	})
	aggregator := availability.NewAggregator(store.schedules, store.bookings, generator, availabilityCache, availability.Config{
		SummaryTTL:         cfg.Availability.SummaryTTL(),
		SlotsTTL:           cfg.Availability.SlotsTTL(),
		MaxRangeDays:       cfg.Availability.MaxRangeDays,
		SlotStepMinutes:    cfg.Availability.SlotStepMinutes,
		FixedSlotsPerStaff: cfg.Availability.FixedSlotsPerStaff,
	}, log, metricsCollector)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		store.bookings,
		store.history,
		store.tx,
		aggregator,
		notifier,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.catalog,
		store.schedules,
		store.history,
		store.tx,
		aggregator,
		notifier,
		metricsCollector,
		createBookingUC.Config{
			InitialStatus:      domain.BookingStatus(cfg.Booking.InitialStatus),
			OpenTime:           openTime,
			CloseTime:          closeTime,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
			MinNoticeMinutes:   cfg.Booking.MinNoticeMinutes,
		},
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		store.bookings,
		store.catalog,
		store.schedules,
		store.tx,
		aggregator,
		notifier,
		rescheduleBookingUC.Config{
			OpenTime:           openTime,
			CloseTime:          closeTime,
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
			MinNoticeMinutes:   cfg.Booking.MinNoticeMinutes,
		},
		log,
	)
	validateBookingUseCase := validateBookingUC.NewUseCase(
		store.bookings,
		store.catalog,
		store.schedules,
		cfg.Booking.DefaultDurationMinutes,
		log,
	)
	getConflictsUseCase := getConflictsUC.NewUseCase(store.bookings, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(aggregator, log)
	getAvailabilitySummaryUseCase := getAvailabilitySummaryUC.NewUseCase(aggregator, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBookingHistory := getBookingHistoryHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailabilitySummary := getAvailabilitySummaryHandler.NewHandler(getAvailabilitySummaryUseCase, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	getConflicts := getConflictsHandler.NewHandler(getConflictsUseCase, log)

	// Настраиваем роутер
	var routerMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		routerMetrics = metricsCollector
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	r := newRouter(apiHandlers{
		availabilitySummary: getAvailabilitySummary.Handle,
		availableSlots:      getAvailableSlots.Handle,
		validateBooking:     validateBooking.Handle,
		conflicts:           getConflicts.Handle,

		createBooking:         createBooking.Handle,
		getBooking:            getBooking.Handle,
		getBookingByReference: getBooking.HandleByReference,
		updateBookingStatus:   updateBookingStatus.Handle,
		cancelBooking:         cancelBooking.Handle,
		rescheduleBooking:     rescheduleBooking.Handle,
		bookingHistory:        getBookingHistory.Handle,
		customerBookings:      getCustomerBookings.Handle,
	}, log.Zap(), routerMetrics, cfg.Metrics.Path)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
