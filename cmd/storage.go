package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SpaBookingService/internal/config"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/availability"
	"github.com/m04kA/SMC-SpaBookingService/internal/engine/slots"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/migrator"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	historyRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/history"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/memstore"
	scheduleRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/schedule"
	bookingsService "github.com/m04kA/SMC-SpaBookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
	getConflictsUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_conflicts"
	rescheduleBookingUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/reschedule_booking"
	validateBookingUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SpaBookingService/migrations"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
)

// Объединенные контракты потребителей: одна реализация на драйвер хранилища

type bookingStore interface {
	createBookingUC.BookingRepository
	rescheduleBookingUC.BookingRepository
	validateBookingUC.BookingRepository
	getConflictsUC.BookingRepository
	bookingsService.BookingRepository
	slots.BookingReader
	availability.BookingReader
}

type catalogStore interface {
	createBookingUC.CatalogRepository
	rescheduleBookingUC.CatalogRepository
	validateBookingUC.CatalogRepository
	slots.CatalogReader
}

type scheduleStore interface {
	createBookingUC.ScheduleRepository
	slots.ScheduleReader
	availability.ScheduleReader
}

type historyStore interface {
	createBookingUC.HistoryRepository
	bookingsService.HistoryRepository
}

type txManager interface {
	createBookingUC.TransactionManager
	bookingsService.TransactionManager
}

// storage репозитории и менеджер транзакций выбранного драйвера
type storage struct {
	bookings  bookingStore
	catalog   catalogStore
	schedules scheduleStore
	history   historyStore
	tx        txManager
	close     func()
}

// openStorage создает хранилище по storage.driver
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics, stopCh <-chan struct{}) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		store := memstore.New()
		store.SeedDemo(time.Now(), cfg.Storage.SeedDays)
		log.Info("Using in-memory storage with demo data for %d days", cfg.Storage.SeedDays)
		return &storage{
			bookings:  store,
			catalog:   store,
			schedules: store,
			history:   store,
			tx:        store,
			close:     func() {},
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrationsEnabled {
		mig, err := migrator.New(db, migrations.FS, ".", log)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := mig.Up(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	// При выключенных метриках обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithLockTimeout(cfg.Database.LockTimeout()),
		txmanager.WithMaxRetries(cfg.Database.TxMaxRetries),
		txmanager.WithRetryBase(cfg.Database.RetryBase()),
	)

	return &storage{
		bookings:  bookingRepo.NewRepository(wrappedDB),
		catalog:   catalogRepo.NewRepository(wrappedDB),
		schedules: scheduleRepo.NewRepository(wrappedDB),
		history:   historyRepo.NewRepository(wrappedDB),
		tx:        txMgr,
		close: func() {
			_ = db.Close()
		},
	}, nil
}
