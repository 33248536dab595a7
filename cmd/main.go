package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	cancelReservationHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/cancel_reservation"
	confirmReservationHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/get_available_slots"
	getPriceHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/get_price"
	getRequesterHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/get_requester"
	getRequesterReservationsHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/get_requester_reservations"
	getReservationHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/get_reservation"
	listPricesHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/list_prices"
	listReservationsHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/list_reservations"
	registerRequesterHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/register_requester"
	runSweepHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/run_sweep"
	setPriceHandler "github.com/m04kA/SMC-MusicBookingService/internal/api/handlers/set_price"
	"github.com/m04kA/SMC-MusicBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-MusicBookingService/internal/config"
	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/internal/events"
	"github.com/m04kA/SMC-MusicBookingService/internal/infra/broker"
	priceRepo "github.com/m04kA/SMC-MusicBookingService/internal/infra/storage/price"
	requesterRepo "github.com/m04kA/SMC-MusicBookingService/internal/infra/storage/requester"
	reservationRepo "github.com/m04kA/SMC-MusicBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-MusicBookingService/internal/reminder"
	pricesService "github.com/m04kA/SMC-MusicBookingService/internal/service/prices"
	requestersService "github.com/m04kA/SMC-MusicBookingService/internal/service/requesters"
	reservationsService "github.com/m04kA/SMC-MusicBookingService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-MusicBookingService/internal/usecase/create_reservation"
	expireReservationsUC "github.com/m04kA/SMC-MusicBookingService/internal/usecase/expire_reservations"
	getAvailableSlotsUC "github.com/m04kA/SMC-MusicBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-MusicBookingService/internal/worker/sweeper"
	"github.com/m04kA/SMC-MusicBookingService/migrations"
	"github.com/m04kA/SMC-MusicBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MusicBookingService/pkg/logger"
	"github.com/m04kA/SMC-MusicBookingService/pkg/metrics"
	"github.com/m04kA/SMC-MusicBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-MusicBookingService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}
	schedule := cfg.Booking.Schedule()

	// Инициализируем метрики (если включены)
	// Получатели объявлены интерфейсами: при выключенных метриках они остаются nil
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
		sweepRecorder    expireReservationsUC.SweepRecorder
		reminderRecorder reminder.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		sweepRecorder = metricsCollector
		reminderRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	if cfg.Database.Driver == migrations.DialectSQLite {
		// SQLite допускает одного писателя; транзакция держит единственное соединение
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Проверяем соединение
	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	if cfg.Database.Driver == migrations.DialectSQLite {
		log.Info("Successfully connected to database (driver=sqlite3, path=%s)", cfg.Database.Path)
	} else {
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	// Применяем миграции
	if err := migrations.Apply(startupCtx, db, cfg.Database.Driver); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	gormDB, err := requesterRepo.OpenGorm(cfg.Database.Driver, db)
	if err != nil {
		log.Fatal("Failed to initialize gorm: %v", err)
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	priceRepository := priceRepo.NewRepository(wrappedDB)
	requesterRepository := requesterRepo.NewRepository(gormDB)

	clock := &createReservationUC.RealTimeProvider{}

	// Шина событий и её подписчики
	bus := events.NewBus(log)
	if metricsCollector != nil {
		bus.SubscribeAll(events.CountEvents(metricsCollector))
	}

	var notifier reminder.Notifier = reminder.NewLogNotifier(log)
	if cfg.Broker.Enabled {
		publisher, err := broker.NewPublisher(cfg.Broker.URL, cfg.Broker.EventsExchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()

		bus.SubscribeAll(broker.NewEventForwarder(publisher).HandleEvent)
		notifier = broker.NewNotifier(publisher, cfg.Broker.ReminderRouting)
		log.Info("Broker enabled: exchange=%s, reminder routing key=%s",
			cfg.Broker.EventsExchange, cfg.Broker.ReminderRouting)
	}

	reminderScheduler := reminder.NewScheduler(
		reservationRepository,
		notifier,
		reminderRecorder,
		location,
		cfg.Booking.ReminderLead(),
		log,
	)
	bus.Subscribe(domain.EventReservationConfirmed, reminderScheduler.HandleConfirmed)

	// Инициализируем сервисы
	priceSvc := pricesService.NewService(priceRepository, cfg.Booking.DefaultPrice, clock, log)
	reservationSvc := reservationsService.NewService(reservationRepository, bus, clock, log)
	requesterSvc := requestersService.NewService(requesterRepository, clock, log)

	if err := priceSvc.SeedDefaults(startupCtx); err != nil {
		log.Fatal("Failed to seed default prices: %v", err)
	}

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		priceSvc,
		txMgr,
		bus,
		schedule,
		location,
		log,
	).WithHorizon(cfg.Booking.HorizonDays)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(reservationRepository, schedule, log)
	expireReservationsUseCase := expireReservationsUC.NewUseCase(
		reservationRepository,
		bus,
		sweepRecorder,
		cfg.Booking.PaymentTimeout(),
		log,
	)

	// Таймеры напоминаний живут в памяти: восстанавливаем их после рестарта
	restored, err := reminderScheduler.Restore(startupCtx)
	if err != nil {
		log.Error("Failed to restore reminders: %v", err)
	} else {
		log.Info("Reminders restored: %d", restored)
	}

	// Фоновый прогон истечения неоплаченных броней
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sweeper.New(
			expireReservationsUseCase,
			cfg.Booking.SweepInterval(),
			cfg.Booking.SweepInitialDelay(),
			log,
		).Run(workerCtx)
	}()

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getPrice := getPriceHandler.NewHandler(priceSvc, log)
	setPrice := setPriceHandler.NewHandler(priceSvc, log)
	listPrices := listPricesHandler.NewHandler(priceSvc, log)
	runSweep := runSweepHandler.NewHandler(expireReservationsUseCase, log)
	registerRequester := registerRequesterHandler.NewHandler(requesterSvc, log)
	getRequester := getRequesterHandler.NewHandler(requesterSvc, log)
	getRequesterReservations := getRequesterReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Слоты ---
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Брони ---
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId:[0-9]+}/confirm", confirmReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId:[0-9]+}/cancel", cancelReservation.Handle).Methods(http.MethodPost)

	// --- Цены ---
	api.HandleFunc("/prices", listPrices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/prices/{tier}/{category}", getPrice.Handle).Methods(http.MethodGet)
	api.HandleFunc("/prices/{tier}/{category}", setPrice.Handle).Methods(http.MethodPut)

	// --- Истечение неоплаченных броней ---
	api.HandleFunc("/sweeps", runSweep.Handle).Methods(http.MethodPost)

	// --- Пользователи чата ---
	api.HandleFunc("/requesters", registerRequester.Handle).Methods(http.MethodPost)
	api.HandleFunc("/requesters/{requesterId:[0-9]+}", getRequester.Handle).Methods(http.MethodGet)
	api.HandleFunc("/requesters/{requesterId:[0-9]+}/reservations", getRequesterReservations.Handle).Methods(http.MethodGet)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи
	stopWorkers()
	<-sweeperDone
	reminderScheduler.Stop()
	log.Info("Sweeper and reminder timers stopped")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
