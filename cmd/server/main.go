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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_booking"
	deleteAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_availability"
	editBusinessHoursHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/edit_business_hours"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_business_bookings"
	getBusinessConfigHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_business_config"
	getBusinessHoursHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_business_hours"
	listAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_availability"
	saveAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/save_availability"
	updateBookingStatusHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_booking_status"
	updateBusinessConfigHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_business_config"
	updateBusinessHoursHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_business_hours"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/config"
	hoursRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/hours"
	managersRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/managers"
	availabilityService "github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	configService "github.com/m04kA/SMC-ScheduleService/internal/service/config"
	hoursService "github.com/m04kA/SMC-ScheduleService/internal/service/hours"
	createBookingUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-ScheduleService...")
	log.Info("Configuration loaded from %s (timezone=%s)", configPath, cfg.Schedule.Timezone)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка над БД нужна всегда: через неё работают транзакции.
	// Без метрик она только прокидывает запросы.
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	hoursRepository := hoursRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	managersRepository := managersRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	location := cfg.Schedule.Location()
	bookingSvc := bookingsService.NewService(bookingRepository, managersRepository, log)
	configSvc := configService.NewService(
		configRepository,
		managersRepository,
		domain.BusinessSlotsConfig{
			SlotDurationMinutes:     cfg.Schedule.DefaultSlotMinutes,
			AdvanceBookingDays:      cfg.Schedule.DefaultAdvanceBookingDays,
			MinBookingNoticeMinutes: cfg.Schedule.DefaultMinNoticeMinutes,
		},
		log,
	)
	hoursSvc := hoursService.NewService(hoursRepository, managersRepository, txMgr, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, managersRepository, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		hoursRepository,
		availabilityRepository,
		configSvc,
		txMgr,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		hoursRepository,
		availabilityRepository,
		bookingRepository,
		configSvc,
		location,
		log,
	)
	if cfg.Metrics.Enabled {
		getAvailableSlotsUseCase.WithMetrics(metricsCollector)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, location, log)
	getBusinessConfig := getBusinessConfigHandler.NewHandler(configSvc, log)
	updateBusinessConfig := updateBusinessConfigHandler.NewHandler(configSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(hoursSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(hoursSvc, log)
	editBusinessHours := editBusinessHoursHandler.NewHandler(hoursSvc, log)
	saveAvailability := saveAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные и занятые слоты на дату
	api.HandleFunc("/businesses/{businessId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Часы работы бизнеса или мастера
	api.HandleFunc("/businesses/{businessId}/hours", getBusinessHours.Handle).Methods(http.MethodGet)

	// Список шаблонов расписания
	api.HandleFunc("/hours/templates", getBusinessHours.HandleTemplates).Methods(http.MethodGet)

	// Исключения по датам
	api.HandleFunc("/businesses/{businessId}/availability", listAvailability.Handle).Methods(http.MethodGet)

	// Конфигурация слотов бизнеса
	api.HandleFunc("/businesses/{businessId}/config", getBusinessConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Управление бизнесом ---
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/config", updateBusinessConfig.Handle).Methods(http.MethodPut)

	// --- Часы работы ---
	protected.HandleFunc("/businesses/{businessId}/hours", updateBusinessHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/hours/days/{day}", editBusinessHours.Handle).Methods(http.MethodPatch)

	// --- Исключения мастеров ---
	protected.HandleFunc("/businesses/{businessId}/professionals/{professionalId}/availability",
		saveAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/professionals/{professionalId}/availability/{availabilityId}",
		saveAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/professionals/{professionalId}/availability/{availabilityId}",
		deleteAvailability.Handle).Methods(http.MethodDelete)

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
