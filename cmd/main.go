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

	createBookingHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/create_booking"
	decideBookingHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/decide_booking"
	getBookerBookingsHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/get_booker_bookings"
	getBookingHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/get_booking"
	getItemBookingsHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/get_item_bookings"
	getOwnerBookingsHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/get_owner_bookings"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
	"github.com/m04kA/ShareIt-BookingService/internal/config"
	"github.com/m04kA/ShareIt-BookingService/internal/infra/cache"
	bookingRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/booking"
	itemServiceClient "github.com/m04kA/ShareIt-BookingService/internal/integrations/itemservice"
	userServiceClient "github.com/m04kA/ShareIt-BookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/ShareIt-BookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/ShareIt-BookingService/internal/usecase/create_booking"
	decideBookingUC "github.com/m04kA/ShareIt-BookingService/internal/usecase/decide_booking"
	"github.com/m04kA/ShareIt-BookingService/pkg/dbmetrics"
	"github.com/m04kA/ShareIt-BookingService/pkg/logger"
	"github.com/m04kA/ShareIt-BookingService/pkg/metrics"
	"github.com/m04kA/ShareIt-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/ShareIt-BookingService/pkg/txmanager"
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

	log.Info("Starting ShareIt-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	var (
		userClient createBookingUC.UserServiceClient
		itemClient createBookingUC.ItemServiceClient
	)

	rawUserClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	rawItemClient := itemServiceClient.NewClient(
		cfg.ItemService.URL,
		time.Duration(cfg.ItemService.Timeout)*time.Second,
		log,
	)
	userClient = rawUserClient
	itemClient = rawItemClient
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, ItemService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.ItemService.URL, cfg.ItemService.Timeout)

	// Оборачиваем клиентов в read-through кэш (если включен Redis)
	if cfg.Redis.Enabled {
		redisClient := cache.NewClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		if err := cache.Ping(context.Background(), redisClient); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		lookupCache := cache.NewLookupCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
		userClient = cache.NewCachedUserClient(rawUserClient, lookupCache)
		itemClient = cache.NewCachedItemClient(rawItemClient, lookupCache)
		log.Info("Redis lookup cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.TTLSeconds)
	}

	// Инициализируем репозиторий (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис чтения бронирований
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		userClient,
		itemClient,
		txMgr,
		log,
	)
	decideBookingUseCase := decideBookingUC.NewUseCase(
		bookingRepository,
		itemClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	decideBooking := decideBookingHandler.NewHandler(decideBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookerBookings := getBookerBookingsHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	getItemBookings := getItemBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной request id для трассировки запросов в логах
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все операции требуют заголовок X-Sharer-User-Id
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	if cfg.RateLimit.Enabled {
		protected.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Создание заявки на бронирование
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований заявителя
	protected.HandleFunc("/bookings", getBookerBookings.Handle).Methods(http.MethodGet)

	// Бронирования вещей владельца
	protected.HandleFunc("/bookings/owner", getOwnerBookings.Handle).Methods(http.MethodGet)

	// Бронирования конкретной вещи (для владельца)
	protected.HandleFunc("/bookings/item/{itemId}", getItemBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Решение владельца по заявке
	protected.HandleFunc("/bookings/{bookingId}", decideBooking.Handle).Methods(http.MethodPatch)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
