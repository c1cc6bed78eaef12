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
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	assignCoachHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/assign_coach"
	batchRaincheckHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/batch_raincheck"
	cancelBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/cancel_booking"
	computeHeatmapHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/compute_heatmap"
	createAvailabilityHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/create_availability"
	createBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/get_booking"
	listRequestsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_requests"
	listSessionsHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/list_sessions"
	planSelectionHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/plan_selection"
	requestRaincheckHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/request_raincheck"
	reviewRequestHandler "github.com/m04kA/SMC-CourtBooking/internal/api/handlers/review_request"
	"github.com/m04kA/SMC-CourtBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBooking/internal/config"
	availabilityRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	historyRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/history"
	locationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/location"
	requestRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/request"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/notifications"
	userServiceClient "github.com/m04kA/SMC-CourtBooking/internal/integrations/userservice"
	walletServiceClient "github.com/m04kA/SMC-CourtBooking/internal/integrations/walletservice"
	bookingsService "github.com/m04kA/SMC-CourtBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBooking/internal/service/capacity"
	computeHeatmapUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/compute_heatmap"
	createAvailabilityUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_availability"
	createBookingUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking"
	listSessionsUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/list_sessions"
	planSelectionUC "github.com/m04kA/SMC-CourtBooking/internal/usecase/plan_selection"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/tracing"
	"github.com/m04kA/SMC-CourtBooking/pkg/txmanager"
	"github.com/m04kA/SMC-CourtBooking/pkg/tz"
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

	log.Info("Starting SMC-CourtBooking...")
	log.Info("Configuration loaded from config.toml (academy=%d, time_zone=%s)", cfg.Academy.ID, cfg.Academy.TimeZone)

	// Часовой пояс академии: все локальные даты и время пересчитываются только через него
	timeZone, err := tz.New(cfg.Academy.TimeZone)
	if err != nil {
		log.Fatal("Failed to load academy time zone: %v", err)
	}

	// Трейсинг
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.Endpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to set up tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Инициализируем метрики (если включены); nil коллектор отключает сбор в dbmetrics
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	locationRepository := locationRepo.NewRepository(wrappedDB)
	requestRepository := requestRepo.NewRepository(wrappedDB)
	historyRepository := historyRepo.NewRepository(wrappedDB)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	walletClient := walletServiceClient.NewClient(
		cfg.WalletService.URL,
		time.Duration(cfg.WalletService.Timeout)*time.Second,
		cfg.WalletService.Retries,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, WalletService=%s timeout=%ds retries=%d)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.WalletService.URL, cfg.WalletService.Timeout, cfg.WalletService.Retries)

	// Каналы уведомлений об отменах
	var senders []notifications.Sender
	var kafkaSender *notifications.KafkaSender
	if cfg.Notifications.Kafka.Enabled {
		kafkaSender = notifications.NewKafkaSender(cfg.Notifications.Kafka.Brokers, cfg.Notifications.Kafka.Topic)
		senders = append(senders, kafkaSender)
		log.Info("Kafka notifications enabled (topic=%s)", cfg.Notifications.Kafka.Topic)
	}
	if cfg.Notifications.Email.Enabled {
		senders = append(senders, notifications.NewEmailSender(notifications.EmailConfig{
			Host:     cfg.Notifications.Email.Host,
			Port:     cfg.Notifications.Email.Port,
			Username: cfg.Notifications.Email.Username,
			Password: cfg.Notifications.Email.Password,
			From:     cfg.Notifications.Email.From,
			To:       cfg.Notifications.Email.To,
			TimeZone: timeZone.Location(),
		}))
		log.Info("E-mail notifications enabled (recipients=%d)", len(cfg.Notifications.Email.To))
	}
	dispatcher := notifications.NewDispatcher(log, time.Duration(cfg.Notifications.Timeout)*time.Second, senders...)

	// Кеш тепловой карты: Redis общий для всех инстансов, иначе в памяти процесса
	var heatmapCache computeHeatmapUC.Cache
	var rdb *redis.Client
	if cfg.Cache.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		heatmapCache = computeHeatmapUC.NewRedisCache(rdb, cfg.Cache.TTL(), cfg.Cache.Redis.Prefix)
		log.Info("Heatmap cache: redis at %s", cfg.Cache.Redis.Addr)
	} else {
		heatmapCache = computeHeatmapUC.NewMemoryCache(cfg.Cache.TTL())
		log.Info("Heatmap cache: in-memory")
	}

	// Инициализируем сервисы
	gate := capacity.NewGate(availabilityRepository, bookingRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		requestRepository,
		historyRepository,
		gate,
		walletClient,
		dispatcher,
		timeZone,
		bookingsService.Config{
			FreeCancellationHour: cfg.Academy.FreeCancellationHour,
			OperationTimeout:     time.Duration(cfg.Academy.OperationTimeout) * time.Second,
		},
		log,
	)

	// Инициализируем use cases
	planSelectionUseCase := planSelectionUC.NewUseCase(availabilityRepository, timeZone, log)
	computeHeatmapUseCase := computeHeatmapUC.NewUseCase(
		availabilityRepository,
		timeZone,
		heatmapCache,
		cfg.Academy.MaxHeatmapDays,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(gate, locationRepository, timeZone, cfg.Academy.ID, log).
		WithOperationTimeout(time.Duration(cfg.Academy.OperationTimeout) * time.Second)
	listSessionsUseCase := listSessionsUC.NewUseCase(
		bookingRepository,
		userClient,
		timeZone,
		cfg.Academy.MaxHeatmapDays,
		log,
	)
	createAvailabilityUseCase := createAvailabilityUC.NewUseCase(
		availabilityRepository,
		locationRepository,
		txMgr,
		timeZone,
		log,
	)

	// Инициализируем handlers
	planSelection := planSelectionHandler.NewHandler(planSelectionUseCase, log)
	computeHeatmap := computeHeatmapHandler.NewHandler(computeHeatmapUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listSessions := listSessionsHandler.NewHandler(listSessionsUseCase, log)
	createAvailability := createAvailabilityHandler.NewHandler(createAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	assignCoach := assignCoachHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	requestRaincheck := requestRaincheckHandler.NewHandler(bookingSvc, log)
	listRequests := listRequestsHandler.NewHandler(bookingSvc, log)
	reviewRequest := reviewRequestHandler.NewHandler(bookingSvc, log)
	batchRaincheck := batchRaincheckHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Middleware)

	// --- Планирование ---
	api.HandleFunc("/selection/toggle", planSelection.Handle).Methods(http.MethodPost)
	api.HandleFunc("/heatmap", computeHeatmap.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/coach", assignCoach.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/raincheck", requestRaincheck.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions", listSessions.Handle).Methods(http.MethodGet)

	// --- Заявки (администратор) ---
	api.HandleFunc("/requests", listRequests.Handle).Methods(http.MethodGet)
	api.HandleFunc("/requests/{requestId}/approve", reviewRequest.HandleApprove).Methods(http.MethodPost)
	api.HandleFunc("/requests/{requestId}/reject", reviewRequest.HandleReject).Methods(http.MethodPost)

	// --- Тренер ---
	api.HandleFunc("/rainchecks/batch", batchRaincheck.Handle).Methods(http.MethodPost)

	// --- Расписание (администратор) ---
	api.HandleFunc("/locations/{locationId}/availability", createAvailability.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
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

	// Дожидаемся уведомлений, поставленных в отправку до остановки
	dispatcher.Wait()
	if kafkaSender != nil {
		if err := kafkaSender.Close(); err != nil {
			log.Error("Failed to close kafka writer: %v", err)
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
