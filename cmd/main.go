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

	acceptRequestHandler "github.com/m04kA/QA-MatchingService/internal/api/handlers/accept_request"
	createRequestHandler "github.com/m04kA/QA-MatchingService/internal/api/handlers/create_request"
	getRequestHandler "github.com/m04kA/QA-MatchingService/internal/api/handlers/get_request"
	listNearbyRequestsHandler "github.com/m04kA/QA-MatchingService/internal/api/handlers/list_nearby_requests"
	listRequestsHandler "github.com/m04kA/QA-MatchingService/internal/api/handlers/list_requests"
	updateLocationHandler "github.com/m04kA/QA-MatchingService/internal/api/handlers/update_location"
	updateStatusHandler "github.com/m04kA/QA-MatchingService/internal/api/handlers/update_status"
	"github.com/m04kA/QA-MatchingService/internal/api/middleware"
	"github.com/m04kA/QA-MatchingService/internal/config"
	providerRepo "github.com/m04kA/QA-MatchingService/internal/infra/storage/provider"
	requestRepo "github.com/m04kA/QA-MatchingService/internal/infra/storage/request"
	"github.com/m04kA/QA-MatchingService/internal/integrations/pusher"
	requestsService "github.com/m04kA/QA-MatchingService/internal/service/requests"
	acceptRequestUC "github.com/m04kA/QA-MatchingService/internal/usecase/accept_request"
	findNearbyUC "github.com/m04kA/QA-MatchingService/internal/usecase/find_nearby"
	updateLocationUC "github.com/m04kA/QA-MatchingService/internal/usecase/update_location"
	updateStatusUC "github.com/m04kA/QA-MatchingService/internal/usecase/update_status"
	"github.com/m04kA/QA-MatchingService/pkg/dbmetrics"
	"github.com/m04kA/QA-MatchingService/pkg/logger"
	"github.com/m04kA/QA-MatchingService/pkg/metrics"
	"github.com/m04kA/QA-MatchingService/pkg/simpletxmanager"
	"github.com/m04kA/QA-MatchingService/pkg/txmanager"
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

	log.Info("Starting QA-MatchingService...")
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

	// Инициализируем pub/sub клиент уведомлений
	notifier := pusher.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	defer notifier.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := notifier.Ping(pingCtx); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем репозитории (с метриками или без)
	var (
		requestRepository  *requestRepo.Repository
		providerRepository *providerRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		requestRepository = requestRepo.NewRepository(wrappedDB)
		providerRepository = providerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		requestRepository = requestRepo.NewRepository(db)
		providerRepository = providerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	requestsSvc := requestsService.NewService(requestRepository, log)

	// Инициализируем use cases
	findNearbyUseCase := findNearbyUC.NewUseCase(
		requestRepository,
		providerRepository,
		cfg.Matching.SearchRadiusKM,
		time.Duration(cfg.Matching.MaxRequestAgeMinutes)*time.Minute,
		log,
	)

	acceptRequestUseCase := acceptRequestUC.NewUseCase(
		requestRepository,
		txMgr,
		notifier,
		log,
	)

	updateStatusUseCase := updateStatusUC.NewUseCase(
		requestRepository,
		txMgr,
		notifier,
		log,
	)

	updateLocationUseCase := updateLocationUC.NewUseCase(providerRepository, log)

	// Инициализируем handlers
	createRequest := createRequestHandler.NewHandler(requestsSvc, log)
	listRequests := listRequestsHandler.NewHandler(requestsSvc, log)
	getRequest := getRequestHandler.NewHandler(requestsSvc, log)
	listNearbyRequests := listNearbyRequestsHandler.NewHandler(findNearbyUseCase, log)
	acceptRequest := acceptRequestHandler.NewHandler(acceptRequestUseCase, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)
	updateLocation := updateLocationHandler.NewHandler(updateLocationUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID / X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки ---
	// Создание заявки (заказчик)
	protected.HandleFunc("/requests", createRequest.Handle).Methods(http.MethodPost)

	// Список заявок пользователя (по роли)
	protected.HandleFunc("/requests", listRequests.Handle).Methods(http.MethodGet)

	// Получение заявки по ID
	protected.HandleFunc("/requests/{requestId}", getRequest.Handle).Methods(http.MethodGet)

	// Принятие заявки исполнителем
	protected.HandleFunc("/requests/{requestId}/accept", acceptRequest.Handle).Methods(http.MethodPost)

	// Переход статуса заявки
	protected.HandleFunc("/requests/{requestId}/status", updateStatus.Handle).Methods(http.MethodPost)

	// --- Подбор ---
	// Доступные заявки в радиусе обслуживания исполнителя
	protected.HandleFunc("/matching/available-requests", listNearbyRequests.Handle).Methods(http.MethodGet)

	// --- Исполнители ---
	// Обновление позиции исполнителя
	protected.HandleFunc("/providers/location", updateLocation.Handle).Methods(http.MethodPut)

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
