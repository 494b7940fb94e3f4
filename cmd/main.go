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

	addParticipantHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/add_participant"
	cancelSessionHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/cancel_session"
	checkInHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/check_in"
	checkInAllHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/check_in_all"
	createSessionHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/create_session"
	createSessionTypeHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/create_session_type"
	deleteSessionTypeHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/delete_session_type"
	generateRecurringHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/generate_recurring_sessions"
	getPopularTypesHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/get_popular_types"
	getSessionHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/get_session"
	getSessionTypeHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/get_session_type"
	getStatsSummaryHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/get_stats_summary"
	getWaitlistHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/get_waitlist"
	listSessionTypesHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/list_session_types"
	listSessionsHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/list_sessions"
	markNoShowHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/mark_no_show"
	markPaidHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/mark_participants_paid"
	promoteFromWaitlistHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/promote_from_waitlist"
	removeParticipantHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/remove_participant"
	toggleVisibilityHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/toggle_visibility"
	updateSessionHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/update_session"
	updateSessionTypeHandler "github.com/m04kA/SMC-GroupSessionService/internal/api/handlers/update_session_type"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	"github.com/m04kA/SMC-GroupSessionService/internal/config"
	"github.com/m04kA/SMC-GroupSessionService/internal/infra/cache"
	"github.com/m04kA/SMC-GroupSessionService/internal/infra/events"
	participantRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/participant"
	sessionRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/session"
	sessionTypeRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/sessiontype"
	statsRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/stats"
	waitlistRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/waitlist"
	customerServiceClient "github.com/m04kA/SMC-GroupSessionService/internal/integrations/customerservice"
	staffServiceClient "github.com/m04kA/SMC-GroupSessionService/internal/integrations/staffservice"
	attendanceService "github.com/m04kA/SMC-GroupSessionService/internal/service/attendance"
	catalogService "github.com/m04kA/SMC-GroupSessionService/internal/service/catalog"
	scheduleService "github.com/m04kA/SMC-GroupSessionService/internal/service/schedule"
	statsService "github.com/m04kA/SMC-GroupSessionService/internal/service/stats"
	addParticipantUC "github.com/m04kA/SMC-GroupSessionService/internal/usecase/add_participant"
	createSessionUC "github.com/m04kA/SMC-GroupSessionService/internal/usecase/create_session"
	generateRecurringUC "github.com/m04kA/SMC-GroupSessionService/internal/usecase/generate_recurring_sessions"
	markPaidUC "github.com/m04kA/SMC-GroupSessionService/internal/usecase/mark_participants_paid"
	promoteFromWaitlistUC "github.com/m04kA/SMC-GroupSessionService/internal/usecase/promote_from_waitlist"
	removeParticipantUC "github.com/m04kA/SMC-GroupSessionService/internal/usecase/remove_participant"
	"github.com/m04kA/SMC-GroupSessionService/internal/worker"
	"github.com/m04kA/SMC-GroupSessionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroupSessionService/pkg/logger"
	"github.com/m04kA/SMC-GroupSessionService/pkg/metrics"
	"github.com/m04kA/SMC-GroupSessionService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-GroupSessionService/pkg/txmanager"
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

	log.Info("Starting SMC-GroupSessionService...")
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
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CustomerService=%s timeout=%ds, StaffService=%s timeout=%ds)",
		cfg.CustomerService.URL, cfg.CustomerService.Timeout, cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Кеш отчетов (при redis.enabled = false все операции no-op)
	reportCache := cache.New(
		cfg.Redis.Addr,
		cfg.Redis.Password,
		cfg.Redis.DB,
		time.Duration(cfg.Redis.TTLSeconds)*time.Second,
		cfg.Redis.Enabled,
	)
	defer reportCache.Close()
	if cfg.Redis.Enabled {
		log.Info("Report cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Публикатор доменных событий
	publisher := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Enabled, log)
	if cfg.RabbitMQ.Enabled {
		log.Info("Event publisher enabled (url=%s)", cfg.RabbitMQ.URL)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		typeRepository        *sessionTypeRepo.Repository
		sessionRepository     *sessionRepo.Repository
		participantRepository *participantRepo.Repository
		waitlistRepository    *waitlistRepo.Repository
		statsRepository       *statsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		typeRepository = sessionTypeRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		participantRepository = participantRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		statsRepository = statsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		typeRepository = sessionTypeRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		participantRepository = participantRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		statsRepository = statsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		typeRepository,
		sessionRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		sessionRepository,
		participantRepository,
		waitlistRepository,
		staffClient,
		txMgr,
		publisher,
		log,
	)
	attendanceSvc := attendanceService.NewService(
		sessionRepository,
		participantRepository,
		txMgr,
		log,
	)
	statsSvc := statsService.NewService(
		statsRepository,
		reportCache,
		log,
	)

	// Инициализируем use cases
	createSessionUseCase := createSessionUC.NewUseCase(
		typeRepository,
		sessionRepository,
		staffClient,
		log,
	)
	generateRecurringUseCase := generateRecurringUC.NewUseCase(
		typeRepository,
		sessionRepository,
		staffClient,
		txMgr,
		log,
	)
	addParticipantUseCase := addParticipantUC.NewUseCase(
		sessionRepository,
		participantRepository,
		waitlistRepository,
		customerClient,
		txMgr,
		publisher,
		log,
	)
	removeParticipantUseCase := removeParticipantUC.NewUseCase(
		sessionRepository,
		participantRepository,
		txMgr,
		log,
	)
	promoteFromWaitlistUseCase := promoteFromWaitlistUC.NewUseCase(
		sessionRepository,
		participantRepository,
		waitlistRepository,
		txMgr,
		publisher,
		log,
	)
	markPaidUseCase := markPaidUC.NewUseCase(
		sessionRepository,
		participantRepository,
		log,
	)

	// Инициализируем handlers
	createSessionType := createSessionTypeHandler.NewHandler(catalogSvc, log)
	getSessionType := getSessionTypeHandler.NewHandler(catalogSvc, log)
	listSessionTypes := listSessionTypesHandler.NewHandler(catalogSvc, log)
	updateSessionType := updateSessionTypeHandler.NewHandler(catalogSvc, log)
	deleteSessionType := deleteSessionTypeHandler.NewHandler(catalogSvc, log)

	createSession := createSessionHandler.NewHandler(createSessionUseCase, log)
	generateRecurring := generateRecurringHandler.NewHandler(generateRecurringUseCase, log)
	getSession := getSessionHandler.NewHandler(scheduleSvc, log)
	listSessions := listSessionsHandler.NewHandler(scheduleSvc, log)
	updateSession := updateSessionHandler.NewHandler(scheduleSvc, log)
	cancelSession := cancelSessionHandler.NewHandler(scheduleSvc, log)
	toggleVisibility := toggleVisibilityHandler.NewHandler(scheduleSvc, log)

	addParticipant := addParticipantHandler.NewHandler(addParticipantUseCase, log)
	removeParticipant := removeParticipantHandler.NewHandler(removeParticipantUseCase, log)
	markPaid := markPaidHandler.NewHandler(markPaidUseCase, log)
	getWaitlist := getWaitlistHandler.NewHandler(scheduleSvc, log)
	promoteFromWaitlist := promoteFromWaitlistHandler.NewHandler(promoteFromWaitlistUseCase, log)

	checkIn := checkInHandler.NewHandler(attendanceSvc, log)
	markNoShow := markNoShowHandler.NewHandler(attendanceSvc, log)
	checkInAll := checkInAllHandler.NewHandler(attendanceSvc, log)

	getStatsSummary := getStatsSummaryHandler.NewHandler(statsSvc, log)
	getPopularTypes := getPopularTypesHandler.NewHandler(statsSvc, log)

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

	// API prefix: все маршруты требуют X-Tenant-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Каталог типов занятий ---
	api.HandleFunc("/session-types", createSessionType.Handle).Methods(http.MethodPost)
	api.HandleFunc("/session-types", listSessionTypes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/session-types/{typeId}", getSessionType.Handle).Methods(http.MethodGet)
	api.HandleFunc("/session-types/{typeId}", updateSessionType.Handle).Methods(http.MethodPut)
	api.HandleFunc("/session-types/{typeId}", deleteSessionType.Handle).Methods(http.MethodDelete)

	// --- Расписание занятий ---
	api.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/recurring", generateRecurring.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions", listSessions.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", updateSession.Handle).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{sessionId}/cancel", cancelSession.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{sessionId}/visibility", toggleVisibility.Handle).Methods(http.MethodPatch)

	// --- Запись участников и лист ожидания ---
	api.HandleFunc("/sessions/{sessionId}/participants", addParticipant.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/participants/mark-paid", markPaid.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/participants/{participantId}", removeParticipant.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{sessionId}/waitlist", getWaitlist.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}/waitlist/promote", promoteFromWaitlist.Handle).Methods(http.MethodPost)

	// --- Посещаемость ---
	api.HandleFunc("/sessions/{sessionId}/participants/{participantId}/check-in", checkIn.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{sessionId}/participants/{participantId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{sessionId}/check-in-all", checkInAll.Handle).Methods(http.MethodPost)

	// --- Статистика ---
	api.HandleFunc("/stats/summary", getStatsSummary.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stats/popular-types", getPopularTypes.Handle).Methods(http.MethodGet)

	// Фоновое завершение прошедших занятий
	var completer *worker.Completer
	if cfg.Completer.Enabled {
		completer = worker.NewCompleter(
			sessionRepository,
			log,
			time.Duration(cfg.Completer.IntervalSeconds)*time.Second,
		)
		completer.Start(context.Background())
		log.Info("Session completer started (interval=%ds)", cfg.Completer.IntervalSeconds)
	}

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

	// Останавливаем фоновый воркер
	if completer != nil {
		completer.Stop()
		log.Info("Session completer stopped")
	}

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
