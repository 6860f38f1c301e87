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

	cancelBookingHandler "github.com/m04kA/marche-portal/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/marche-portal/internal/api/handlers/create_booking"
	createEventHandler "github.com/m04kA/marche-portal/internal/api/handlers/create_event"
	createServiceHandler "github.com/m04kA/marche-portal/internal/api/handlers/create_service"
	getAvailableSlotsHandler "github.com/m04kA/marche-portal/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/marche-portal/internal/api/handlers/get_booking"
	getEventHandler "github.com/m04kA/marche-portal/internal/api/handlers/get_event"
	getExhibitorHandler "github.com/m04kA/marche-portal/internal/api/handlers/get_exhibitor"
	getExhibitorBookingsHandler "github.com/m04kA/marche-portal/internal/api/handlers/get_exhibitor_bookings"
	getUserBookingsHandler "github.com/m04kA/marche-portal/internal/api/handlers/get_user_bookings"
	listEventsHandler "github.com/m04kA/marche-portal/internal/api/handlers/list_events"
	publishEventHandler "github.com/m04kA/marche-portal/internal/api/handlers/publish_event"
	registerExhibitorHandler "github.com/m04kA/marche-portal/internal/api/handlers/register_exhibitor"
	stripeWebhookHandler "github.com/m04kA/marche-portal/internal/api/handlers/stripe_webhook"
	updateExhibitorSettingsHandler "github.com/m04kA/marche-portal/internal/api/handlers/update_exhibitor_settings"
	"github.com/m04kA/marche-portal/internal/api/middleware"
	"github.com/m04kA/marche-portal/internal/config"
	bookingRepo "github.com/m04kA/marche-portal/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/marche-portal/internal/infra/storage/event"
	exhibitorRepo "github.com/m04kA/marche-portal/internal/infra/storage/exhibitor"
	"github.com/m04kA/marche-portal/internal/integrations/payment"
	"github.com/m04kA/marche-portal/internal/integrations/sheets"
	bookingsService "github.com/m04kA/marche-portal/internal/service/bookings"
	eventsService "github.com/m04kA/marche-portal/internal/service/events"
	exhibitorsService "github.com/m04kA/marche-portal/internal/service/exhibitors"
	confirmPaymentUC "github.com/m04kA/marche-portal/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/marche-portal/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/marche-portal/internal/usecase/get_available_slots"
	"github.com/m04kA/marche-portal/pkg/dbmetrics"
	"github.com/m04kA/marche-portal/pkg/logger"
	"github.com/m04kA/marche-portal/pkg/metrics"
	"github.com/m04kA/marche-portal/pkg/txmanager"
)

// rateLimitIdleTTL через сколько забывается неактивный клиент
const rateLimitIdleTTL = 3 * time.Minute

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
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

	log.Info("Starting marche-portal...")
	log.Info("Configuration loaded from %s", configPath)

	rules, err := cfg.Business.Rules()
	if err != nil {
		log.Fatal("Invalid business rules: %v", err)
	}
	log.Info("Business hours %02d:00-%02d:00 %s, step %s",
		rules.OpenHour, rules.CloseHour, rules.Location, rules.Step)

	// Метрики (nil, если выключены: все методы *metrics.Metrics это допускают)
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	eventRepository := eventRepo.NewRepository(wrappedDB)
	exhibitorRepository := exhibitorRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Интеграции. Выключенная интеграция передается как nil интерфейс
	var (
		paymentForBooking createBookingUC.PaymentClient
		paymentForWebhook confirmPaymentUC.PaymentClient
		bookingExporter   createBookingUC.Exporter
		exhibitorExporter exhibitorsService.Exporter
		exporter          *sheets.Exporter
	)

	if cfg.Stripe.Enabled {
		stripeClient := payment.NewClient(payment.Config{
			SecretKey:     cfg.Stripe.SecretKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
			SuccessURL:    cfg.Stripe.SuccessURL,
			CancelURL:     cfg.Stripe.CancelURL,
			Currency:      cfg.Stripe.Currency,
		}, log)
		paymentForBooking = stripeClient
		paymentForWebhook = stripeClient
		log.Info("Stripe checkout enabled (currency=%s)", cfg.Stripe.Currency)
	} else {
		log.Warn("Stripe disabled, CREDIT_CARD bookings will be rejected")
	}

	if cfg.Sheets.Enabled {
		sheetsClient, err := sheets.NewClient(context.Background(), sheets.Config{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			BookingsRange:   cfg.Sheets.BookingsRange,
			ExhibitorsRange: cfg.Sheets.ExhibitorsRange,
		}, cfg.Sheets.CredentialsFile)
		if err != nil {
			log.Fatal("Failed to initialize Google Sheets client: %v", err)
		}
		exporter = sheets.NewExporter(sheetsClient, sheets.DefaultQueueSize,
			time.Duration(cfg.Sheets.Timeout)*time.Second, log)
		bookingExporter = exporter
		exhibitorExporter = exporter
		log.Info("Google Sheets export enabled (spreadsheet=%s)", cfg.Sheets.SpreadsheetID)
	}

	// Инициализируем сервисы
	eventSvc := eventsService.NewService(eventRepository, log)
	exhibitorSvc := exhibitorsService.NewService(
		eventRepository,
		exhibitorRepository,
		exhibitorExporter,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		exhibitorRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		eventRepository,
		exhibitorRepository,
		bookingRepository,
		rules,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		eventRepository,
		exhibitorRepository,
		bookingRepository,
		paymentForBooking,
		bookingExporter,
		metricsCollector,
		txMgr,
		rules,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		paymentForWebhook,
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	listEvents := listEventsHandler.NewHandler(eventSvc, log)
	getEvent := getEventHandler.NewHandler(eventSvc, log)
	createEvent := createEventHandler.NewHandler(eventSvc, log)
	publishEvent := publishEventHandler.NewHandler(eventSvc, log)
	registerExhibitor := registerExhibitorHandler.NewHandler(exhibitorSvc, log)
	getExhibitor := getExhibitorHandler.NewHandler(exhibitorSvc, log)
	updateExhibitorSettings := updateExhibitorSettingsHandler.NewHandler(exhibitorSvc, log)
	createService := createServiceHandler.NewHandler(exhibitorSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getExhibitorBookings := getExhibitorBookingsHandler.NewHandler(bookingSvc, rules.Location, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(confirmPaymentUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, rateLimitIdleTTL, log)
		api.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог событий
	api.HandleFunc("/events", listEvents.Handle).Methods(http.MethodGet)
	api.HandleFunc("/events/{eventId}", getEvent.Handle).Methods(http.MethodGet)

	// Свободные слоты услуги
	api.HandleFunc("/events/{eventId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Карточка экспонента с услугами
	api.HandleFunc("/exhibitors/{exhibitorId}", getExhibitor.Handle).Methods(http.MethodGet)

	// Webhook Stripe (подпись проверяется по Stripe-Signature)
	if cfg.Stripe.Enabled {
		api.HandleFunc("/webhooks/stripe", stripeWebhook.Handle).Methods(http.MethodPost)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- События (организатор) ---
	protected.HandleFunc("/events", createEvent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/events/{eventId}/publish", publishEvent.Handle).Methods(http.MethodPost)

	// --- Экспоненты ---
	protected.HandleFunc("/events/{eventId}/exhibitors", registerExhibitor.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/exhibitors/{exhibitorId}/settings", updateExhibitorSettings.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/exhibitors/{exhibitorId}/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/exhibitors/{exhibitorId}/bookings", getExhibitorBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

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

	// Дожидаемся выгрузки строк, принятых до остановки
	if exporter != nil {
		exporter.Close()
		log.Info("Sheets export queue drained")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
