package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/handlers"
	"github.com/rkinstitute/institute_mgmt_app/internal/middleware"
	"github.com/rkinstitute/institute_mgmt_app/internal/platform/config"
	"github.com/rkinstitute/institute_mgmt_app/internal/repositories/database/pgsql"
	"github.com/rkinstitute/institute_mgmt_app/internal/repositories/gateway/razorpay"
	"github.com/rkinstitute/institute_mgmt_app/internal/repositories/messaging/whatsapp"
	"github.com/rkinstitute/institute_mgmt_app/internal/utils"
	"github.com/rkinstitute/institute_mgmt_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
)

// @title Institute Management Backend API
// @version 1.0
// @description Backend API for RK Institute: students, fees, payroll, exams and notifications.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Product analytics (no-op when the key is unset)
	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()
	r.Use(middleware.PosthogMiddleware(posthogClient))

	// External gateways
	paymentGateway := razorpay.NewClient(cfg.GatewayBaseURL, cfg.GatewayKeyID, cfg.GatewayKeySecret)
	messagingGateway := whatsapp.NewClient(cfg.WhatsAppGatewayURL, cfg.WhatsAppGatewayToken, cfg.WhatsAppCountryCode)

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, paymentGateway, messagingGateway)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	// Background workers share the process; they stop with the server.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	go runNotificationDispatcher(workerCtx, cfg, serviceContainer.Notification, logger)
	go runReconcileSweep(workerCtx, cfg, serviceContainer.Payment, logger)

	// Stop workers on SIGINT/SIGTERM before the process exits.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Shutdown signal received, stopping workers")
		stopWorkers()
	}()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending up migrations using a temporary
// database/sql connection compatible with the pgx pool.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// runNotificationDispatcher drains the outbox on a fixed interval until the
// context is cancelled.
func runNotificationDispatcher(ctx context.Context, cfg *config.Config, dispatcher portssvc.NotificationDispatcherSvc, logger *slog.Logger) {
	workerLogger := logger.With(slog.String("worker", "notification_dispatcher"))
	ticker := time.NewTicker(cfg.DispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			workerLogger.Info("Notification dispatcher stopped")
			return
		case <-ticker.C:
			tickCtx := middleware.ContextWithLogger(ctx, workerLogger)
			processed, err := dispatcher.DispatchPending(tickCtx)
			if err != nil {
				workerLogger.Error("Dispatch pass failed", slog.String("error", err.Error()))
				continue
			}
			if processed > 0 {
				workerLogger.Info("Dispatch pass finished", slog.Int("processed", processed))
			}
		}
	}
}

// runReconcileSweep periodically creates fee payments for captured
// transactions that have no ledger row.
func runReconcileSweep(ctx context.Context, cfg *config.Config, payments portssvc.PaymentSvcFacade, logger *slog.Logger) {
	workerLogger := logger.With(slog.String("worker", "reconcile_sweep"))
	ticker := time.NewTicker(cfg.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			workerLogger.Info("Reconcile sweep stopped")
			return
		case <-ticker.C:
			tickCtx := middleware.ContextWithLogger(ctx, workerLogger)
			fixed, err := payments.ReconcileUnledgered(tickCtx)
			if err != nil {
				workerLogger.Error("Reconcile pass failed", slog.String("error", err.Error()))
				continue
			}
			if fixed > 0 {
				workerLogger.Warn("Reconcile pass created missing ledger rows", slog.Int("fixed", fixed))
			}
		}
	}
}
