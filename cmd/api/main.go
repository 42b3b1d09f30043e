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

	"github.com/lordsmint/portal-api/docs"
	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/cache"
	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/database"
	"github.com/lordsmint/portal-api/internal/erp"
	"github.com/lordsmint/portal-api/internal/http/handler"
	"github.com/lordsmint/portal-api/internal/http/middleware"
	"github.com/lordsmint/portal-api/internal/http/router"
	"github.com/lordsmint/portal-api/internal/jobs"
	"github.com/lordsmint/portal-api/internal/logger"
	"github.com/lordsmint/portal-api/internal/observability"
	"github.com/lordsmint/portal-api/internal/repository"
	"github.com/lordsmint/portal-api/internal/service"
	"github.com/lordsmint/portal-api/internal/storage"
	"go.uber.org/zap"
)

// @title Customer Portal API
// @version 1.0
// @description Customer self-service portal over the ERP: orders, order building, invoices, payments, catalog and support
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@lordsmint.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Portal session token, also accepted from the session cookie
// @Security BearerAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if host := os.Getenv("SWAGGER_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	} else {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In staging/production secrets come from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	loc := cfg.App.Location()

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	metrics := observability.NewMetrics()

	redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		// The catalog works uncached
		log.Warn("Redis unavailable, catalog caching disabled", zap.Error(err))
		redisClient = nil
	}
	catalogCache := cache.New(redisClient, cfg.Redis.CatalogTTLDuration(), log, metrics)
	log.Info("Catalog cache initialized", zap.Bool("redis", catalogCache.Enabled()))

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	erpClient := erp.NewClient(&cfg.ERP, log, erp.WithObserver(metrics))
	log.Info("ERP client initialized",
		zap.String("base_url", cfg.ERP.BaseURL),
		zap.Bool("token_auth", erpClient.TokenAuth()),
	)

	// Repositories
	sessionRepo := repository.NewSessionRepository(db)
	draftRepo := repository.NewDraftOrderRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	archiveRepo := repository.NewArchivedDocumentRepository(db)

	// Services
	sessionStore := service.NewDBSessionStore(sessionRepo, log)
	tokens := auth.NewTokenIssuer(&cfg.Session)
	authService := service.NewAuthService(erpClient, sessionStore, tokens, &cfg.Session, log)
	documentService := service.NewDocumentService(erpClient, fileStorage, archiveRepo, log)
	orderService := service.NewOrderService(erpClient, documentService, &cfg.ERP, loc, log)
	draftService := service.NewDraftOrderService(draftRepo, erpClient, &cfg.ERP, &cfg.Storage, loc, log)
	billingService := service.NewBillingService(erpClient, documentService, &cfg.ERP, log)
	catalogService := service.NewCatalogService(erpClient, catalogCache, log)
	supportService := service.NewSupportService(erpClient, &cfg.Storage, log)
	dashboardService := service.NewDashboardService(erpClient, log)
	auditLogService := service.NewAuditLogService(auditLogRepo, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(&cfg.Session, tokens, sessionStore, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	auditMiddleware := middleware.NewAuditMiddleware(auditLogService, nil, log)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService, &cfg.Session, log),
		Orders:     handler.NewOrderHandler(orderService, log),
		DraftOrder: handler.NewDraftOrderHandler(draftService, cfg.Storage.MaxUploadSizeMB, log),
		Billing:    handler.NewBillingHandler(billingService, log),
		Catalog:    handler.NewCatalogHandler(catalogService, log),
		Support:    handler.NewSupportHandler(supportService, cfg.Storage.MaxUploadSizeMB, log),
		Dashboard:  handler.NewDashboardHandler(dashboardService, log),
		Audit:      handler.NewAuditHandler(auditLogService, log),
	}

	rt := router.NewRouter(
		cfg,
		log,
		db,
		redisClient,
		erpClient,
		metrics,
		authMiddleware,
		rateLimiter,
		auditMiddleware,
		handlers,
	)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log, cfg.Jobs.TimeoutDuration(), metrics)
		err := jobs.RegisterCleanupJobs(scheduler, jobs.CleanupConfig{
			SessionCron:        cfg.Jobs.SessionCleanupCron,
			DraftCron:          cfg.Jobs.DraftCleanupCron,
			DraftMaxAge:        cfg.Jobs.DraftMaxAge(),
			AuditCron:          cfg.Jobs.AuditCleanupCron,
			AuditRetentionDays: cfg.Jobs.AuditRetentionDays,
		}, sessionStore, draftService, auditLogService, log)
		if err != nil {
			return fmt.Errorf("failed to register jobs: %w", err)
		}
		scheduler.Start()
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      http.TimeoutHandler(rt.Setup(), cfg.Server.RequestTimeoutDuration(), `{"error":"Request Timeout","message":"The request took too long"}`),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Warn("Error closing redis connection", zap.Error(err))
			}
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
