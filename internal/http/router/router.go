package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/database"
	"github.com/lordsmint/portal-api/internal/http/handler"
	"github.com/lordsmint/portal-api/internal/http/middleware"
	"github.com/lordsmint/portal-api/internal/observability"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/lordsmint/portal-api/docs" // Import generated swagger docs
)

const readinessTimeout = 3 * time.Second

// Pinger is a dependency checked by the readiness probe
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups the API handlers mounted under /api/v1
type Handlers struct {
	Auth       *handler.AuthHandler
	Orders     *handler.OrderHandler
	DraftOrder *handler.DraftOrderHandler
	Billing    *handler.BillingHandler
	Catalog    *handler.CatalogHandler
	Support    *handler.SupportHandler
	Dashboard  *handler.DashboardHandler
	Audit      *handler.AuditHandler
}

type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	db              *gorm.DB
	redis           *redis.Client
	erp             Pinger
	metrics         *observability.Metrics
	authMiddleware  *auth.Middleware
	rateLimiter     *middleware.RateLimiter
	auditMiddleware *middleware.AuditMiddleware
	handlers        Handlers
}

// NewRouter wires the HTTP surface. redis may be nil when caching is off.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	erp Pinger,
	metrics *observability.Metrics,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	auditMiddleware *middleware.AuditMiddleware,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		redis:           redisClient,
		erp:             erp,
		metrics:         metrics,
		authMiddleware:  authMiddleware,
		rateLimiter:     rateLimiter,
		auditMiddleware: auditMiddleware,
		handlers:        handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()
	h := rt.handlers

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware)
	}
	r.Use(rt.auditMiddleware.Audit)

	// Liveness
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.metrics != nil && rt.cfg.Server.EnableMetrics {
		r.Handle("/metrics", rt.metrics.Handler())
	}

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.With(rt.rateLimiter.LimitLogin).Post("/auth/login", h.Auth.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(middleware.CaptureUser)
			r.Use(rt.rateLimiter.LimitByUser)

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)

			r.Get("/dashboard", h.Dashboard.Summary)
			r.Get("/activity", h.Audit.ListMine)
			r.Get("/news", h.Support.News)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.Orders.List)

				// Static draft routes must precede /{name}
				r.Route("/draft", func(r chi.Router) {
					r.Get("/", h.DraftOrder.Get)
					r.Put("/warehouse", h.DraftOrder.SetWarehouse)
					r.Put("/plant", h.DraftOrder.SetPlant)
					r.Post("/items", h.DraftOrder.AddItem)
					r.Delete("/items", h.DraftOrder.Clear)
					r.Patch("/items/{itemCode}", h.DraftOrder.UpdateItem)
					r.Delete("/items/{itemCode}", h.DraftOrder.RemoveItem)
					r.Post("/submit", h.DraftOrder.Submit)
					r.Get("/submissions", h.DraftOrder.Submissions)
				})

				r.Get("/{name}", h.Orders.Get)
				r.Get("/{name}/timeline", h.Orders.Timeline)
				r.Get("/{name}/delivery-notes/{note}/pdf", h.Orders.DeliveryNotePDF)
				r.Get("/{name}/invoices/{invoice}/pdf", h.Orders.InvoicePDF)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", h.Billing.ListInvoices)
				r.Get("/{name}", h.Billing.GetInvoice)
				r.Get("/{name}/pdf", h.Billing.InvoicePDF)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", h.Billing.ListPayments)
				r.Get("/{name}", h.Billing.GetPayment)
				r.Get("/{name}/receipt", h.Billing.ReceiptPDF)
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/warehouses", h.Catalog.Warehouses)
				r.Get("/warehouses/{warehouse}/prices", h.Catalog.PriceList)
				r.Get("/plants", h.Catalog.Plants)
				r.Get("/item-groups", h.Catalog.ItemGroups)
				r.Get("/companies", h.Catalog.Companies)
				r.Get("/price-lists", h.Catalog.PriceLists)
				r.Get("/items", h.Catalog.Items)
				r.Get("/items/search", h.Catalog.SearchItems)
				r.Get("/items/{code}", h.Catalog.GetItem)
				r.Get("/items/{code}/stock", h.Catalog.StockBalance)
			})

			r.Route("/support", func(r chi.Router) {
				r.Post("/complaints", h.Support.CreateComplaint)
				r.Post("/feedback", h.Support.CreateFeedback)
				r.Post("/returns", h.Support.CreateReturnRequest)
				r.Post("/attachments", h.Support.UploadAttachment)
			})
		})
	})

	return r
}

// databaseHealth is the readiness probe with connection pool stats
func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := database.HealthCheck(ctx, rt.db); err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		writeHealth(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	sqlDB, err := rt.db.DB()
	if err != nil {
		writeHealth(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}
	stats := sqlDB.Stats()
	writeHealth(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			"max_idle_closed":      stats.MaxIdleClosed,
			"max_lifetime_closed":  stats.MaxLifetimeClosed,
		},
	})
}

// readiness checks every dependency the portal needs to serve requests
func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := make(map[string]interface{})
	allHealthy := true
	check := func(name string, err error) {
		if err != nil {
			rt.logger.Error("Readiness check failed", zap.String("dependency", name), zap.Error(err))
			checks[name] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
			allHealthy = false
			return
		}
		checks[name] = map[string]interface{}{"status": "healthy"}
	}

	check("database", database.HealthCheck(ctx, rt.db))
	if rt.erp != nil {
		check("erp", rt.erp.Ping(ctx))
	}
	if rt.redis != nil {
		check("redis", rt.redis.Ping(ctx).Err())
	}

	status, label := http.StatusOK, "healthy"
	if !allHealthy {
		status, label = http.StatusServiceUnavailable, "unhealthy"
	}
	writeHealth(w, status, map[string]interface{}{
		"status": label,
		"checks": checks,
	})
}

func writeHealth(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
