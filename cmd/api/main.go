package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/atelierhq/atelier-api/docs" // Swagger docs
	"github.com/atelierhq/atelier-api/internal/config"
	"github.com/atelierhq/atelier-api/internal/gateway"
	"github.com/atelierhq/atelier-api/internal/handlers"
	"github.com/atelierhq/atelier-api/internal/jobs"
	"github.com/atelierhq/atelier-api/internal/middleware"
	"github.com/atelierhq/atelier-api/internal/services"
	"github.com/atelierhq/atelier-api/internal/session"
	"github.com/atelierhq/atelier-api/internal/storage"
	"github.com/atelierhq/atelier-api/pkg/dates"
	"github.com/atelierhq/atelier-api/pkg/logger"
)

// @title Atelier API
// @version 1.0
// @description Backend-for-frontend for the Atelier studio management UI

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize storage for generated documents
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Gateway to the legacy studio backend. Requests made on behalf of a
	// user forward their bearer token; background jobs fall back to the
	// service token.
	gw := gateway.New(cfg.BackendBaseURL, time.Duration(cfg.BackendTimeout)*time.Second,
		func(ctx context.Context) string {
			if token := middleware.BackendToken(ctx); token != "" {
				return token
			}
			return cfg.BackendServiceToken
		})
	logger.Info("Gateway configured", "backend", cfg.BackendBaseURL)

	// Drawer sessions
	sessions := session.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(gw, store, worker)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, sessions)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, sessions, worker)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Check)

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Clients
			protected.GET("/clients", h.Client.Index)
			protected.POST("/clients", h.Client.Create)
			protected.GET("/clients/:id", h.Client.Show)
			protected.GET("/clients/:id/detail", h.Client.Detail)
			protected.PUT("/clients/:id", h.Client.Update)
			protected.DELETE("/clients/:id", h.Client.Delete)

			// Projects
			protected.GET("/projects", h.Project.Index)
			protected.POST("/projects", h.Project.Create)
			protected.GET("/projects/:id", h.Project.Show)
			protected.GET("/projects/:id/detail", h.Project.Detail)
			protected.PUT("/projects/:id", h.Project.Update)
			protected.PATCH("/projects/:id/status", h.Project.UpdateStatus)
			protected.DELETE("/projects/:id", h.Project.Delete)

			// Invoices
			protected.GET("/invoices", h.Invoice.Index)
			protected.POST("/invoices", h.Invoice.Create)
			protected.GET("/invoices/:id", h.Invoice.Show)
			protected.PUT("/invoices/:id", h.Invoice.Update)
			protected.DELETE("/invoices/:id", h.Invoice.Delete)
			protected.POST("/invoices/:id/send", h.Invoice.Send)
			protected.POST("/invoices/:id/cancel", h.Invoice.Cancel)
			protected.POST("/invoices/:id/payments", h.Invoice.RecordPayment)
			protected.GET("/invoices/:id/pdf", h.Invoice.DownloadPDF)

			// Income
			protected.GET("/income", h.Income.Index)
			protected.POST("/income", h.Income.Create)
			protected.GET("/income/:id", h.Income.Show)
			protected.PUT("/income/:id", h.Income.Update)
			protected.DELETE("/income/:id", h.Income.Delete)

			// Expenses
			protected.GET("/expenses", h.Expense.Index)
			protected.POST("/expenses", h.Expense.Create)
			protected.GET("/expenses/:id", h.Expense.Show)
			protected.PUT("/expenses/:id", h.Expense.Update)
			protected.DELETE("/expenses/:id", h.Expense.Delete)
			protected.POST("/expenses/:id/approve", h.Expense.Approve)
			protected.POST("/expenses/:id/reject", h.Expense.Reject)
			protected.POST("/expenses/:id/pay", h.Expense.Pay)

			// Dashboard
			protected.GET("/dashboard/stats", h.Dashboard.Stats)

			// Reports
			protected.GET("/reports/financials", h.Report.Financials)
			protected.GET("/reports/invoice_aging", h.Report.InvoiceAging)

			// Admin-only operations
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/jobs/status", h.Job.Status)
				admin.GET("/documents/*path", h.Document.Download)
			}

			// Drawer navigation
			drawer := protected.Group("/drawer")
			{
				drawer.POST("/sessions", h.Drawer.CreateSession)
				drawer.GET("/:sid", h.Drawer.State)
				drawer.DELETE("/:sid", h.Drawer.DeleteSession)
				drawer.POST("/:sid/push", h.Drawer.Push)
				drawer.POST("/:sid/pop", h.Drawer.Pop)
				drawer.POST("/:sid/back", h.Drawer.Back)
				drawer.POST("/:sid/mode", h.Drawer.SetMode)
				drawer.POST("/:sid/cancel", h.Drawer.CancelEdit)
				drawer.POST("/:sid/replace_top", h.Drawer.ReplaceTop)
				drawer.POST("/:sid/close", h.Drawer.Close)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, sessions *session.Store) {
	// Keep the dashboard snapshot warm
	worker.ScheduleEveryImmediate(15*time.Minute, func(ctx context.Context) error {
		logger.Info("[Job] Refreshing dashboard snapshot...")
		return svcs.Dashboard.RefreshSnapshot(ctx)
	})

	// Evict idle drawer sessions
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		sessions.Sweep()
		return nil
	})

	// Flag invoices past their due date
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking overdue invoices...")
		today := dates.ToAPIFormat(time.Now().Format(dates.InputLayout))
		for _, inv := range svcs.Invoices.FindOverdue(ctx, today) {
			_, err := svcs.Invoices.MarkOverdue(ctx, inv.ID)
			if err != nil && !errors.Is(err, services.ErrInvalidState) {
				logger.Error("Failed to mark invoice overdue", "invoice_id", inv.ID, "error", err)
			}
		}
		return nil
	})

	logger.Info("Scheduled recurring jobs")
}
