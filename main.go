package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwaldrep/salesdesk/backend/config"
	"github.com/mwaldrep/salesdesk/backend/handler"
	"github.com/mwaldrep/salesdesk/backend/middleware"
	"github.com/mwaldrep/salesdesk/backend/pkg/logger"
	"github.com/mwaldrep/salesdesk/backend/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	slog.Info("configuration loaded successfully")

	// Open the record store
	store, err := service.OpenStore(&cfg.Store)
	if err != nil {
		slog.Error("failed to open record store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Object storage for CSV exports is optional; without it the
	// export bulk action reports unavailable
	var exporter *service.Exporter
	if cfg.Minio.Endpoint != "" {
		objects, err := service.NewObjectStore(&cfg.Minio)
		if err != nil {
			slog.Error("failed to initialize object storage", "error", err)
			os.Exit(1)
		}
		if err := objects.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure export bucket", "error", err)
			os.Exit(1)
		}
		exporter = service.NewExporter(objects)
	} else {
		slog.Warn("object storage not configured, exports disabled")
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	contactHandler := handler.NewContactHandler(store, exporter)
	opportunityHandler := handler.NewOpportunityHandler(store, exporter)
	accountHandler := handler.NewAccountHandler(store)
	gradeHandler := handler.NewGradeHandler(store)
	activityHandler := handler.NewActivityHandler(store)
	dashboardHandler := handler.NewDashboardHandler(store)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())
	router.Use(middleware.RateLimit(100, time.Minute))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.GET("/contacts", contactHandler.List)
		protected.POST("/contacts", contactHandler.Create)
		protected.GET("/contacts/:id", contactHandler.Get)
		protected.PUT("/contacts/:id", contactHandler.Update)
		protected.DELETE("/contacts/:id", contactHandler.Delete)
		protected.GET("/contacts/:id/history", contactHandler.History)
		protected.POST("/contacts/bulk", contactHandler.Bulk)

		protected.GET("/opportunities", opportunityHandler.List)
		protected.POST("/opportunities", opportunityHandler.Create)
		protected.GET("/opportunities/forecast", opportunityHandler.Forecast)
		protected.GET("/opportunities/:id", opportunityHandler.Get)
		protected.PUT("/opportunities/:id", opportunityHandler.Update)
		protected.DELETE("/opportunities/:id", opportunityHandler.Delete)
		protected.POST("/opportunities/bulk", opportunityHandler.Bulk)

		protected.GET("/accounts", accountHandler.List)
		protected.POST("/accounts", accountHandler.Create)
		protected.GET("/accounts/:id", accountHandler.Get)
		protected.PUT("/accounts/:id", accountHandler.Update)
		protected.DELETE("/accounts/:id", accountHandler.Delete)

		protected.GET("/grades", gradeHandler.List)
		protected.POST("/grades", gradeHandler.Create)
		protected.GET("/grades/:id", gradeHandler.Get)
		protected.PUT("/grades/:id", gradeHandler.Update)
		protected.DELETE("/grades/:id", gradeHandler.Delete)

		protected.GET("/activities", activityHandler.List)
		protected.POST("/activities", activityHandler.Create)
		protected.PUT("/activities/:id/complete", activityHandler.Complete)
		protected.DELETE("/activities/:id", activityHandler.Delete)

		protected.GET("/dashboard/sales", dashboardHandler.Sales)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exited")
}

// corsMiddleware allows the browser frontend to call the API from
// another origin
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
