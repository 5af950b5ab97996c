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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sangkips/farmstore-admin/internal/application/service"
	"github.com/sangkips/farmstore-admin/internal/clock"
	"github.com/sangkips/farmstore-admin/internal/config"
	"github.com/sangkips/farmstore-admin/internal/infrastructure/database"
	"github.com/sangkips/farmstore-admin/internal/infrastructure/metrics"
	"github.com/sangkips/farmstore-admin/internal/infrastructure/repository"
	"github.com/sangkips/farmstore-admin/internal/presentation/http/handler"
	"github.com/sangkips/farmstore-admin/internal/presentation/http/routes"
	"github.com/sangkips/farmstore-admin/pkg/logger"
	"github.com/sangkips/farmstore-admin/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, log, logger.NewGormLogger(cfg.App.Debug))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	clk := clock.RealClock{}
	reportMetrics := metrics.NewReportMetrics(prometheus.DefaultRegisterer, cfg.App.Name)
	snapshots := service.NewSnapshotStore(clk, cfg.Report.SnapshotTTL, cfg.Report.MaxSnapshots)

	reportService := service.NewReportService(orderRepo, productRepo, settingsRepo, snapshots, clk, reportMetrics, cfg.Report)
	orderService := service.NewOrderService(orderRepo, snapshots, reportMetrics)
	settingsService := service.NewSettingsService(settingsRepo, cfg.Report)

	// Initialize handlers
	handlers := &routes.Handlers{
		Report:   handler.NewReportHandler(reportService),
		Order:    handler.NewOrderHandler(orderService),
		Settings: handler.NewSettingsHandler(settingsService),
	}

	rateLimiter, exportLimiter := routes.NewRateLimiters(&cfg.RateLimit)
	defer rateLimiter.Stop()
	defer exportLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:    jwtManager,
		Cfg:           cfg,
		Logger:        log,
		RateLimiter:   rateLimiter,
		ExportLimiter: exportLimiter,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("server stopped")
}
