package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/promptgate/console/internal/api"
	"github.com/promptgate/console/internal/audit"
	"github.com/promptgate/console/internal/repository"
	"github.com/promptgate/console/internal/service"
	"github.com/promptgate/console/pkg/config"
	"github.com/promptgate/console/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(logger.ParseLevel(cfg.LogLevel), os.Stdout, cfg.LogJSON)
	logger.SetDefault(appLogger)

	logger.Info("Starting application", map[string]interface{}{
		"app":   cfg.AppName,
		"debug": cfg.Debug,
		"port":  cfg.Port,
	})

	// Initialize database
	if err := repository.InitDB(cfg); err != nil {
		logger.Fatal("Failed to initialize database", err, nil)
	}
	db := repository.GetDB()
	defer func() {
		if err := repository.Close(db); err != nil {
			logger.Error("Failed to close database", err, nil)
		}
	}()

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	metricsRepo := repository.NewMetricsRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	auditLog := audit.NewLogger(db)
	identity := service.ContextIdentityProvider{}
	authService := service.NewAuthService(userRepo, cfg)
	eventService := service.NewEventService(eventRepo, catalogRepo, identity, auditLog)
	metricsService := service.NewMetricsService(metricsRepo)

	// Handlers
	authHandler := api.NewAuthHandler(authService)
	eventHandler := api.NewEventHandler(eventService)
	catalogHandler := api.NewCatalogHandler(eventService)
	metricsHandler := api.NewMetricsHandler(metricsService, eventService)
	auditHandler := api.NewAuditHandler(auditLog)
	prometheusHandler := api.NewPrometheusHandler()

	// Setup router
	router := api.SetupRouter(authHandler, eventHandler, catalogHandler, metricsHandler, auditHandler, prometheusHandler, authService, db, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down gracefully...", nil)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Forced shutdown", err, nil)
		}
	}()

	logger.Info("Server starting", map[string]interface{}{
		"address":      addr,
		"api_endpoint": fmt.Sprintf("http://localhost%s/api", addr),
		"health_check": fmt.Sprintf("http://localhost%s/health", addr),
	})

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Failed to start server", err, nil)
	}
	logger.Info("Shutdown complete", nil)
}
