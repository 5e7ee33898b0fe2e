package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/mandi_ledger_app/internal/core/services"
	"github.com/SscSPs/mandi_ledger_app/internal/handlers"
	"github.com/SscSPs/mandi_ledger_app/internal/metrics"
	"github.com/SscSPs/mandi_ledger_app/internal/middleware"
	"github.com/SscSPs/mandi_ledger_app/internal/platform/config"
	"github.com/SscSPs/mandi_ledger_app/internal/platform/logger"
	"github.com/SscSPs/mandi_ledger_app/internal/platform/storage"
	"github.com/gin-gonic/gin"
)

// @title Mandi Ledger API
// @version 1.0
// @description Purchase and sale ledger for a commodity trading business.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	appLogger := logger.New(cfg.IsProduction, cfg.LogLevel, os.Stdout)
	slog.SetDefault(appLogger)

	store, err := storage.Open(context.Background(), cfg, true)
	if err != nil {
		appLogger.Error("Failed to initialize storage", slog.String("driver", cfg.DBDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()
	appLogger.Info("Ledger storage ready", slog.String("driver", cfg.DBDriver))

	metrics.Init()
	container := services.NewServiceContainer(cfg, store.Repos, appLogger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(appLogger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		appLogger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, container, store.Repos.Health); err != nil {
		appLogger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		appLogger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
