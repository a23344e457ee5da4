package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/SscSPs/finance_dashboard/internal/core/services"
	"github.com/SscSPs/finance_dashboard/internal/handlers"
	"github.com/SscSPs/finance_dashboard/internal/middleware"
	"github.com/SscSPs/finance_dashboard/internal/platform/config"
	"github.com/SscSPs/finance_dashboard/internal/repositories"
	"github.com/SscSPs/finance_dashboard/internal/repositories/kv"
	"github.com/SscSPs/finance_dashboard/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Finance Dashboard API
// @version 1.0
// @description Personal finance ledger: accounts, transactions, goals and dashboard reports.

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
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := middleware.WithLogger(context.Background(), logger)

	store, closeStore, err := repositories.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open storage", slog.String("driver", string(cfg.StorageDriver)), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	svc := services.NewServiceContainer(cfg, kv.NewRepositoryProvider(store, logger))
	if err := svc.Finance.Initialize(ctx); err != nil {
		logger.Error("Failed to initialize ledger", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer svc.Finance.Close()

	unsubscribe := svc.Finance.OnExternalChange(func(state domain.LedgerState) {
		logger.Info("Ledger changed by another writer; restart or reset to pick it up",
			slog.Int("accounts", len(state.Accounts)),
			slog.Int("transactions", len(state.Transactions)))
	})
	defer unsubscribe()

	analytics := utils.InitializePosthogClient(cfg.PostHogAPIKey, logger)
	defer analytics.Close()

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RateLimit(rateLimiter))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svc, analytics)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", string(cfg.StorageDriver)))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
