package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/adapters/rates"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/ports"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/services"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/handlers"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/middleware"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/repositories/kvstore"
	"github.com/mytechsolutions09/artistic-pro-admin/pkg/config"
	"github.com/mytechsolutions09/artistic-pro-admin/pkg/storage"
)

// @title Artistic Pro Admin API
// @version 1.0
// @description Admin backend for the Artistic Pro print-on-demand store.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Open the embedded store backing the currency engine
	db, err := storage.OpenBadger(cfg.BadgerPath)
	if err != nil {
		logger.Error("Failed to open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.CloseBadger(db)
	logger.Info("Storage opened", slog.String("path", cfg.BadgerPath))

	store := kvstore.NewBadgerStore(db)

	// Wire the currency engine
	registry := services.NewRegistry()
	settings := services.NewSettingsService(store, registry)
	cache := services.NewRateCache(store, registry, logger)

	httpClient := &http.Client{Timeout: cfg.RatesAPITimeout}
	providers := []ports.RateProvider{
		rates.NewLiveProvider(cfg.RatesAPIURL, httpClient, registry),
		rates.NewSimulatedProvider(registry, nil),
		rates.NewStaticProvider(registry),
	}
	updater := services.NewRateUpdater(providers, cache, settings, logger)
	converter := services.NewConverter(cache, registry)
	scheduler := services.NewRefreshScheduler(logger)

	currencyService := services.NewCurrencyService(store, registry, settings, cache, updater, converter, scheduler, logger)
	currencyService.SetAutoUpdateInterval(cfg.AutoUpdateInterval)
	if err := currencyService.Init(context.Background()); err != nil {
		logger.Error("Failed to initialize currency engine", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer currencyService.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Manual refresh hits a third-party API; cap it per client IP.
	refreshLimiter := middleware.RateLimit(limiter.New(memory.NewStore(), limiter.Rate{
		Period: time.Hour,
		Limit:  cfg.RefreshPerHour,
	}))

	handlers.RegisterRoutes(r, cfg, currencyService, refreshLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
