package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tw-stock-insight/internal/dashboard/config"
	delivery "tw-stock-insight/internal/dashboard/delivery/http"
	_ "tw-stock-insight/internal/dashboard/docs"
	"tw-stock-insight/internal/dashboard/repository"
	"tw-stock-insight/internal/dashboard/service"
	"tw-stock-insight/pkg/cache"
	"tw-stock-insight/pkg/logger"
	"tw-stock-insight/pkg/redis"
	"tw-stock-insight/pkg/telegram"
	"tw-stock-insight/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the dashboard service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Dashboard Service", logger.Field("name", cfg.App.Name))

	if cfg.Gemini.APIKey == "" {
		appLogger.Fatal("Gemini API key is required (set GEMINI_API_KEY)")
	}
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini client", logger.ErrorField(err))
	}

	// Initialize cache
	var appCache cache.Cache
	switch cfg.Cache.Driver {
	case "redis":
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		appCache = cache.NewRedis(redisClient.Client, cfg.Cache.Prefix)
	case "memory":
		appCache = cache.NewMemory(cfg.Sentiment.CacheTTL, 2*cfg.Sentiment.CacheTTL)
	default:
		appLogger.Fatal("Unknown cache driver", logger.StringField("driver", cfg.Cache.Driver))
	}

	// Initialize repositories
	narrativeRepo := repository.NewGeminiNarrativeRepository(cfg, appLogger, genaiClient.Models)
	marketDataRepo := repository.NewFinMindRepository(cfg, appLogger)
	feedRepo := repository.NewSentimentFeedRepository(cfg, appLogger, appCache)
	headlineRepo := repository.NewHeadlineRepository(cfg, appLogger, appCache)

	// Initialize services
	institutionalSvc := service.NewInstitutionalService(cfg, appLogger, marketDataRepo)
	sentimentSvc := service.NewSentimentService(appLogger, feedRepo)
	aggregatorSvc := service.NewAggregatorService(appLogger, narrativeRepo, institutionalSvc, sentimentSvc)
	session := service.NewSession(appLogger, aggregatorSvc)
	defer session.Close()

	notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		appLogger.Warn("Telegram digest disabled", logger.ErrorField(err))
		notifier = nil
	}
	digestSvc := service.NewDigestService(appLogger, session, notifier)

	// Start feed refresher
	if cfg.Dashboard.FeedRefreshCron != "" {
		refresher, err := service.NewFeedRefresher(appLogger, feedRepo, cfg.Dashboard.FeedRefreshCron)
		if err != nil {
			appLogger.Fatal("Failed to initialize feed refresher", logger.ErrorField(err))
		}
		utils.GoSafe(appLogger, func() {
			refresher.RefreshNow(ctx)
			if err := refresher.Start(ctx); err != nil {
				appLogger.Error("Feed refresher stopped", logger.ErrorField(err))
			}
		})
	}

	if cfg.Dashboard.SearchOnStartup {
		utils.GoSafe(appLogger, func() {
			state := session.Submit(ctx, cfg.Dashboard.DefaultTicker)
			appLogger.Info("Startup search finished",
				logger.StringField("ticker", state.Ticker()),
				logger.Field("phase", state.Phase()),
			)
		})
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")
	sessionHandler := delivery.NewSessionHandler(session, digestSvc, appLogger)
	sessionHandler.RegisterRoutes(apiV1)

	stockHandler := delivery.NewStockHandler(aggregatorSvc, institutionalSvc, sentimentSvc, headlineRepo, appLogger)
	stocksGroup := apiV1.Group("/stocks")
	stockHandler.RegisterRoutes(stocksGroup)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Taiwan Stock Insight API
// @version 1.0
// @description Aggregates an AI narrative, institutional flows and community sentiment for a Taiwan stock.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "dashboard-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard-service CLI: %s\n", err)
		os.Exit(1)
	}
}
