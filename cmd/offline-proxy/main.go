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

	"sp500-screener/internal/offline/config"
	delivery "sp500-screener/internal/offline/delivery/http"
	"sp500-screener/internal/offline/repository"
	"sp500-screener/internal/offline/service"
	"sp500-screener/pkg/common"
	"sp500-screener/pkg/logger"
	"sp500-screener/pkg/redis"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the offline cache proxy",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	cacheName := cfg.Offline.CacheName
	if cacheName == "" {
		cacheName = common.DefaultCacheName
	}
	assets := cfg.Offline.Assets
	if len(assets) == 0 {
		assets = common.OfflineAssets
	}

	appLogger.Info("Starting Offline Proxy",
		logger.Field("name", cfg.App.Name),
		logger.StringField("cache", cacheName),
		logger.StringField("origin", cfg.Offline.OriginURL))

	var store repository.CacheStore
	switch cfg.Offline.Store {
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
		store = repository.NewRedisCacheStore(cacheName, redisClient)
	case "", "memory":
		store = repository.NewMemoryCacheStore(cacheName)
	default:
		appLogger.Fatal("Invalid cache store specified in config", logger.StringField("store", cfg.Offline.Store))
	}

	origin := repository.NewOriginRepository(cfg, appLogger)
	workerSvc := service.NewWorkerService(store, origin, assets, appLogger)

	// A failed install aborts activation of this cache version.
	if err := workerSvc.Install(ctx); err != nil {
		appLogger.Fatal("Failed to install offline cache", logger.ErrorField(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	proxyHandler := delivery.NewProxyHandler(workerSvc, appLogger)
	proxyHandler.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down proxy...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Proxy forced to shutdown", logger.ErrorField(err))
	}
	appLogger.Info("Proxy exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "offline-proxy"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-offline.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing offline-proxy CLI: %s\n", err)
		os.Exit(1)
	}
}
