package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sp500-screener/internal/dashboard/config"
	delivery "sp500-screener/internal/dashboard/delivery/http"
	_ "sp500-screener/internal/dashboard/docs"
	"sp500-screener/internal/dashboard/repository"
	"sp500-screener/internal/dashboard/service"
	"sp500-screener/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the screener service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
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

	appLogger.Info("Starting Screener Service", logger.Field("name", cfg.App.Name))

	dataRepo := repository.NewScreenerDataRepository(cfg, appLogger)
	screenerSvc := service.NewScreenerService(cfg, dataRepo, appLogger)

	if cfg.Data.RefreshSchedule != "" {
		scheduler, err := service.NewRefreshScheduler(cfg.Data.RefreshSchedule, screenerSvc, appLogger)
		if err != nil {
			appLogger.Fatal("Invalid refresh schedule", logger.ErrorField(err))
		}
		go scheduler.Start(ctx)
	}

	renderer, err := delivery.NewTemplateRenderer()
	if err != nil {
		appLogger.Fatal("Failed to parse templates", logger.ErrorField(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				appLogger.Debug("request", logger.StringField("method", v.Method), logger.StringField("uri", v.URI), logger.IntField("status", v.Status))
			} else {
				appLogger.Warn("request failed", logger.StringField("method", v.Method), logger.StringField("uri", v.URI), logger.IntField("status", v.Status), logger.ErrorField(v.Error))
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	screenerHandler := delivery.NewScreenerHandler(screenerSvc, appLogger)
	screenerHandler.RegisterPageRoutes(e)
	apiV1 := e.Group("/api/v1")
	screenerHandler.RegisterRoutes(apiV1.Group("/screener"))
	e.GET("/health", screenerHandler.Health)

	assets := delivery.Assets()
	e.FileFS("/styles.css", "styles.css", assets)
	e.FileFS("/app.js", "app.js", assets)
	e.FileFS("/manifest.json", "manifest.json", assets)
	e.Static("/data", cfg.Static.DataDir)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Bind before loading: the dataset is usually served by this same process.
	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		appLogger.Fatal("Failed to bind HTTP listener", logger.ErrorField(err), logger.StringField("address", addr))
	}
	e.Listener = listener

	go func() {
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	go func() {
		_ = screenerSvc.Load(ctx)
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title S&P 500 Screener API
// @version 1.0
// @description Filterable, sortable view over the momentum screening dataset.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "screener-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-screener.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing screener-service CLI: %s\n", err)
		os.Exit(1)
	}
}
