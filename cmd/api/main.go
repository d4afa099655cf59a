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

	"stocktrader/internal/config"
	"stocktrader/internal/database"
	"stocktrader/internal/logger"
	"stocktrader/internal/marketdata"
	"stocktrader/internal/server"
	"stocktrader/internal/services"
)

// @title           Stock Trading API
// @version         1.0.0
// @description     Instrument catalog, user watchlists and portfolios, and live market data.

// @host      localhost:5000
// @BasePath  /api

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database configuration
	dbConfig, err := database.ParseURL(appConfig.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	hasher, err := services.NewPasswordHasher(appConfig.PasswordHasher)
	if err != nil {
		return fmt.Errorf("failed to configure password hashing: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	market := marketdata.NewClient(marketdata.Config{
		BaseURL:       appConfig.FinnhubBaseURL,
		APIKey:        appConfig.FinnhubAPIKey,
		Timeout:       appConfig.MarketTimeout,
		CandleTimeout: appConfig.CandleTimeout,
	})

	router := server.NewRouter(server.Services{
		Instruments: services.NewInstrumentService(db),
		Users:       services.NewUserService(db, hasher),
		Market:      market,
		Predictions: services.NewPredictionService(market),
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting stock trading API on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutdown requested")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
