// Command api is the GvG 3v3 Tracker API server.
//
// Usage:
//
//	gvg-api
//	STORE_DRIVER=postgres DATABASE_URL=postgres://... gvg-api
//	API_PORT=8080 SQLITE_PATH=./matches.db gvg-api

// @title GvG 3v3 Tracker API
// @version 1.0.0
// @description Records 3v3 guild-war battles and answers which attacking teams have worked against a given defense.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name GvG Tracker
// @license.name MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/gvg-tracker/internal/api"
	"github.com/albapepper/gvg-tracker/internal/cache"
	"github.com/albapepper/gvg-tracker/internal/config"
	"github.com/albapepper/gvg-tracker/internal/listener"
	"github.com/albapepper/gvg-tracker/internal/maintenance"
	"github.com/albapepper/gvg-tracker/internal/store"

	_ "github.com/albapepper/gvg-tracker/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Open the record store
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open record store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Start LISTEN/NOTIFY consumer so writes from other processes purge the cache
	if cfg.StoreDriver == config.DriverPostgres {
		go listener.Start(ctx, cfg.DatabaseURL, appCache, logger)
	}

	// Start maintenance tickers (catch-up sweep)
	go maintenance.Start(ctx, st, appCache, maintenance.Config{CatchUpInterval: cfg.SweepInterval}, logger)

	// Create router
	router := api.NewRouter(st, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting GvG Tracker API",
			"addr", addr,
			"environment", cfg.Environment,
			"store", cfg.StoreDriver,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			cancel()
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
