package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"intervai/internal/api"
	"intervai/internal/config"
	"intervai/internal/interview"
	"intervai/internal/provider"
	"intervai/internal/store"
)

func main() {
	// Optional .env for local development; real deployments use the
	// environment directly.
	_ = godotenv.Load()

	// Logger
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// SQLite
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	archive := store.NewInterviewStore(db)

	// Local question corpus and category selection
	seed := cfg.QuestionSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	bank, err := interview.NewBank(seed)
	if err != nil {
		logger.Error("failed to load question bank", "error", err)
		os.Exit(1)
	}
	selector := interview.NewSelector(seed)

	// Provider gateway
	registry := provider.NewRegistry(cfg.BaseURLOverrides)

	// Orchestrator
	svc := interview.NewService(
		registry, bank, selector, archive,
		cfg.GenerateTimeout, cfg.EvaluateTimeout,
		logger,
	)

	// Router
	router := api.NewRouter(db, svc, archive, cfg.APIKey, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("interview server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
