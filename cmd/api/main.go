package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"union-site-backend/internal/app"
	"union-site-backend/internal/config"
	"union-site-backend/pkg/logger"
	"union-site-backend/pkg/validator"
)

func main() {
	logger.Init()
	defer logger.Close()

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables", nil)
	}

	cfg := config.New()
	validator.Init()

	application, err := app.New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize application", map[string]interface{}{"error": err.Error()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- application.Run()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", map[string]interface{}{"error": err.Error()})
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "Graceful shutdown failed", nil)
	}

	logger.Info("Server stopped", nil)
}
