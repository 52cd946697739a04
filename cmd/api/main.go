package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/logger"
	"github.com/pageza/freshkeep/backend/internal/server"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync(zl)

	// Create and start server
	srv, err := server.New(context.Background(), cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize server", zap.Error(err))
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			zl.Error("server error", zap.Error(err))
		}
	case sig := <-quit:
		zl.Info("received signal", zap.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	zl.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server shutdown error", zap.Error(err))
		return
	}
	zl.Info("server stopped")
}
