// Package server wires the inventory, its persistence and the HTTP stack
// into a runnable service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/api"
	"github.com/pageza/freshkeep/backend/internal/database"
	"github.com/pageza/freshkeep/backend/internal/expiry"
	"github.com/pageza/freshkeep/backend/internal/inventory"
	"github.com/pageza/freshkeep/backend/internal/metrics"
	"github.com/pageza/freshkeep/backend/internal/middleware"
	"github.com/pageza/freshkeep/backend/internal/router"
)

// Server represents the HTTP server
type Server struct {
	http    *http.Server
	store   *inventory.Store
	logger  *zap.Logger
	closers []func() error
}

// New builds the repository, store and routes described by cfg
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{logger: logger}

	repo, closeRepo, err := database.NewRepository(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageDriver, err)
	}
	s.closers = append(s.closers, closeRepo)

	m := metrics.New()
	store, err := inventory.NewStore(ctx, repo, expiry.NewPredictor(),
		inventory.WithLogger(logger.Named("inventory")),
		inventory.WithObserver(m.ObserveMutation),
	)
	if err != nil {
		_ = s.close()
		return nil, err
	}
	if err := m.TrackInventory(store); err != nil {
		_ = s.close()
		return nil, fmt.Errorf("failed to register inventory metrics: %w", err)
	}
	s.store = store

	deps := api.Dependencies{
		Store:        store,
		Logger:       logger,
		Metrics:      m,
		WriteLimiter: s.writeLimiter(cfg),
	}

	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.SetupRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// writeLimiter shares counters through Redis when it is configured and
// falls back to process memory otherwise
func (s *Server) writeLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimitWrites <= 0 {
		return nil
	}

	var counter middleware.Counter = middleware.NewMemoryCounter()
	if cfg.StorageDriver == config.DriverRedis || cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg, s.logger)
		if err != nil {
			// Continue with in-process counters if Redis is not available
			s.logger.Warn("rate limiting without Redis", zap.Error(err))
		} else {
			s.closers = append(s.closers, client.Close)
			counter = middleware.NewRedisCounter(client)
		}
	}
	return middleware.NewWriteRateLimiter(counter, cfg.RateLimitWrites, s.logger)
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Store returns the inventory store
func (s *Server) Store() *inventory.Store {
	return s.store
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and releases storage
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	return errors.Join(err, s.close())
}

func (s *Server) close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}
