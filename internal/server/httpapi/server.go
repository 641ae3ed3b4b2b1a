package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shastore/shastore/internal/logging"
	"github.com/shastore/shastore/internal/server/config"
)

// Server wraps the http.Server with graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
	cfg        *config.Config
}

func NewServer(cfg *config.Config, logger logging.Logger, handler http.Handler) *Server {
	srv := &http.Server{
		Addr:        cfg.Addr,
		Handler:     handler,
		IdleTimeout: 120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run starts the server and blocks until SIGINT/SIGTERM or a listener
// error. On a signal it drains in-flight requests for up to
// cfg.ShutdownTimeout before returning.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server started", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info(ctx, "shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info(ctx, "context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info(ctx, "draining in-flight requests")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown error: %w", err)
	}

	s.logger.Info(ctx, "http server stopped")
	return nil
}
