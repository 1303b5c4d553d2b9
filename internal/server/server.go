// Package server exposes the spell checker over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"vispell/internal/corrector"
)

// Checker is the part of the corrector the API serves.
type Checker interface {
	CheckText(text string) (corrector.CorrectionResult, error)
	GetSuggestions(word string) ([]string, error)
	ClearCache()
	CacheStats() corrector.CacheStats
	AddCustomWord(ctx context.Context, word string) error
	RemoveCustomWord(ctx context.Context, word string) error
}

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, ":3000" when empty.
	Addr string
	// ShutdownTimeout bounds how long in-flight requests may take to finish
	// once the server is stopping.
	ShutdownTimeout time.Duration
	Version         string
	Logger          *slog.Logger
	// Settings is reported verbatim by the health and stats endpoints.
	Settings any
}

type Server struct {
	checker    Checker
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *Metrics
	started    time.Time
	cfg        Config
}

func New(checker Checker, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":3000"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		checker: checker,
		logger:  cfg.Logger,
		metrics: NewMetrics(),
		started: time.Now(),
		cfg:     cfg,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRequestID(s.withLogging(s.withRecover(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting HTTP server", "addr", ln.Addr().String(), "version", s.cfg.Version)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("server stopped")
	return err
}
