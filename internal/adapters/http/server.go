// Package http serves the local QuoteVault API with Gin.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/quotevault/quotevault/internal/platform/config"
)

const fallbackShutdownTimeout = 10 * time.Second

// Server owns the listener and the Gin engine of the local API.
type Server struct {
	engine *gin.Engine
	srv    *http.Server
	cfg    *config.ServerConfig
	logger *slog.Logger

	mu    sync.Mutex
	bound string
	ready chan struct{}
}

// New builds a server for cfg. Routes are registered on Engine before Serve.
func New(cfg *config.ServerConfig, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(limitBody(cfg.MaxRequestSize))

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
			Handler:           engine,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		cfg:    cfg,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Config() *config.ServerConfig {
	return s.cfg
}

// Addr is the bound address once Serve is listening, the configured one
// before that. With port 0 only the former carries the real port.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bound != "" {
		return s.bound
	}

	return s.srv.Addr
}

// Ready is closed once Serve has bound its listener.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Serve listens and serves until ctx is done, then drains in-flight
// requests for up to ShutdownTimeout. A clean stop returns nil.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	s.mu.Lock()
	s.bound = ln.Addr().String()
	s.mu.Unlock()
	close(s.ready)

	s.logger.Info("local API listening",
		slog.String("addr", ln.Addr().String()),
		slog.Int64("max_request_bytes", s.cfg.MaxRequestSize),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving local API: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		return s.drain(context.WithoutCancel(ctx))
	})

	return g.Wait()
}

func (s *Server) drain(ctx context.Context) error {
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = fallbackShutdownTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.logger.Info("draining local API", slog.Duration("timeout", timeout))

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("draining local API: %w", err)
	}

	s.logger.Info("local API stopped")

	return nil
}

// limitBody caps request bodies; reads past maxBytes fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
