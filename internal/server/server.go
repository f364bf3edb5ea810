// Package server provides the HTTP API of modcalc. It exposes operation
// evaluation, the operation catalogue, a health probe and Prometheus
// metrics behind a chain of security, rate limiting, logging and metrics
// middleware.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/agbru/modcalc/internal/config"
	"github.com/agbru/modcalc/internal/engine"
	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/logging"
	"github.com/agbru/modcalc/internal/service"
)

// routes lists the endpoints in registration order.
var routes = []string{"/evaluate", "/operations", "/health", "/metrics"}

// Server represents the HTTP server for the modcalc API.
// It wraps the standard http.Server and adds application-specific configuration
// and graceful shutdown capabilities.
type Server struct {
	evaluator      engine.Evaluator
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a new Server instance with the given evaluator and configuration.
// It initializes the HTTP server with timeouts and a request multiplexer.
//
// Parameters:
//   - evaluator: The operation registry.
//   - cfg: The application configuration (port, limits, etc.).
//   - opts: Optional functional options for customizing the server (e.g., WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(evaluator engine.Evaluator, cfg config.AppConfig, opts ...Option) *Server {
	security := DefaultSecurityConfig()
	if cfg.MaxDigits > 0 {
		security.MaxDigits = cfg.MaxDigits
	}
	s := &Server{
		evaluator:      evaluator,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server", cfg.LogLevel),
		securityConfig: security,
		metrics:        NewMetrics(),
		timeouts:       TimeoutsFor(cfg),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = service.NewCalculatorService(s.evaluator, s.cfg, s.securityConfig.MaxDigits)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()

	// Security -> RateLimit -> Logging -> Metrics -> Handler
	handlers := map[string]http.HandlerFunc{
		"/evaluate":   s.handleEvaluate,
		"/operations": s.handleOperations,
		"/health":     s.handleHealth,
		"/metrics":    s.handleMetrics,
	}
	for _, route := range routes {
		mux.HandleFunc(route, s.wrapWithMiddleware(handlers[route]))
	}

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.Read,
		WriteTimeout: s.timeouts.Write,
		IdleTimeout:  s.timeouts.Idle,
	}

	return s
}

// Handler returns the root handler with the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Serve listens on the configured port until ctx is canceled, then drains
// in-flight requests for at most the shutdown timeout. The caller owns
// signal handling and typically passes a context from
// signal.NotifyContext.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.NewServerError("server failed to start", err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting server",
		logging.String("addr", ln.Addr().String()),
		logging.Int("max_digits", s.securityConfig.MaxDigits),
		logging.Int("karatsuba_threshold", s.cfg.KaratsubaThreshold))
	for _, route := range routes {
		s.logger.Debug("route registered", logging.String("pattern", route))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return apperrors.NewServerError("server stopped unexpectedly", err)
	case <-ctx.Done():
		s.logger.Info("shutdown requested, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.Shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewServerError("graceful shutdown failed", err)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}
