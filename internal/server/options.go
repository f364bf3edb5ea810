package server

import (
	"log"
	"time"

	"github.com/agbru/modcalc/internal/config"
	"github.com/agbru/modcalc/internal/logging"
	"github.com/agbru/modcalc/internal/service"
)

// Option configures a Server at construction time.
type Option func(*Server)

// Timeouts bounds the phases of request handling.
type Timeouts struct {
	// Request caps one evaluation, independently of the client.
	Request  time.Duration
	Shutdown time.Duration
	Read     time.Duration
	// Write must exceed Request so that the timeout body can still be sent.
	Write time.Duration
	Idle  time.Duration
}

// writeSlack is added to the request budget to obtain the write deadline.
const writeSlack = 5 * time.Second

// TimeoutsFor derives the server timeouts from the evaluation timeout of
// cfg. A non-positive timeout falls back to config.DefaultTimeout.
func TimeoutsFor(cfg config.AppConfig) Timeouts {
	req := cfg.Timeout
	if req <= 0 {
		req = config.DefaultTimeout
	}
	return Timeouts{
		Request:  req,
		Shutdown: 30 * time.Second,
		Read:     10 * time.Second,
		Write:    req + writeSlack,
		Idle:     2 * time.Minute,
	}
}

// WithLogger replaces the default JSON logger. A nil logger is ignored.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger routes server logs to a standard library logger.
func WithStdLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStdLoggerAdapter(logger)
		}
	}
}

// WithService injects the evaluation service, bypassing the one built from
// the registry.
func WithService(svc service.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.service = svc
		}
	}
}

func WithTimeouts(t Timeouts) Option {
	return func(s *Server) { s.timeouts = t }
}

func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) { s.rateLimiter = rl }
}

func WithSecurityConfig(sc SecurityConfig) Option {
	return func(s *Server) { s.securityConfig = sc }
}

// WithMaxDigits caps the decimal length of each operand; 0 disables the
// check.
func WithMaxDigits(maxDigits int) Option {
	return func(s *Server) { s.securityConfig.MaxDigits = maxDigits }
}
