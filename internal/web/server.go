// Package web exposes the demo over HTTP.
//
// One endpoint does the work: GET /create-user runs the creation scenario
// in the request's goroutine and returns a fixed plain-text body. The
// optional fail=yes query parameter triggers the rollback demonstration.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"txsignals/internal/stats"
	"txsignals/internal/user"
)

// Server is the HTTP surface around the user service.
type Server struct {
	service *user.Service
	tokens  TokenGenerator
	logger  *slog.Logger
	metrics *Metrics
	limiter *rate.Limiter
}

// Option configures a Server.
type Option func(*Server)

// WithTokenGenerator overrides the request token generator.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(s *Server) { s.tokens = g }
}

// WithRateLimit enables a global token-bucket limiter on /create-user.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) { s.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewServer creates a Server with UUIDv7 tokens and fresh metrics.
func NewServer(svc *user.Service, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		service: svc,
		tokens:  UUIDv7Generator{},
		logger:  logger,
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /create-user", rateLimitMiddleware(s.limiter, s.metrics)(http.HandlerFunc(s.handleCreateUser)))
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return logMiddleware(s.logger)(mux)
}

// handleCreateUser runs the creation scenario synchronously.
//
// The response is always 200 with one of the two fixed bodies. The
// underlying error never reaches the caller; it is logged by the service
// and converted to the failure text.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	token := s.tokens.Generate()
	simulateFailure := r.URL.Query().Get("fail") == "yes"

	start := time.Now()
	_, resp, err := s.service.Create(r.Context(), token, simulateFailure)

	outcome := stats.KindCommitted
	if err != nil {
		outcome = stats.KindRolledBack
	}
	s.metrics.ObserveRequest(outcome, time.Since(start).Seconds())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, werr := w.Write([]byte(resp)); werr != nil {
		s.logger.Warn("write response failed", "error", werr)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
//
// Note the write timeout: the notifier blocks the handler for its full
// delay, so the timeout must exceed the configured delay.
func (s *Server) Run(ctx context.Context, addr string, notifierDelay time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      notifierDelay + 30*time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("http server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), notifierDelay+5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("http server stopped gracefully")
		return nil

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
