package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agbru/chainorder/internal/chain"
	"github.com/agbru/chainorder/internal/config"
	apperrors "github.com/agbru/chainorder/internal/errors"
	"github.com/agbru/chainorder/internal/logging"
	"github.com/agbru/chainorder/internal/service"
)

// Server represents the HTTP server for the matrix chain API.
// It wraps the standard http.Server and adds application-specific configuration
// and graceful shutdown capabilities.
type Server struct {
	factory        chain.SolverFactory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
	upgrader       websocket.Upgrader
	streamDelay    time.Duration
	done           chan struct{}
	closeOnce      sync.Once
}

// NewServer creates a new Server instance with the given solver factory and configuration.
// It initializes the HTTP server with timeouts and a request multiplexer.
//
// Parameters:
//   - factory: The factory to retrieve solving strategies from.
//   - cfg: The application configuration (port, limits, rate limiting, etc.).
//   - opts: Optional functional options for customizing the server (e.g., WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(factory chain.SolverFactory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
		streamDelay:    cfg.StreamDelay,
		done:           make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if cfg.MaxMatrices > 0 {
		s.securityConfig.MaxMatrices = cfg.MaxMatrices
	}
	if cfg.Timeout > 0 {
		s.timeouts.RequestTimeout = cfg.Timeout
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = service.NewSolverService(s.factory, s.securityConfig.MaxMatrices,
			chain.NewMetricsObserver(), chain.NewLoggingObserver(s.progressLogger(), progressLogThreshold))
	}

	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit,
			Burst:             cfg.RateBurst,
		})
	}

	s.upgrader.CheckOrigin = s.checkOrigin

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.wrapWithMiddleware("/", s.handleHealth))
	mux.HandleFunc("/health", s.wrapWithMiddleware("/health", s.handleHealth))
	mux.HandleFunc("/matrix-chain", s.wrapWithMiddleware("/matrix-chain", s.handleSolve))
	mux.HandleFunc("/matrix-chain/stream", s.wrapWithMiddleware("/matrix-chain/stream", s.handleStream))
	mux.HandleFunc("/algorithms", s.wrapWithMiddleware("/algorithms", s.handleAlgorithms))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware("/metrics", s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// progressLogThreshold is the progress step between two debug log lines.
const progressLogThreshold = 0.25

// progressLogger returns the zerolog logger behind s.logger, or a disabled
// one when the server logs through a standard log.Logger.
func (s *Server) progressLogger() zerolog.Logger {
	if zl, ok := s.logger.(*logging.ZerologAdapter); ok {
		return zl.Zerolog()
	}
	return zerolog.Nop()
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(path string, handler http.HandlerFunc) http.HandlerFunc {
	// Apply in reverse order: Security -> RequestID -> RateLimit -> Logging -> Metrics -> Handler
	wrapped := s.metricsMiddleware(path, handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = RequestIDMiddleware(wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// checkOrigin applies the CORS origin list to websocket upgrades.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.securityConfig.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// Handler returns the root handler with every route and middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start initializes and starts the HTTP server.
// It listens for incoming requests on the configured port and handles system
// signals (SIGINT, SIGTERM) to ensure a graceful shutdown.
//
// Returns:
//   - error: An error if the server fails to start or shuts down unexpectedly.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting server",
			logging.String("addr", s.httpServer.Addr),
			logging.Int("max_matrices", s.securityConfig.MaxMatrices),
			logging.Duration("request_timeout", s.timeouts.RequestTimeout))
		s.logger.Println("Available endpoints:")
		s.logger.Println("  POST /matrix-chain?algo=<algorithm>   {\"dimensions\": [...]}")
		s.logger.Println("  GET  /matrix-chain/stream?dims=<list>&delay=<duration>")
		s.logger.Println("  GET  /health")
		s.logger.Println("  GET  /algorithms")
		s.logger.Println("  GET  /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Println("Shutdown signal received, initiating graceful shutdown...")
	case err := <-errCh:
		s.rateLimiter.Stop()
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Println("Server stopped gracefully")
	return nil
}

// Shutdown stops accepting connections, ends open trace streams and waits
// for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.rateLimiter.Stop()
	})
	return s.httpServer.Shutdown(ctx)
}
