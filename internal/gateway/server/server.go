package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/euler/internal/euler/service"
	"github.com/msto63/euler/internal/gateway/handler"
	coreGrpc "github.com/msto63/euler/pkg/core/grpc"
	"github.com/msto63/euler/pkg/core/health"
	"github.com/msto63/euler/pkg/core/logging"
	"github.com/msto63/euler/pkg/core/version"
)

// RequestIDHeader carries the request id of every HTTP exchange
const RequestIDHeader = "X-Request-ID"

// Server is the euler HTTP gateway
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	handler    *handler.Handler
	solver     service.Solver
	health     *health.Registry
	logger     *logging.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Handler      handler.Config
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler: handler.Config{
			Version:      version.Gateway,
			MaxBodyBytes: handler.DefaultMaxBodyBytes,
			SolveTimeout: 30 * time.Second,
			CORS:         true,
		},
	}
}

// New creates a new gateway in front of solver
func New(cfg Config, solver service.Solver) (*Server, error) {
	if solver == nil {
		return nil, errors.New("gateway: solver is required")
	}
	logger := logging.New("gateway-server")

	healthRegistry := health.NewRegistry("gateway", cfg.Handler.Version)
	healthRegistry.RegisterFunc("http", func(ctx context.Context) health.CheckResult {
		return health.CheckResult{
			Name:    "http",
			Status:  health.StatusHealthy,
			Message: "HTTP server is running",
		}
	})
	healthRegistry.RegisterFunc("solver", func(ctx context.Context) health.CheckResult {
		tasks, err := solver.ListTasks(ctx)
		if err != nil {
			return health.CheckResult{
				Name:    "solver",
				Status:  health.StatusUnhealthy,
				Message: err.Error(),
			}
		}
		return health.CheckResult{
			Name:    "solver",
			Status:  health.StatusHealthy,
			Message: fmt.Sprintf("%d tasks available", len(tasks)),
		}
	})

	h := handler.NewHandler(cfg.Handler, solver, healthRegistry)

	var origins []string
	if cfg.Handler.CORS {
		origins = cfg.Handler.AllowedOrigins
	}
	wsHandler := handler.NewWebSocketHandler(solver, origins, cfg.Handler.SolveTimeout)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/solve/ws", wsHandler)
	mux.Handle("/", h)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      requestIDMiddleware(loggingMiddleware(logger, mux)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		handler:    h,
		solver:     solver,
		health:     healthRegistry,
		logger:     logger,
		config:     cfg,
	}, nil
}

// requestIDMiddleware reuses or assigns the request id and stores it in the
// request context, from where gRPC clients propagate it
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(coreGrpc.WithRequestID(r.Context(), id)))
	})
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.WithRequestID(coreGrpc.GetRequestID(r.Context())).Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the underlying writer, which the WebSocket upgrade needs
// to hijack the connection
func (w *responseWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Hijack implements http.Hijacker
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	if err := s.listen(); err != nil {
		return err
	}
	s.logger.Info("Starting euler gateway", "address", s.Address())
	if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() error {
	if err := s.listen(); err != nil {
		return err
	}
	s.logger.Info("Starting euler gateway (async)", "address", s.Address())

	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	return nil
}

func (s *Server) listen() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = listener
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping euler gateway")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the listen address, resolved once the server runs
func (s *Server) Address() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// Solver returns the solver behind the gateway
func (s *Server) Solver() service.Solver {
	return s.solver
}
