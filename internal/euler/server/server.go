package server

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"

	pb "github.com/msto63/euler/api/gen/euler"
	mdwerror "github.com/msto63/euler/foundation/core/error"
	"github.com/msto63/euler/internal/euler/service"
	coreGrpc "github.com/msto63/euler/pkg/core/grpc"
	"github.com/msto63/euler/pkg/core/health"
	"github.com/msto63/euler/pkg/core/logging"
	"github.com/msto63/euler/pkg/core/version"
)

// Server is the euler gRPC server
type Server struct {
	pb.UnimplementedEulerServiceServer
	service   *service.Service
	grpc      *coreGrpc.Server
	health    *health.Registry
	logger    *logging.Logger
	config    Config
	startTime time.Time
}

// Config holds server configuration
type Config struct {
	Host             string
	Port             int
	EnableReflection bool
	// SolveTimeout bounds a single Solve call; zero means no bound
	SolveTimeout time.Duration
	Service      service.Config
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         9300,
		SolveTimeout: 30 * time.Second,
	}
}

// New creates a new euler server
func New(cfg Config) (*Server, error) {
	logger := logging.New("euler-server")

	svc, err := service.NewService(cfg.Service)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create service").
			WithCode(mdwerror.CodeServiceInitialization).
			WithOperation("server.New")
	}

	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcCfg.EnableReflection = cfg.EnableReflection

	grpcServer := coreGrpc.NewServer(grpcCfg)

	server := &Server{
		service:   svc,
		grpc:      grpcServer,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}

	server.health = health.NewRegistry("euler", version.Euler)
	server.health.RegisterFunc("service", server.checkService)
	if cfg.Service.Cache != nil {
		c := cfg.Service.Cache
		server.health.RegisterFunc("cache", func(ctx context.Context) health.CheckResult {
			st := c.Stats()
			return health.CheckResult{
				Name:    "cache",
				Status:  health.StatusHealthy,
				Message: fmt.Sprintf("%d cached results", st.Size),
				Details: map[string]interface{}{
					"hits":     st.Hits,
					"misses":   st.Misses,
					"hit_rate": st.HitRate,
				},
			}
		})
	}

	pb.RegisterEulerServiceServer(grpcServer.GRPCServer(), server)
	grpcServer.SetServing(pb.ServiceName, true)

	return server, nil
}

// checkService solves the graphical root task as a smoke test
func (s *Server) checkService(ctx context.Context) health.CheckResult {
	res, err := s.service.Solve(ctx, 1, nil)
	if err != nil {
		return health.CheckResult{
			Name:    "service",
			Status:  health.StatusUnhealthy,
			Message: err.Error(),
		}
	}
	if msg, failed := service.ErrorMessage(res); failed {
		return health.CheckResult{
			Name:    "service",
			Status:  health.StatusDegraded,
			Message: msg,
		}
	}
	return health.CheckResult{
		Name:    "service",
		Status:  health.StatusHealthy,
		Message: "Euler solver is operational",
		Details: map[string]interface{}{
			"tasks":  len(s.service.Tasks()),
			"uptime": time.Since(s.startTime).Round(time.Second).String(),
		},
	}
}

// Start starts the server
func (s *Server) Start() error {
	s.logger.Info("Starting Euler server", "host", s.config.Host, "port", s.config.Port)
	return s.grpc.Start()
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() error {
	s.logger.Info("Starting Euler server (async)", "host", s.config.Host, "port", s.config.Port)
	return s.grpc.StartAsync()
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Stopping Euler server")
	s.grpc.StopWithTimeout(ctx)
}

// GRPCServer returns the underlying gRPC server
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc.GRPCServer()
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// Address returns the listen address, resolved once the server runs
func (s *Server) Address() string {
	return s.grpc.Address()
}

// Service returns the dispatcher behind the server
func (s *Server) Service() *service.Service {
	return s.service
}
