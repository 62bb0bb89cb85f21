// Package grpc runs the admin gRPC endpoint that exposes the standard
// grpc.health.v1.Health service for orchestrators and load balancers.
package grpc

import (
	"context"
	"net"

	"github.com/arshan09/AuthenticationApp/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported alongside the overall
// ("") status.
const ServiceName = "auth.AuthService"

type HealthServer struct {
	address string
	logger  logging.Logger
	health  *health.Server
}

func NewHealthServer(a string, l logging.Logger) *HealthServer {
	h := health.NewServer()
	h.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		health:  h,
	}
}

// SetServing flips both the overall and the named service status.
func (s *HealthServer) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
