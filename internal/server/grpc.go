package server

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/specmock/specmock/internal/config"
	"github.com/specmock/specmock/internal/logger"
)

// grpcServer exposes the standard gRPC health service so orchestrators that
// probe over gRPC can watch the mock the same way they watch real services.
type grpcServer struct {
	address string

	server *grpc.Server
	health *health.Server

	logger *logger.Logger
}

func newGRPCServer(cfg config.Server, logger *logger.Logger) *grpcServer {
	srv := grpc.NewServer()

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)

	return &grpcServer{
		address: cfg.GRPCAddress,
		server:  srv,
		health:  healthSrv,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer() {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		g.logger.Error().Err(err).Str("address", g.address).Msg("gRPC server listen")
		return
	}

	g.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	if err := g.server.Serve(listener); err != nil {
		g.logger.Error().Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.health.Shutdown()
	g.server.GracefulStop()
}
