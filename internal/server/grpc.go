package server

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the gRPC health service name reported for the issue API.
const ServiceName = "issueboard.Issues"

// NewGRPCServer creates a gRPC server with standard interceptors and
// registers the health service and reflection. Callers flip serving status
// through the returned health server during startup and shutdown.
func NewGRPCServer(authToken string) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor,
			LoggingInterceptor,
			AuthInterceptor(authToken),
		),
		grpc.ChainStreamInterceptor(
			StreamAuthInterceptor(authToken),
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	return srv, hs
}
