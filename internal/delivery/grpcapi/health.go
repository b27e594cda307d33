package grpcapi

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// PaymentServiceName is the name orchestrators probe in addition to the overall status.
const PaymentServiceName = "mpesa.payment"

// NewServer builds the gRPC listener that only carries health checks.
func NewServer(hs *health.Server) *grpc.Server {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)
	return srv
}

// NewHealthServer starts NOT_SERVING until the first successful probe.
func NewHealthServer() *health.Server {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(PaymentServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return hs
}

func SetServing(hs *health.Server, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus("", status)
	hs.SetServingStatus(PaymentServiceName, status)
}
