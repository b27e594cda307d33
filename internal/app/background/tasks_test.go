package background

import (
	"context"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-mpesa-service/internal/delivery/grpcapi"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestProbeFollowsDatabase(t *testing.T) {
	var pingErr error
	hs := grpcapi.NewHealthServer()
	bt := NewBackgroundTasks(pingFunc(func(context.Context) error { return pingErr }), hs)

	status := func() healthpb.HealthCheckResponse_ServingStatus {
		resp, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{Service: grpcapi.PaymentServiceName})
		if err != nil {
			t.Fatal(err)
		}
		return resp.Status
	}

	if !bt.probe(context.Background()) || status() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("healthy db: status = %v", status())
	}

	pingErr = errors.New("connection refused")
	if bt.probe(context.Background()) || status() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("down db: status = %v", status())
	}
}
