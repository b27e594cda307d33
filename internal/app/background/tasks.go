package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-mpesa-service/internal/delivery/grpcapi"
	"google.golang.org/grpc/health"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type BackgroundTasks struct {
	DB            Pinger
	Health        *health.Server
	ProbeInterval time.Duration
}

func NewBackgroundTasks(db Pinger, hs *health.Server) *BackgroundTasks {
	return &BackgroundTasks{
		DB:            db,
		Health:        hs,
		ProbeInterval: 10 * time.Second,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startHealthProbe(ctx)
}

// startHealthProbe flips the gRPC health status with database reachability.
func (bt *BackgroundTasks) startHealthProbe(ctx context.Context) {
	bt.probe(ctx)

	ticker := time.NewTicker(bt.ProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			grpcapi.SetServing(bt.Health, false)
			return
		case <-ticker.C:
			bt.probe(ctx)
		}
	}
}

func (bt *BackgroundTasks) probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := bt.DB.PingContext(ctx)
	if err != nil {
		slog.Warn("database health probe failed", "error", err.Error())
	}
	grpcapi.SetServing(bt.Health, err == nil)
	return err == nil
}
