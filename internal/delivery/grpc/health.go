package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/vogiaan1904/swiftseats/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "swiftseats.booking"

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthServer struct {
	srv    *grpc.Server
	health *health.Server
	deps   map[string]Pinger
	l      logger.Logger
}

func NewHealthServer(deps map[string]Pinger, l logger.Logger) *HealthServer {
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{
		srv:    srv,
		health: hs,
		deps:   deps,
		l:      l,
	}
}

func (s *HealthServer) Serve(lis net.Listener) error {
	return s.srv.Serve(lis)
}

// Watch refreshes the service status from the dependency pings until ctx
// is done.
func (s *HealthServer) Watch(ctx context.Context, interval time.Duration) {
	s.refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *HealthServer) refresh(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	for name, dep := range s.deps {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := dep.Ping(pctx)
		cancel()
		if err != nil {
			s.l.Warnf(ctx, "delivery.grpc.HealthServer.refresh: %s: %v", name, err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus(ServiceName, status)
}

// Shutdown marks everything NOT_SERVING and stops the server, forcing it
// closed when ctx expires first.
func (s *HealthServer) Shutdown(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.srv.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.srv.Stop()
		return fmt.Errorf("grpc graceful stop: %w", ctx.Err())
	}
}
