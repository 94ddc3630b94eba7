package grpc

import (
	"context"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/mangrove-one/MangroveMarkets/domain/mvc"
	"github.com/mangrove-one/MangroveMarkets/log"
)

// HealthServer exposes the standard gRPC health service.
// Every venue is reported as its own service named by venue id; the
// overall service ("") is serving while at least one venue is healthy.
type HealthServer struct {
	server *grpc.Server
	health *health.Server

	dexUsecase mvc.DexUsecase
	logger     log.Logger
}

// OverallService is the service name for the aggregate health status.
const OverallService = ""

// NewHealthServer creates the gRPC health server. Statuses start as NOT_SERVING until Refresh is called.
func NewHealthServer(dexUsecase mvc.DexUsecase, logger log.Logger) *HealthServer {
	server := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(OverallService, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return &HealthServer{
		server:     server,
		health:     healthServer,
		dexUsecase: dexUsecase,
		logger:     logger,
	}
}

// Refresh checks all venues and updates the served statuses.
func (s *HealthServer) Refresh(ctx context.Context) {
	anyHealthy := false
	for venueID, healthy := range s.dexUsecase.VenueHealth(ctx) {
		s.health.SetServingStatus(venueID, servingStatus(healthy))
		anyHealthy = anyHealthy || healthy
	}

	s.health.SetServingStatus(OverallService, servingStatus(anyHealthy))
}

// Serve refreshes the statuses every refreshInterval and serves on lis until ctx is done.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener, refreshInterval time.Duration) error {
	s.Refresh(ctx)

	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.health.Shutdown()
				s.server.GracefulStop()
				return
			case <-ticker.C:
				s.Refresh(ctx)
			}
		}
	}()

	s.logger.Info("starting gRPC health server", zap.String("address", lis.Addr().String()))

	return s.server.Serve(lis)
}

func servingStatus(healthy bool) healthpb.HealthCheckResponse_ServingStatus {
	if healthy {
		return healthpb.HealthCheckResponse_SERVING
	}
	return healthpb.HealthCheckResponse_NOT_SERVING
}
