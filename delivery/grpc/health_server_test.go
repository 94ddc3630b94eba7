package grpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/mangrove-one/MangroveMarkets/delivery/grpc"
	"github.com/mangrove-one/MangroveMarkets/domain/mocks"
	"github.com/mangrove-one/MangroveMarkets/log"
)

// newHealthClient returns a traced health client connected to address.
func newHealthClient(t *testing.T, address string) healthpb.HealthClient {
	conn, err := grpclib.NewClient(address,
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
		grpclib.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
	})

	return healthpb.NewHealthClient(conn)
}

func TestHealthServer(t *testing.T) {
	venueHealth := map[string]bool{"xpmarket": true, "jupiter": false}

	dexUsecase := &mocks.DexUsecaseMock{
		VenueHealthFunc: func(ctx context.Context) map[string]bool {
			return venueHealth
		},
	}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := grpc.NewHealthServer(dexUsecase, &log.NoOpLogger{})
	go func() {
		// nolint:errcheck // returns once the server is stopped
		server.Serve(ctx, lis, time.Hour)
	}()

	healthClient := newHealthClient(t, lis.Addr().String())

	tests := []struct {
		service  string
		expected healthpb.HealthCheckResponse_ServingStatus
	}{
		{grpc.OverallService, healthpb.HealthCheckResponse_SERVING},
		{"xpmarket", healthpb.HealthCheckResponse_SERVING},
		{"jupiter", healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			resp, err := healthClient.Check(ctx, &healthpb.HealthCheckRequest{Service: tt.service})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.Status)
		})
	}

	_, err = healthClient.Check(ctx, &healthpb.HealthCheckRequest{Service: "unknown"})
	assert.Error(t, err)
}
