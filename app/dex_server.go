package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mangrove-one/MangroveMarkets/delivery/grpc"
	deliveryhttp "github.com/mangrove-one/MangroveMarkets/delivery/http"
	"github.com/mangrove-one/MangroveMarkets/dex/adapters"
	dexHttpDelivery "github.com/mangrove-one/MangroveMarkets/dex/delivery/http"
	dexrepo "github.com/mangrove-one/MangroveMarkets/dex/repository"
	dexUseCase "github.com/mangrove-one/MangroveMarkets/dex/usecase"
	"github.com/mangrove-one/MangroveMarkets/domain"
	"github.com/mangrove-one/MangroveMarkets/domain/mvc"
	"github.com/mangrove-one/MangroveMarkets/log"
	"github.com/mangrove-one/MangroveMarkets/middleware"
	systemhttpdelivery "github.com/mangrove-one/MangroveMarkets/system/delivery/http"
)

// DexServer defines an interface for the DEX aggregator server.
// It wires the venue adapters, the quote router and the facade,
// and exposes them over HTTP and the gRPC health service.
type DexServer interface {
	GetDexUsecase() mvc.DexUsecase
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type dexServer struct {
	dexUsecase   mvc.DexUsecase
	healthServer *grpc.HealthServer
	e            *echo.Echo
	address      string
	grpcAddress  string
	logger       log.Logger
}

const (
	// swaggerFile is served under /docs/swagger.json.
	swaggerFile = "docs/swagger.json"

	// healthRefreshInterval is how often the gRPC health statuses are recomputed.
	healthRefreshInterval = 30 * time.Second

	shutdownTimeout = 10 * time.Second

	tracerName = "mangrove-dex"
)

// GetDexUsecase implements DexServer.
func (s *dexServer) GetDexUsecase() mvc.DexUsecase {
	return s.dexUsecase
}

// GetLogger implements DexServer.
func (s *dexServer) GetLogger() log.Logger {
	return s.logger
}

// Shutdown implements DexServer.
// The gRPC health server stops once the context passed to Start is done.
func (s *dexServer) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Start implements DexServer.
// Serves HTTP and, if configured, the gRPC health service until both stop.
// Returns the first error of either server.
func (s *dexServer) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if s.healthServer != nil {
		lis, err := net.Listen("tcp", s.grpcAddress)
		if err != nil {
			return err
		}

		g.Go(func() error {
			err := s.healthServer.Serve(gctx, lis, healthRefreshInterval)
			if err != nil {
				s.logger.Error("gRPC health server stopped", zap.Error(err))
				// nolint:errcheck // the health server error is the one reported
				s.e.Shutdown(context.Background())
			}
			return err
		})
	}

	g.Go(func() error {
		s.logger.Info("Starting DEX aggregator server", zap.String("address", s.address))
		if err := s.e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	return g.Wait()
}

// NewDexServer creates a new DEX aggregator server.
func NewDexServer(config domain.Config, logger log.Logger) (DexServer, error) {
	routerConfig := config.Router
	if routerConfig == nil {
		routerConfig = DefaultConfig().Router
	}

	platformFeeRate, err := routerConfig.GetPlatformFeeRate()
	if err != nil {
		return nil, err
	}

	quoteTTL := time.Duration(routerConfig.QuoteTTLSeconds) * time.Second
	adapterTimeout := time.Duration(routerConfig.AdapterTimeoutMs) * time.Millisecond

	// Health checks only verify that an endpoint is configured unless probing is enabled.
	var prober adapters.ReachabilityProber
	if config.Venues != nil && config.Venues.ProbeReachability {
		prober = deliveryhttp.NewProber(time.Duration(config.Venues.ProbeTimeoutMs) * time.Millisecond)
	}

	venueAdapters, err := adapters.NewDefaultAdapters(config.Venues, quoteTTL, prober)
	if err != nil {
		return nil, err
	}

	router, err := dexUseCase.NewRouter(venueAdapters, platformFeeRate, adapterTimeout, logger)
	if err != nil {
		return nil, err
	}

	quoteRepository := dexrepo.New(routerConfig.QuoteCacheSize, quoteTTL)

	dexUsecase := dexUseCase.NewDexUsecase(router, quoteRepository, logger)

	// Setup echo server
	e := echo.New()
	e.HideBanner = true

	goMiddleware := middleware.InitMiddleware(config.CORS)
	e.Use(goMiddleware.CORS)
	e.Use(goMiddleware.InstrumentMiddleware)
	e.Use(goMiddleware.TraceWithParamsMiddleware(tracerName))

	rateLimiter := middleware.NewRateLimiter(config.RateLimit, logger)
	e.Use(rateLimiter.Middleware)

	// HTTP handlers
	dexHttpDelivery.NewDexHandler(e, dexUsecase, logger)
	dexHttpDelivery.NewToolsHandler(e, dexUsecase, logger)
	systemhttpdelivery.NewSystemHandler(e, config, swaggerFile, logger, dexUsecase)

	var healthServer *grpc.HealthServer
	if config.GRPCAddress != "" {
		healthServer = grpc.NewHealthServer(dexUsecase, logger)
	}

	return &dexServer{
		dexUsecase:   dexUsecase,
		healthServer: healthServer,
		e:            e,
		address:      config.ServerAddress,
		grpcAddress:  config.GRPCAddress,
		logger:       logger,
	}, nil
}
