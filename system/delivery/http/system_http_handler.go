package http

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/mangrove-one/MangroveMarkets/domain"
	"github.com/mangrove-one/MangroveMarkets/domain/mvc"
	"github.com/mangrove-one/MangroveMarkets/log"
)

type SystemHandler struct {
	logger   log.Logger
	DUsecase mvc.DexUsecase
	config   domain.Config
}

// HealthResponse is the response of the health check.
type HealthResponse struct {
	Status    string          `json:"status"`
	Service   string          `json:"service"`
	Timestamp string          `json:"timestamp"`
	Venues    map[string]bool `json:"venues"`
}

const (
	ServiceName = "mangrove-dex"

	healthStatusOK        = "ok"
	healthStatusUnhealthy = "unhealthy"

	versionPlaceholder    = "version="
	whiteSpacePlaceholder = " "

	redactedPlaceholder = "<redacted>"

	// SwaggerSpecPath is where the OpenAPI document is served from.
	SwaggerSpecPath = "/docs/swagger.json"
)

// NewSystemHandler will initialize the /debug/pprof, health, config, version, metrics and swagger endpoints.
// swaggerFile is the local path of the OpenAPI document; the swagger UI is not mounted if empty.
func NewSystemHandler(e *echo.Echo, config domain.Config, swaggerFile string, logger log.Logger, us mvc.DexUsecase) {
	handler := &SystemHandler{
		logger:   logger,
		DUsecase: us,
		config:   config,
	}

	// if debug mod, enable additional profiles that are too intensive
	// for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	e.GET("/debug/pprof/*", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	e.GET("/debug/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	e.GET("/debug/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	e.GET("/debug/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	e.GET("/debug/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/healthcheck", handler.GetHealthStatus)
	e.GET("/config", handler.GetConfig)
	e.GET("/version", handler.GetVersion)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if swaggerFile != "" {
		e.File(SwaggerSpecPath, swaggerFile)
		e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL(SwaggerSpecPath)))
	}
}

// GetConfig returns the config of the service with secrets redacted.
func (h *SystemHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, redactConfig(h.config))
}

// redactConfig returns a copy of config without secrets.
func redactConfig(config domain.Config) domain.Config {
	if config.OTEL != nil && config.OTEL.DSN != "" {
		otelConfig := *config.OTEL
		otelConfig.DSN = redactedPlaceholder
		config.OTEL = &otelConfig
	}
	return config
}

func (h *SystemHandler) GetVersion(c echo.Context) error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read build info")
	}

	for _, setting := range buildInfo.Settings {
		if setting.Key == "-ldflags" {
			version, err := extractVersion(setting.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to extract version information: %v", err))
			}

			return c.JSON(http.StatusOK, version)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "failed to find version information")
}

// extractVersion extracts the version string from the ldflags
func extractVersion(ldFlagsValueStr string) (string, error) {
	index := strings.Index(ldFlagsValueStr, versionPlaceholder)
	if index == -1 {
		return "", fmt.Errorf("no version string found")
	}

	substring := ldFlagsValueStr[index+len(versionPlaceholder):]

	// The version may be the last flag.
	if index = strings.Index(substring, whiteSpacePlaceholder); index != -1 {
		substring = substring[:index]
	}

	if substring == "" {
		return "", fmt.Errorf("empty version string")
	}

	return substring, nil
}

// @Summary Health check
// @Description reports the reachability of every venue. Unhealthy (503) if no venue is reachable.
// @ID get-healthcheck
// @Produce  json
// @Success 200  {object}  HealthResponse  "At least one venue is healthy"
// @Failure 503  {object}  HealthResponse  "No venue is healthy"
// @Router /healthcheck [get]
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	ctx := c.Request().Context()

	venues := h.DUsecase.VenueHealth(ctx)

	status, statusCode := healthStatusUnhealthy, http.StatusServiceUnavailable
	for _, healthy := range venues {
		if healthy {
			status, statusCode = healthStatusOK, http.StatusOK
			break
		}
	}

	if statusCode != http.StatusOK {
		h.logger.Error("no venue is healthy", zap.Any("venues", venues))
	}

	return c.JSON(statusCode, HealthResponse{
		Status:    status,
		Service:   ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Venues:    venues,
	})
}
