package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/tenderdesk/business-api/docs"
	"github.com/tenderdesk/business-api/internal/api/handler"
	"github.com/tenderdesk/business-api/internal/api/middleware"
	"github.com/tenderdesk/business-api/internal/api/registry"
	"github.com/tenderdesk/business-api/internal/core/ports"
)

// Options carries everything NewRouter wires together.
type Options struct {
	Version  string
	Table    registry.Table
	Modules  registry.Modules
	Verifier ports.TokenVerifier
	// Checks are the readiness probes served at /health/ready.
	Checks map[string]handler.CheckFunc
	// Registerer and Gatherer back the HTTP metrics and /metrics. A private
	// registry is used when nil.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Logger     zerolog.Logger
}

// NewRouter builds the Echo instance: global middleware, infrastructure
// endpoints, the resource modules from the route table and the fallback.
func NewRouter(opts Options) (*echo.Echo, registry.Report, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	if opts.Registerer == nil || opts.Gatherer == nil {
		reg := prometheus.NewRegistry()
		opts.Registerer, opts.Gatherer = reg, reg
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "business_api",
		Registerer: opts.Registerer,
	}))
	e.Use(middleware.DynamicHeaders(opts.Version))

	// --- Infrastructure endpoints (no auth required) ---
	rootHandler := handler.NewRootHandler(opts.Version)
	healthHandler := handler.NewHealthHandler(opts.Checks, opts.Logger)

	e.GET("/", rootHandler.Index)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Resource modules ---
	authMW := middleware.Auth(opts.Verifier, opts.Logger)
	report, err := registry.Mount(e, opts.Table, opts.Modules, authMW, opts.Logger)
	if err != nil {
		return nil, report, err
	}

	// Must stay last: anything not matched above.
	e.RouteNotFound("/*", handler.Fallback)

	return e, report, nil
}
