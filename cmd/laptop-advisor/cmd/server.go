package cmd

import (
	"context"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/laptop-advisor/api/openapi"
	"github.com/donaldgifford/laptop-advisor/internal/api/handlers"
	"github.com/donaldgifford/laptop-advisor/internal/api/middleware"
	"github.com/donaldgifford/laptop-advisor/internal/config"
	"github.com/donaldgifford/laptop-advisor/internal/engine"
	"github.com/donaldgifford/laptop-advisor/pkg/logger"
)

const apiTitle = "Laptop Advisor API"

// newServer builds the Echo server with middleware, probes, metrics and the
// huma API. imports may be nil when no database is configured, in which case
// the import endpoints are not registered.
func newServer(
	cfg *config.Config,
	eng *engine.Engine,
	imports handlers.ImportStore,
	pinger func(ctx context.Context) error,
	log *slog.Logger,
) *echo.Echo {
	httpLog := logger.Component(log, "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(httpLog))
	e.Use(middleware.RequestLog(httpLog))
	e.Use(middleware.Metrics())
	if cfg.API.RateLimit.Enabled {
		e.Use(middleware.RateLimit(cfg.API.RateLimit.PerSecond, cfg.API.RateLimit.Burst, httpLog))
	}

	checks := []handlers.ReadinessCheck{{
		Name: "catalog",
		Check: func(ctx context.Context) error {
			_, err := eng.Snapshot(ctx)
			return err
		},
	}}
	if pinger != nil {
		checks = append(checks, handlers.ReadinessCheck{Name: "database", Check: pinger})
	}
	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(checks...))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	openapi.RegisterRoutes(e, apiTitle)

	api := humaecho.New(e, huma.DefaultConfig(apiTitle, Version))
	handlers.RegisterRecommendationRoutes(api, handlers.NewRecommendationsHandler(eng))
	handlers.RegisterDealRoutes(api, handlers.NewDealsHandler(eng))
	handlers.RegisterMarketRoutes(api, handlers.NewMarketHandler(eng))
	handlers.RegisterCatalogRoutes(api, handlers.NewCatalogHandler(eng))
	if imports != nil {
		handlers.RegisterImportRoutes(api, handlers.NewImportsHandler(imports))
	}

	return e
}
