package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the echo instance: API routes, /health, /metrics from
// gatherer, the OpenAPI document and Swagger UI.
//
// Example:
//
//	server := http.NewServer(handlers, logger, metrics)
//	e, err := http.NewRouter(ctx, server, registry)
//	if err != nil {
//	    log.Fatalf("router: %v", err)
//	}
//	e.Logger.Fatal(e.Start(":8080"))
func NewRouter(ctx context.Context, server *Server, gatherer prometheus.Gatherer) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(tracing())
	e.Use(instrument(server.metrics))
	e.Use(requestLogger(server.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	registerDocs(e, doc)
	server.Register(e)

	return e, nil
}
