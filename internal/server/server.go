package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dataware/internal/config"
	_ "dataware/internal/docs"
	"dataware/internal/middleware"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

// NewVersions advertises the API version for service, deprecated when cfg names a sunset date.
func NewVersions(service string, cfg config.ServerConfig) *middleware.VersionMiddleware {
	versions := middleware.NewVersionMiddleware(service)
	if sunset, ok := cfg.Sunset(); ok {
		versions.Deprecate(sunset, cfg.APIDeprecationMessage)
	}
	return versions
}

// New builds the echo instance every binary starts from: access log, panic recovery, CORS,
// version headers, request metrics, /metrics and /version.
func New(versions *middleware.VersionMiddleware, allowedOrigins []string, metrics *middleware.ServerMetrics, gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, "Cache-Control", echo.HeaderContentType},
	}))
	e.Use(versions.VersionHeader())
	if metrics != nil {
		e.Use(metrics.Middleware())
	}

	e.GET("/metrics", echo.WrapHandler(middleware.Handler(gatherer)))
	e.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, versions.Current())
	})
	return e
}

// EnableSwagger serves the API docs at /swagger/*.
func EnableSwagger(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully and runs cleanup hooks.
func Run(e *echo.Echo, port string, cleanup ...func()) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Printf("INFO: shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := e.Shutdown(shutdownCtx)
	for _, fn := range cleanup {
		fn()
	}
	return err
}
