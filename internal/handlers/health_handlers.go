package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is anything whose connectivity can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check endpoints
type HealthHandlers struct {
	service string
	db      Pinger
	cache   Pinger
	started time.Time
}

// NewHealthHandlers creates a new health handlers instance. db and cache may be nil when the
// binary has no such dependency.
func NewHealthHandlers(service string, db Pinger, cache Pinger) *HealthHandlers {
	return &HealthHandlers{
		service: service,
		db:      db,
		cache:   cache,
		started: time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Services  map[string]string `json:"services,omitempty"`
}

// RegisterRoutes mounts /health and /health/ready.
func (h *HealthHandlers) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.HealthCheck)
	e.GET("/health/ready", h.ReadinessCheck)
}

// HealthCheck is the liveness probe. Dependencies are reported but never fail it.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:    "UP",
		Service:   h.service,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Services:  make(map[string]string),
	}
	if h.db != nil {
		health.Services["database"] = probe(ctx, h.db)
	}
	if h.cache != nil {
		health.Services["redis"] = probe(ctx, h.cache)
	}
	return c.JSON(http.StatusOK, health)
}

// ReadinessCheck fails with 503 while the database is unreachable. The cache is optional.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if h.db != nil && probe(ctx, h.db) != "healthy" {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "database unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "all systems operational",
	})
}

func probe(ctx context.Context, p Pinger) string {
	if err := p.Ping(ctx); err != nil {
		return "unhealthy"
	}
	return "healthy"
}
