package main

import (
	"log"

	"dataware/internal/config"
	"dataware/internal/gateway"
	"dataware/internal/handlers"
	"dataware/internal/middleware"
	"dataware/internal/server"

	"github.com/prometheus/client_golang/prometheus"
)

const serviceName = "api-gateway"

func main() {
	cfg, err := config.Load("8090")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	routes, err := gateway.RouteTable(cfg.Services.ProductServiceURL, cfg.Services.OrderServiceURL)
	if err != nil {
		log.Fatalf("Invalid route table: %v", err)
	}

	metrics := middleware.NewServerMetrics("api_gateway", prometheus.DefaultRegisterer)
	e := server.New(server.NewVersions(serviceName, cfg.Server), cfg.Server.CORSAllowedOrigins, metrics, prometheus.DefaultGatherer)

	handlers.NewHealthHandlers(serviceName, nil, nil).RegisterRoutes(e)
	gateway.Register(e, routes)

	log.Printf("INFO: %s starting on port %s", serviceName, cfg.Server.Port)
	if err := server.Run(e, cfg.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
