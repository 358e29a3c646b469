package main

import (
	"context"
	"log"
	"time"

	"dataware/internal/caching"
	"dataware/internal/clients"
	"dataware/internal/config"
	"dataware/internal/handlers"
	"dataware/internal/middleware"
	"dataware/internal/repositories"
	"dataware/internal/server"
	"dataware/internal/services"
	"dataware/pkg/database"

	"github.com/prometheus/client_golang/prometheus"
)

const serviceName = "order-service"

func main() {
	cfg, err := config.Load("8082")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := database.NewPool(ctx, cfg.Database.URL)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.Database.MigrationsPath, database.OrderSchema, cfg.Database.URL); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	productClient := clients.NewProductClient(cfg.Services.ProductServiceURL, cfg.ProductLookupTimeout())
	orderRepo := repositories.NewOrderRepo(pool)
	orderSvc := services.NewOrderService(orderRepo, productClient, cacheSvc)

	metrics := middleware.NewServerMetrics("order_service", prometheus.DefaultRegisterer)
	e := server.New(server.NewVersions(serviceName, cfg.Server), cfg.Server.CORSAllowedOrigins, metrics, prometheus.DefaultGatherer)
	server.EnableSwagger(e)

	handlers.NewHealthHandlers(serviceName, pool, cacheSvc).RegisterRoutes(e)
	handlers.NewOrderHandlers(orderSvc, handlers.WithOrderOutcomes(metrics.OrderOutcomes)).RegisterRoutes(e.Group("/api/orders"))

	log.Printf("INFO: %s starting on port %s, products at %s", serviceName, cfg.Server.Port, cfg.Services.ProductServiceURL)
	if err := server.Run(e, cfg.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
