package main

import (
	"context"
	"log"
	"time"

	"dataware/internal/caching"
	"dataware/internal/config"
	"dataware/internal/handlers"
	"dataware/internal/jobs"
	"dataware/internal/jobs/background"
	"dataware/internal/middleware"
	"dataware/internal/repositories"
	"dataware/internal/server"
	"dataware/internal/services"
	"dataware/internal/storage"
	"dataware/pkg/database"

	"github.com/prometheus/client_golang/prometheus"
)

const serviceName = "product-service"

func main() {
	cfg, err := config.Load("8081")
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

	if err := database.RunMigrations(cfg.Database.MigrationsPath, database.ProductSchema, cfg.Database.URL); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	productRepo := repositories.NewProductRepo(pool)
	productSvc := services.NewProductService(productRepo, cacheSvc)

	// Catalog export; the HTTP surface keeps working without object storage.
	scheduler, err := background.NewJobScheduler()
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	store, err := storage.NewMinioStore(cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.UseSSL)
	if err != nil {
		log.Printf("WARN: catalog export disabled: %v", err)
	} else {
		exporter := jobs.NewCatalogExporter(productSvc, store, cfg.MinIO.Bucket, cfg.Jobs.CatalogRetainSnapshots)
		if err := scheduler.Every("catalog-export", cfg.CatalogExportInterval(), false, exporter.Run); err != nil {
			log.Printf("WARN: catalog export disabled: %v", err)
		}
	}
	scheduler.Start()

	metrics := middleware.NewServerMetrics("product_service", prometheus.DefaultRegisterer)
	e := server.New(server.NewVersions(serviceName, cfg.Server), cfg.Server.CORSAllowedOrigins, metrics, prometheus.DefaultGatherer)
	server.EnableSwagger(e)

	handlers.NewHealthHandlers(serviceName, pool, cacheSvc).RegisterRoutes(e)
	handlers.NewProductHandlers(productSvc).RegisterRoutes(e.Group("/api/products"))

	log.Printf("INFO: %s starting on port %s", serviceName, cfg.Server.Port)
	err = server.Run(e, cfg.Server.Port, func() {
		if stopErr := scheduler.Stop(); stopErr != nil {
			log.Printf("WARN: scheduler shutdown: %v", stopErr)
		}
	})
	if err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
