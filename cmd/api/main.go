package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sparkd/inventory-manager/internal/cache"
	"github.com/sparkd/inventory-manager/internal/config"
	"github.com/sparkd/inventory-manager/internal/database"
	"github.com/sparkd/inventory-manager/internal/handler"
	"github.com/sparkd/inventory-manager/internal/middleware"
	"github.com/sparkd/inventory-manager/internal/repository"
	"github.com/sparkd/inventory-manager/internal/service"
)

const version = "1.0.0"

// main is the application entrypoint for the inventory manager API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("store", cfg.StoreDriver).Msg("starting inventory manager api")

	// 3. Build repositories for the selected store driver
	productRepo, categoryRepo, cleanup, err := buildRepositories(cfg)
	if err != nil {
		log.Error().Err(err).Msg("store initialization failed")
		fmt.Fprintf(os.Stderr, "store initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	// 4. Optional metrics cache
	var metricsCache *cache.MetricsCache
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis connection failed - metrics cache disabled")
		} else {
			defer redisClient.Close()
			metricsCache = cache.NewMetricsCache(redisClient, cfg.Cache.TTL)
			log.Info().Dur("ttl", cfg.Cache.TTL).Msg("metrics cache enabled")
		}
	}

	// 5. Initialize services and handlers
	productSvc := service.NewProductService(productRepo, metricsCache)
	categorySvc := service.NewCategoryService(categoryRepo)

	handlers := &Handlers{
		Health:   handler.NewHealthHandler(version),
		Product:  handler.NewProductHandler(productSvc),
		Category: handler.NewCategoryHandler(categorySvc),
	}

	// 6. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers)

	// 7. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 8. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/healthz", handlers.Health.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/products", handlers.Product.Search)
		api.GET("/products/metrics", handlers.Product.Metrics)
		api.POST("/products", handlers.Product.Create)
		api.PUT("/products/:id", handlers.Product.Update)
		api.DELETE("/products/:id", handlers.Product.Delete)

		api.GET("/categories", handlers.Category.List)
		api.GET("/categories/:id", handlers.Category.Get)
		api.POST("/categories", handlers.Category.Create)
		api.PUT("/categories/:id", handlers.Category.Update)
		api.DELETE("/categories/:id", handlers.Category.Delete)
	}
}

// buildRepositories wires the repositories for the configured store driver.
// The memory driver reseeds the demo catalogue on every boot; the postgres
// driver connects and applies pending migrations (seed included).
func buildRepositories(cfg *config.Config) (repository.ProductRepository, repository.CategoryRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := database.Connect(&cfg.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.Migrate(db, cfg.DB.MigrationsDir); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		log.Info().Msg("migrations completed successfully")
		cleanup := func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close database")
			}
		}
		return repository.NewPostgresProductRepository(db), repository.NewPostgresCategoryRepository(db), cleanup, nil

	default:
		productRepo := repository.NewMemoryProductRepository()
		categoryRepo := repository.NewMemoryCategoryRepository()
		if err := repository.SeedCatalogue(productRepo, categoryRepo); err != nil {
			return nil, nil, nil, err
		}
		log.Info().Msg("in-memory catalogue seeded")
		return productRepo, categoryRepo, func() {}, nil
	}
}

// setupLogger configures the global zerolog logger.
func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
