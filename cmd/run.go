package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"xperiencia/api"
	"xperiencia/config"
	"xperiencia/database"
	"xperiencia/events"
	"xperiencia/integration"
	"xperiencia/metrics"
	"xperiencia/repository"
	"xperiencia/service"

	"github.com/redis/go-redis/v9"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting xperiencia...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize redis; the address is optional and caching degrades gracefully
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		log.Println("Connecting to redis...")
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
	}

	// Initialize event bus and wire the metrics counters to it
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()
	metrics.Subscribe(eventBus)

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	userService := service.NewUserService(uowFactory)
	betService := service.NewBetService(uowFactory)
	reflectionService := service.NewReflectionService(uowFactory)
	reportService := service.NewReportService(uowFactory)
	integrationClient := integration.NewClient(redisClient)
	log.Println("Services initialized successfully")

	// Start the metrics server
	metricsServer := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return db.Ping(ctx)
	})

	// Start the HTTP API
	restAPI := &api.API{
		Users:        userService,
		Bets:         betService,
		Reflections:  reflectionService,
		Reports:      reportService,
		Integrations: integrationClient,
	}
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: restAPI.Router(),
	}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Wait for context cancellation
	log.Printf("API is running on port %s in %s mode...", cfg.HTTPPort, cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down metrics server: %v", err)
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}
