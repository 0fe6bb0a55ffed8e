package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/rentora/rentora-backend/internal/adapters/cache"
	"github.com/rentora/rentora-backend/internal/adapters/database"
	"github.com/rentora/rentora-backend/internal/adapters/events"
	"github.com/rentora/rentora-backend/internal/adapters/providers/identity"
	"github.com/rentora/rentora-backend/internal/api/handlers"
	"github.com/rentora/rentora-backend/internal/api/middleware"
	"github.com/rentora/rentora-backend/internal/api/routes"
	"github.com/rentora/rentora-backend/internal/application/services"
	"github.com/rentora/rentora-backend/internal/domain/providers"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
	"github.com/rentora/rentora-backend/internal/infrastructure/clients/postgres"
	"github.com/rentora/rentora-backend/internal/infrastructure/clients/redis"
	"github.com/rentora/rentora-backend/internal/infrastructure/observability"
	"github.com/rentora/rentora-backend/pkg/auth"
	"github.com/rentora/rentora-backend/pkg/config"
)

func main() {

	// Load .env if present; real deployments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("rentora-backend", cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			if err := otelruntime.Start(); err != nil {
				log.Printf("Warning: Failed to start runtime instrumentation: %v", err)
			}
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisClient = nil
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for real-time listing updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters

	userAdapter := database.NewUserAdapter(pgClient)
	bookingAdapter := database.NewBookingAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)

	// Wrap the property adapter with caching if Redis is available
	basePropertyAdapter := database.NewPropertyAdapter(pgClient)
	var propertyAdapter repositories.PropertyRepository
	if cacheProvider != nil {
		propertyAdapter = database.NewCachedPropertyAdapter(basePropertyAdapter, cacheProvider)
		log.Println("Property adapter wrapped with caching layer")
	} else {
		propertyAdapter = basePropertyAdapter
		log.Println("Property adapter running without cache (Redis unavailable)")
	}

	var identityProvider providers.IdentityProvider
	switch cfg.Identity.Provider {
	case "google":
		identityProvider = identity.NewGoogleProvider(cfg.Identity.UserInfoURL)
	default:
		log.Println("Warning: using mock identity provider; set IDENTITY_PROVIDER=google for production")
		identityProvider = identity.NewMockProvider()
	}

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services

	authService := services.NewAuthService(userAdapter, identityProvider, tokenManager, cacheProvider)
	propertyService := services.NewPropertyService(propertyAdapter, eventBus)
	bookingService := services.NewBookingService(bookingAdapter, propertyService, metrics)
	reviewService := services.NewReviewService(reviewAdapter)
	planService := services.NewPlanService(userAdapter)

	// Initialize cache invalidation service
	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			log.Printf("Warning: Failed to start cache invalidation service: %v", err)
		} else {
			log.Println("Cache invalidation service started successfully")
		}
	}

	// Initialize handlers

	authHandler := handlers.NewAuthHandler(authService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	planHandler := handlers.NewPlanHandler(planService)
	sseHandler := handlers.NewSSEHandler(eventBus)

	authenticator := middleware.NewAuthenticator(tokenManager, authService)

	// Set up router

	router := routes.NewRouter(
		authHandler,
		propertyHandler,
		bookingHandler,
		reviewHandler,
		planHandler,
		sseHandler,
		authenticator,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // No timeout; /api/stream endpoints hold long-lived SSE connections
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	log.Println("Server stopped")
}
