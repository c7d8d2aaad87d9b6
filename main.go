package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"scorehub/internal/config"
	"scorehub/internal/container"
	"scorehub/internal/handler"
	"scorehub/internal/metrics"
	"scorehub/internal/middleware"
	"scorehub/internal/report"
	"scorehub/internal/repository"
	"scorehub/internal/service"
	"scorehub/internal/service/auth"
	"scorehub/internal/stash"
	"scorehub/pkg/database"
	"scorehub/pkg/logger"
	"scorehub/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db          *database.PostgresDB
	redisClient *redis.Client
	reporter    *report.AsyncReporter
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errors []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		r.log.Info("Shutting down HTTP server...")
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errors = append(errors, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	// Drain the failure reporter so buffered events still get published
	if r.reporter != nil {
		r.log.Info("Stopping failure reporter...")
		r.reporter.Stop()
		r.log.Info("Failure reporter stopped")
	}

	// Close Redis connection with health check
	if r.redisClient != nil {
		r.log.Info("Closing Redis connection...")

		// Quick health check before closing (with short timeout)
		healthCtx, healthCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := r.redisClient.Health(healthCtx); err != nil {
			r.log.WithError(err).Warn("Redis health check failed before closing")
		}
		healthCancel()

		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errors = append(errors, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed successfully")
		}
	}

	// Close database connection pool with health check
	if r.db != nil {
		r.log.Info("Closing database connection pool...")

		// Quick health check before closing (with short timeout)
		healthCtx, healthCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := r.db.Health(healthCtx); err != nil {
			r.log.WithError(err).Warn("Database health check failed before closing")
		}
		healthCancel()

		r.db.Close()
		r.log.Info("Database connection pool closed successfully")
	}

	if len(errors) > 0 {
		r.log.WithField("error_count", len(errors)).Error("Cleanup completed with errors")
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errors), errors)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting scorehub server")

	// Initialize database connection
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Initialize Redis connection
	redisClient, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}

	// Initialize repositories
	repos := repository.NewRepositories(db, redisClient)

	// Initialize the pre-sign-in favorites stash
	stashStore, err := stash.New(stash.Config{Driver: cfg.StashDriver, TTL: cfg.StashTTL}, redisClient, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize stash store")
	}

	// Initialize the store-failure reporter
	reporter := report.NewAsyncReporter(report.NewLogReporter(log), 64, log)
	reporter.Start()

	// Initialize services
	services := &service.Services{
		Account:     service.NewAccountService(repos, stashStore, reporter, log),
		Favorites:   service.NewFavoritesService(repos, stashStore, log),
		Leaderboard: service.NewLeaderboardService(repos.Leaderboard, redisClient, log),
		Session:     service.NewSessionService(cfg.SessionSecret, cfg.SessionTTL, redisClient, log),
		Identity:    auth.NewProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, log),
	}

	// Create dependency injection container
	c := container.New(cfg, log, redisClient, services)

	// Register Prometheus collectors
	metricsHandler, err := metrics.Register(nil)
	if err != nil {
		log.WithError(err).Fatal("Failed to register metrics")
	}

	// Setup router
	router := setupRouter(c, db, metricsHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	// Create resources manager for cleanup
	resources := &Resources{
		db:          db,
		redisClient: redisClient,
		reporter:    reporter,
		server:      server,
		log:         log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	// Setup cleanup function that will be called regardless of how the program exits
	defer func() {
		// Create context with timeout for cleanup operations
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	log.Info("Initiating graceful shutdown...")

	// Create context with timeout for shutdown operations
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	// Perform cleanup - this will be called here and also in defer for safety
	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(c *container.Container, db *database.PostgresDB, metricsHandler http.Handler) *chi.Mux {
	cfg := c.GetConfig()
	log := c.GetLogger()
	sessions := c.GetSessionService()

	// Create router
	r := chi.NewRouter()

	// Setup CORS middleware
	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", handler.DeviceIDHeader},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	// Setup middlewares
	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	r.Use(metrics.WithMetrics)

	// Create handlers
	healthHandler := handler.NewHealthHandler(c, db)
	authHandler := handler.NewAuthHandler(c)
	accountHandler := handler.NewAccountHandler(c)
	favoritesHandler := handler.NewFavoritesHandler(c)
	leaderboardHandler := handler.NewLeaderboardHandler(c)

	// Setup routes

	// Health and metrics (no auth required)
	r.Get("/health", healthHandler.Check)
	r.Get("/health/ready", healthHandler.Ready)
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api", func(r chi.Router) {
		// Sign-in flow (no auth required; the callback provisions the account)
		r.Get("/auth/google/login", authHandler.Login)
		r.Get("/auth/google/callback", authHandler.Callback)

		// Device stash (no auth required; keyed by X-Device-ID)
		r.Get("/stash/favorites", favoritesHandler.StashedSelection)
		r.Put("/stash/favorites", favoritesHandler.StashSelection)

		// Leaderboard reads (no auth required)
		r.Get("/leaderboard", leaderboardHandler.Top)

		// Protected routes (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessions, log))

			r.Get("/auth/session", authHandler.Session)
			r.Post("/auth/signout", authHandler.SignOut)

			r.Get("/leaderboard/me", leaderboardHandler.Me)

			// User routes
			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", accountHandler.Profile)
				r.Put("/profile/display-name", accountHandler.UpdateDisplayName)
				r.Post("/onboarding/complete", accountHandler.CompleteOnboarding)
				r.Get("/presence", accountHandler.Presence)

				r.Get("/favorites", favoritesHandler.Favorites)
				r.Put("/favorites/teams/{teamID}", favoritesHandler.SetTeam)
				r.Put("/favorites/leagues/{leagueID}", favoritesHandler.SetLeague)
			})
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
