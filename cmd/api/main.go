package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barangay-request-api/config"
	httpHandler "barangay-request-api/internal/adapter/http/handler"
	pgStorage "barangay-request-api/internal/adapter/storage/postgres"
	redisStorage "barangay-request-api/internal/adapter/storage/redis"
	"barangay-request-api/internal/core/ports"
	"barangay-request-api/internal/service"
	"barangay-request-api/internal/worker"
	"barangay-request-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Barangay Request API")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	if err := pgStorage.InitSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database schema")
	}

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	identityRepo := pgStorage.NewIdentityRepo(pool)
	requestRepo := pgStorage.NewRequestRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize business services
	authSvc := service.NewAuthService(identityRepo, auditRepo, hashSvc, tokenSvc, log)
	lifecycleSvc := service.NewLifecycleService(requestRepo, auditRepo, transactor, log)

	// Start the retention sweeper
	sweeper := worker.NewRetentionSweeper(cfg.Sweeper.Interval, cfg.Database.QueryTimeout, requestRepo, log)
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize rate limit store
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		LifecycleSvc:   lifecycleSvc,
		IdentityRepo:   identityRepo,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
