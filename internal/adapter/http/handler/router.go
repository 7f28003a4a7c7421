package handler

import (
	"barangay-request-api/internal/adapter/http/middleware"
	redisStore "barangay-request-api/internal/adapter/storage/redis"
	"barangay-request-api/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	LifecycleSvc   ports.LifecycleService
	IdentityRepo   ports.IdentityRepository
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.IdentityRepo, deps.Logger)
	validateID := middleware.ValidateRequestID()

	api := r.Group("/api")

	// --- Operator accounts ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := api.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.GET("/me", jwtAuth, authHandler.Me)
	}

	// --- Document requests ---
	requestHandler := NewRequestHandler(deps.LifecycleSvc)
	requests := api.Group("/requests")
	{
		// Public: anyone may submit and track by id.
		requests.POST("", rl("submit"), requestHandler.Submit)
		requests.GET("/:id/status", rl("status"), validateID, requestHandler.Status)

		// Staff dashboard; role checks live in the lifecycle service.
		// Auth runs before the limiter so operators are throttled per
		// account rather than per IP.
		requests.GET("", jwtAuth, rl("staff"), requestHandler.List)
		requests.PATCH("/:id/status", jwtAuth, rl("staff"), validateID, requestHandler.UpdateStatus)
		requests.DELETE("/cleanup", jwtAuth, rl("staff"), requestHandler.Cleanup)
	}

	return r
}
