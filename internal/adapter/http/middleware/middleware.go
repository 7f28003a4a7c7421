package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"barangay-request-api/internal/core/domain"
	"barangay-request-api/internal/core/ports"
	"barangay-request-api/pkg/apperror"
	"barangay-request-api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context keys.
const (
	CtxIdentity  = "identity"
	CtxRequestID = "request_id"
)

// Tracking ids are always server-generated v4 UUIDs, so anything else is
// rejected before touching the database.
var uuidV4Re = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// JWTAuth validates the bearer token and re-verifies the account behind it
// on every request, so deactivation takes effect before token expiry.
func JWTAuth(tokenSvc ports.TokenService, identityRepo ports.IdentityRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperror.ErrMissingToken())
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		identity, err := identityRepo.GetByID(c.Request.Context(), claims.IdentityID)
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch identity for token")
			response.Error(c, apperror.ErrDatabaseError(err))
			c.Abort()
			return
		}
		if identity == nil {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}
		if !identity.IsActive() {
			response.Error(c, apperror.ErrAccountInactive())
			c.Abort()
			return
		}

		c.Set(CtxIdentity, identity)
		c.Next()
	}
}

// IdentityFromContext returns the authenticated account, if any.
func IdentityFromContext(c *gin.Context) *domain.Identity {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return nil
	}
	identity, _ := v.(*domain.Identity)
	return identity
}

// ValidateRequestID gates the :id path parameter on the UUID v4 shape and
// stores the parsed id in the context.
func ValidateRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("id")
		if !uuidV4Re.MatchString(raw) {
			response.Error(c, apperror.ErrInvalidRequestID())
			c.Abort()
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.ErrInvalidRequestID())
			c.Abort()
			return
		}
		c.Set(CtxRequestID, id)
		c.Next()
	}
}

// RequestIDFromContext returns the validated :id path parameter.
func RequestIDFromContext(c *gin.Context) uuid.UUID {
	v, ok := c.Get(CtxRequestID)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
