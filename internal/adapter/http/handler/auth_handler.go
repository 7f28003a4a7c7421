package handler

import (
	"net/http"

	"barangay-request-api/internal/adapter/http/dto"
	"barangay-request-api/internal/adapter/http/middleware"
	"barangay-request-api/internal/core/ports"
	"barangay-request-api/pkg/apperror"
	"barangay-request-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles operator account endpoints.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var body dto.RegisterBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&body)

	identity, err := h.authSvc.Register(c.Request.Context(), ports.RegisterRequest{
		Username: body.Username,
		Password: body.Password,
		Role:     body.Role,
		Origin:   c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User registered successfully", dto.NewIdentityView(identity))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var body dto.LoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&body)

	result, err := h.authSvc.Login(c.Request.Context(), body.Username, body.Password, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", dto.LoginView{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		User:      dto.NewIdentityView(result.Identity),
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		response.Error(c, apperror.ErrMissingToken())
		return
	}

	response.OK(c, "", dto.NewIdentityView(identity))
}

// HealthCheck handles GET /health, verifying every dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
