package response

import (
	"errors"
	"net/http"

	"barangay-request-api/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body for every endpoint.
// Count is only set on list responses.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 response with data.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// List sends a 200 response with data and an item count.
func List(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500 with a generic message.
// Internal detail never reaches the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Envelope{
			Success: false,
			Message: appErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Message: "Internal server error",
	})
}
