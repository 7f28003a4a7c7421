package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a generic 400 validation error with a custom message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidDocumentType(allowed string) *AppError {
	return New("VAL_002", "Invalid document type. Allowed types: "+allowed, http.StatusBadRequest)
}

func ErrUnderage() *AppError {
	return New("VAL_003", "Requester must be at least 18 years old", http.StatusBadRequest)
}

// ---- Authentication & Authorization (AUTH) ----

func ErrMissingToken() *AppError {
	return New("AUTH_001", "Access denied. No token provided.", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token.", http.StatusUnauthorized)
}

func ErrInvalidCredentials() *AppError {
	return New("AUTH_003", "Invalid credentials", http.StatusUnauthorized)
}

func ErrAccountInactive() *AppError {
	return New("AUTH_004", "Account is deactivated", http.StatusForbidden)
}

func ErrForbidden() *AppError {
	return New("AUTH_005", "Access denied. Insufficient permissions.", http.StatusForbidden)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_006", "Username already exists", http.StatusConflict)
}

func ErrWeakPassword() *AppError {
	return New("AUTH_007", "Password must be at least 8 characters long", http.StatusBadRequest)
}

func ErrIdentityNotFound() *AppError {
	return New("AUTH_008", "User not found", http.StatusNotFound)
}

// ---- Request Lifecycle (REQ) ----

// ErrRequestNotFound covers both missing and expired rows. The caller is
// deliberately not told which, so an identifier cannot be probed for past
// existence.
func ErrRequestNotFound() *AppError {
	return New("REQ_001", "Request not found or has expired.", http.StatusNotFound)
}

func ErrInvalidStatus(allowed string) *AppError {
	return New("REQ_002", "Invalid status. Allowed: "+allowed, http.StatusBadRequest)
}

func ErrInvalidRequestID() *AppError {
	return New("REQ_003", "Invalid request ID format.", http.StatusBadRequest)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Too many requests from this IP, please try again later.", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
