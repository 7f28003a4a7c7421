package ports

import (
	"context"
	"time"

	"barangay-request-api/internal/core/domain"

	"github.com/google/uuid"
)

// HashService handles password hashing.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles bearer token operations.
type TokenService interface {
	Generate(identity *domain.Identity) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed bearer token claims.
type TokenClaims struct {
	IdentityID uuid.UUID
	Username   string
	Role       domain.Role
}

// --- Service Ports (Business Logic) ---

// LifecycleService orchestrates request submission, status reads and
// updates, listing, and cleanup. Role checks live here, not in routing.
type LifecycleService interface {
	SubmitRequest(ctx context.Context, req SubmitRequest) (*domain.RequestRecord, error)
	CheckStatus(ctx context.Context, requestID uuid.UUID) (*domain.RequestRecord, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*domain.RequestRecord, error)
	ListRequests(ctx context.Context, actor *domain.Identity, statusFilter string) ([]domain.RequestRecord, error)
	Cleanup(ctx context.Context, actor *domain.Identity, origin string) (int64, error)
}

// SubmitRequest holds input for a public document request submission.
// Requester is transient: it is validated and then discarded, never stored.
type SubmitRequest struct {
	DocumentType string
	Requester    domain.RequesterPayload
	ActorID      *uuid.UUID // set when a logged-in operator submits on behalf of a walk-in
	Origin       string
}

// UpdateStatusRequest holds input for a staff status update.
type UpdateStatusRequest struct {
	RequestID uuid.UUID
	NewStatus string
	Actor     *domain.Identity
	Origin    string
}

// AuthService defines operator account business logic.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.Identity, error)
	Login(ctx context.Context, username, password, origin string) (*LoginResult, error)
	CurrentUser(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
}

// RegisterRequest holds input for operator account creation.
type RegisterRequest struct {
	Username string
	Password string
	Role     string
	Origin   string
}

// LoginResult holds a successful login outcome.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Identity  *domain.Identity
}
