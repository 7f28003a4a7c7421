package ports

import (
	"context"

	"barangay-request-api/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IdentityRepository defines persistence operations for operator accounts.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
	GetByUsername(ctx context.Context, username string) (*domain.Identity, error)
	// TouchLogin stamps last_login_at with the current time.
	TouchLogin(ctx context.Context, id uuid.UUID) error
	// Deactivate clears the active flag; accounts are never deleted.
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// RequestRepository defines persistence operations for the request ledger.
// Methods accepting pgx.Tx run inside the atomic ledger+audit unit.
// Every read applies the expiry predicate: a row past expires_at is
// reported as absent even if the sweeper has not removed it yet.
type RequestRepository interface {
	Create(ctx context.Context, tx pgx.Tx, rec *domain.RequestRecord) error
	GetActive(ctx context.Context, id uuid.UUID) (*domain.RequestRecord, error)
	List(ctx context.Context, params RequestListParams) ([]domain.RequestRecord, error)
	// UpdateStatus mutates status and updated_at on an unexpired row and
	// returns the updated record, or nil if no such row exists.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.RequestStatus) (*domain.RequestRecord, error)
	// PurgeExpiredOrCompleted deletes every expired or completed row and
	// returns the number removed. Safe to call repeatedly.
	PurgeExpiredOrCompleted(ctx context.Context) (int64, error)
}

// RequestListParams holds the optional filter for listing active requests.
// Results are always capped at MaxListResults; callers needing more must
// narrow the filter.
type RequestListParams struct {
	Status *domain.RequestStatus
}

// MaxListResults bounds every ledger listing.
const MaxListResults = 100

// AuditRepository appends entries to the audit trail. Create participates in
// an atomic unit alongside a ledger mutation; Record writes standalone
// entries (login, registration, cleanup) on the pool.
type AuditRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.AuditEntry) error
	Record(ctx context.Context, entry *domain.AuditEntry) error
}

// DBTransactor provides database transaction management for atomic units.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
