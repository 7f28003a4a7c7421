package postgres

import (
	"context"
	"fmt"

	"barangay-request-api/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AuditRepo implements ports.AuditRepository. Entries are append-only;
// there is no update or delete path.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

const insertAuditQuery = `INSERT INTO audit_logs (log_id, action, actor_id, request_id, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

// Create appends an entry within a database transaction, so the entry
// commits or rolls back together with the ledger mutation it describes.
func (r *AuditRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.AuditEntry) error {
	_, err := tx.Exec(ctx, insertAuditQuery,
		e.ID, e.Action, e.ActorID, e.RequestID, e.Origin, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Record appends a standalone entry on the pool, for actions that do not
// mutate the ledger (login, registration, cleanup).
func (r *AuditRepo) Record(ctx context.Context, e *domain.AuditEntry) error {
	_, err := r.pool.Exec(ctx, insertAuditQuery,
		e.ID, e.Action, e.ActorID, e.RequestID, e.Origin, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}
