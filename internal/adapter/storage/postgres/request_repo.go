package postgres

import (
	"context"
	"errors"
	"fmt"

	"barangay-request-api/internal/core/domain"
	"barangay-request-api/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RequestRepo implements ports.RequestRepository. Expiry is evaluated in
// SQL on every read, so a row past expires_at is invisible regardless of
// how recently the sweeper ran.
type RequestRepo struct {
	pool Pool
}

// NewRequestRepo creates a new RequestRepo.
func NewRequestRepo(pool Pool) *RequestRepo {
	return &RequestRepo{pool: pool}
}

const requestColumns = `request_id, document_type, request_status, created_at, updated_at, expires_at`

// Create inserts a new tracking record within a database transaction.
func (r *RequestRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.RequestRecord) error {
	query := `INSERT INTO document_requests (request_id, document_type, request_status, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query,
		rec.ID, rec.DocumentType, rec.Status, rec.CreatedAt, rec.UpdatedAt, rec.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert request record: %w", err)
	}
	return nil
}

// GetActive fetches an unexpired record by id. Expired rows are reported as
// absent even before physical deletion.
func (r *RequestRepo) GetActive(ctx context.Context, id uuid.UUID) (*domain.RequestRecord, error) {
	query := `SELECT ` + requestColumns + ` FROM document_requests
		WHERE request_id = $1 AND expires_at > now()`

	return scanRequest(r.pool.QueryRow(ctx, query, id))
}

// List fetches active records, newest first, optionally filtered by status.
// The result is capped at ports.MaxListResults as a deliberate bound.
func (r *RequestRepo) List(ctx context.Context, params ports.RequestListParams) ([]domain.RequestRecord, error) {
	query := `SELECT ` + requestColumns + ` FROM document_requests WHERE expires_at > now()`
	var args []any

	if params.Status != nil {
		query += ` AND request_status = $1`
		args = append(args, *params.Status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, ports.MaxListResults)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list request records: %w", err)
	}
	defer rows.Close()

	var recs []domain.RequestRecord
	for rows.Next() {
		rec := domain.RequestRecord{}
		err := rows.Scan(
			&rec.ID, &rec.DocumentType, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt, &rec.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan request row: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request rows: %w", err)
	}
	return recs, nil
}

// UpdateStatus mutates status and updated_at on an unexpired row within a
// database transaction. Returns nil if the row is missing or expired; the
// caller cannot tell which.
func (r *RequestRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.RequestStatus) (*domain.RequestRecord, error) {
	query := `UPDATE document_requests
		SET request_status = $1, updated_at = now()
		WHERE request_id = $2 AND expires_at > now()
		RETURNING ` + requestColumns

	rec, err := scanRequest(tx.QueryRow(ctx, query, status, id))
	if err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}
	return rec, nil
}

// PurgeExpiredOrCompleted deletes every row past expiry or marked completed
// and returns the number removed. Zero is a valid outcome; repeat calls with
// no new writes delete nothing further.
func (r *RequestRepo) PurgeExpiredOrCompleted(ctx context.Context) (int64, error) {
	query := `DELETE FROM document_requests WHERE expires_at < now() OR request_status = $1`

	tag, err := r.pool.Exec(ctx, query, domain.StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("purge request records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRequest(row pgx.Row) (*domain.RequestRecord, error) {
	rec := &domain.RequestRecord{}
	err := row.Scan(
		&rec.ID, &rec.DocumentType, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt, &rec.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan request record: %w", err)
	}
	return rec, nil
}
