package service

import (
	"context"
	"fmt"
	"time"

	"barangay-request-api/internal/core/domain"
	"barangay-request-api/internal/core/ports"
	"barangay-request-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LifecycleServiceImpl implements ports.LifecycleService. All role checks
// live here so that routing stays a pure dispatch layer.
type LifecycleServiceImpl struct {
	requestRepo ports.RequestRepository
	auditRepo   ports.AuditRepository
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewLifecycleService creates a new LifecycleServiceImpl.
func NewLifecycleService(
	requestRepo ports.RequestRepository,
	auditRepo ports.AuditRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *LifecycleServiceImpl {
	return &LifecycleServiceImpl{
		requestRepo: requestRepo,
		auditRepo:   auditRepo,
		transactor:  transactor,
		log:         log,
	}
}

// SubmitRequest validates a public submission and creates the ledger row
// together with its audit entry in one atomic unit. The requester payload
// is discarded once validation passes; only the document type survives.
func (s *LifecycleServiceImpl) SubmitRequest(ctx context.Context, req ports.SubmitRequest) (*domain.RequestRecord, error) {
	docType, ok := domain.ParseDocumentType(req.DocumentType)
	if !ok {
		return nil, apperror.ErrInvalidDocumentType(domain.DocumentTypeNames())
	}

	if err := req.Requester.Validate(time.Now()); err != nil {
		if domain.IsUnderage(err) {
			return nil, apperror.ErrUnderage()
		}
		if domain.IsValidationFailure(err) {
			return nil, apperror.Validation(err.Error())
		}
		return nil, apperror.InternalError(fmt.Errorf("validate requester: %w", err))
	}

	rec := domain.NewRequestRecord(docType, time.Now().UTC())

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.requestRepo.Create(ctx, dbTx, rec); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create request: %w", err))
	}

	entry := domain.NewAuditEntry(domain.AuditRequestSubmitted, req.ActorID, &rec.ID, req.Origin)
	if err := s.auditRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create audit entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("request_id", rec.ID.String()).
		Str("document_type", string(rec.DocumentType)).
		Time("expires_at", rec.ExpiresAt).
		Msg("document request submitted")

	return rec, nil
}

// CheckStatus returns the public view of an unexpired request.
func (s *LifecycleServiceImpl) CheckStatus(ctx context.Context, requestID uuid.UUID) (*domain.RequestRecord, error) {
	rec, err := s.requestRepo.GetActive(ctx, requestID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get request: %w", err))
	}
	if rec == nil {
		return nil, apperror.ErrRequestNotFound()
	}
	return rec, nil
}

// UpdateStatus moves an unexpired request to a new status. Staff and admin
// accounts may update; the status change and its audit entry commit together.
func (s *LifecycleServiceImpl) UpdateStatus(ctx context.Context, req ports.UpdateStatusRequest) (*domain.RequestRecord, error) {
	if req.Actor == nil {
		return nil, apperror.ErrMissingToken()
	}
	if !req.Actor.HasAnyRole(domain.RoleStaff, domain.RoleAdmin) {
		return nil, apperror.ErrForbidden()
	}

	status, ok := domain.ParseStatus(req.NewStatus)
	if !ok {
		return nil, apperror.ErrInvalidStatus(domain.StatusNames())
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	rec, err := s.requestRepo.UpdateStatus(ctx, dbTx, req.RequestID, status)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update status: %w", err))
	}
	if rec == nil {
		return nil, apperror.ErrRequestNotFound()
	}

	entry := domain.NewAuditEntry(domain.StatusUpdateAction(status), &req.Actor.ID, &rec.ID, req.Origin)
	if err := s.auditRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create audit entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("request_id", rec.ID.String()).
		Str("status", string(rec.Status)).
		Str("actor_id", req.Actor.ID.String()).
		Msg("request status updated")

	return rec, nil
}

// ListRequests returns unexpired requests for the staff dashboard, newest
// first, optionally narrowed to one status.
func (s *LifecycleServiceImpl) ListRequests(ctx context.Context, actor *domain.Identity, statusFilter string) ([]domain.RequestRecord, error) {
	if actor == nil {
		return nil, apperror.ErrMissingToken()
	}

	params := ports.RequestListParams{}
	if statusFilter != "" {
		status, ok := domain.ParseStatus(statusFilter)
		if !ok {
			return nil, apperror.ErrInvalidStatus(domain.StatusNames())
		}
		params.Status = &status
	}

	recs, err := s.requestRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list requests: %w", err))
	}
	return recs, nil
}

// Cleanup purges expired and completed requests on demand. Admin only; the
// hourly sweeper covers the routine case.
func (s *LifecycleServiceImpl) Cleanup(ctx context.Context, actor *domain.Identity, origin string) (int64, error) {
	if actor == nil {
		return 0, apperror.ErrMissingToken()
	}
	if !actor.HasAnyRole(domain.RoleAdmin) {
		return 0, apperror.ErrForbidden()
	}

	deleted, err := s.requestRepo.PurgeExpiredOrCompleted(ctx)
	if err != nil {
		return 0, apperror.ErrDatabaseError(fmt.Errorf("purge requests: %w", err))
	}

	entry := domain.NewAuditEntry(domain.AuditRequestsCleaned, &actor.ID, nil, origin)
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		s.log.Warn().Err(err).Msg("failed to record cleanup audit entry")
	}

	s.log.Info().
		Int64("deleted", deleted).
		Str("actor_id", actor.ID.String()).
		Msg("manual cleanup completed")

	return deleted, nil
}
