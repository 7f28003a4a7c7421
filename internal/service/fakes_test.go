package service_test

import (
	"context"
	"fmt"

	"barangay-request-api/internal/core/domain"
	"barangay-request-api/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeTx satisfies pgx.Tx for the methods the services touch. Anything else
// panics through the embedded nil interface.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeTransactor struct {
	tx       *fakeTx
	beginErr error
}

func newFakeTransactor() *fakeTransactor {
	return &fakeTransactor{tx: &fakeTx{}}
}

func (f *fakeTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

type fakeRequestRepo struct {
	records    map[uuid.UUID]*domain.RequestRecord
	createErr  error
	updateErr  error
	purgeCount int64
	purgeErr   error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{records: make(map[uuid.UUID]*domain.RequestRecord)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.RequestRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *rec
	f.records[rec.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) GetActive(ctx context.Context, id uuid.UUID) (*domain.RequestRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeRequestRepo) List(ctx context.Context, params ports.RequestListParams) ([]domain.RequestRecord, error) {
	var out []domain.RequestRecord
	for _, rec := range f.records {
		if params.Status != nil && rec.Status != *params.Status {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.RequestStatus) (*domain.RequestRecord, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	rec.Status = status
	cp := *rec
	return &cp, nil
}

func (f *fakeRequestRepo) PurgeExpiredOrCompleted(ctx context.Context) (int64, error) {
	if f.purgeErr != nil {
		return 0, f.purgeErr
	}
	return f.purgeCount, nil
}

type fakeAuditRepo struct {
	txEntries         []*domain.AuditEntry
	standaloneEntries []*domain.AuditEntry
	createErr         error
	recordErr         error
}

func (f *fakeAuditRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.AuditEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.txEntries = append(f.txEntries, entry)
	return nil
}

func (f *fakeAuditRepo) Record(ctx context.Context, entry *domain.AuditEntry) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.standaloneEntries = append(f.standaloneEntries, entry)
	return nil
}

type fakeIdentityRepo struct {
	byUsername map[string]*domain.Identity
	byID       map[uuid.UUID]*domain.Identity
	getErr     error
	createErr  error
	touchErr   error
	touched    []uuid.UUID
}

func newFakeIdentityRepo(identities ...*domain.Identity) *fakeIdentityRepo {
	f := &fakeIdentityRepo{
		byUsername: make(map[string]*domain.Identity),
		byID:       make(map[uuid.UUID]*domain.Identity),
	}
	for _, id := range identities {
		f.byUsername[id.Username] = id
		f.byID[id.ID] = id
	}
	return f
}

func (f *fakeIdentityRepo) Create(ctx context.Context, identity *domain.Identity) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byUsername[identity.Username] = identity
	f.byID[identity.ID] = identity
	return nil
}

func (f *fakeIdentityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byID[id], nil
}

func (f *fakeIdentityRepo) GetByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byUsername[username], nil
}

func (f *fakeIdentityRepo) TouchLogin(ctx context.Context, id uuid.UUID) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeIdentityRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	identity, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("identity not found")
	}
	identity.Active = false
	return nil
}
