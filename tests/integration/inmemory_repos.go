package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"barangay-request-api/internal/core/domain"
	"barangay-request-api/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Request Repo ---

type inMemoryRequestRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.RequestRecord
}

func newInMemoryRequestRepo() *inMemoryRequestRepo {
	return &inMemoryRequestRepo{records: make(map[uuid.UUID]*domain.RequestRecord)}
}

func (r *inMemoryRequestRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.RequestRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.records[rec.ID] = &cp
	return nil
}

func (r *inMemoryRequestRepo) GetActive(ctx context.Context, id uuid.UUID) (*domain.RequestRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok || rec.IsExpired(time.Now()) {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *inMemoryRequestRepo) List(ctx context.Context, params ports.RequestListParams) ([]domain.RequestRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now()
	var out []domain.RequestRecord
	for _, rec := range r.records {
		if rec.IsExpired(now) {
			continue
		}
		if params.Status != nil && rec.Status != *params.Status {
			continue
		}
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > ports.MaxListResults {
		out = out[:ports.MaxListResults]
	}
	return out, nil
}

func (r *inMemoryRequestRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.RequestStatus) (*domain.RequestRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.IsExpired(time.Now()) {
		return nil, nil
	}
	rec.Status = status
	rec.UpdatedAt = time.Now().UTC()
	cp := *rec
	return &cp, nil
}

func (r *inMemoryRequestRepo) PurgeExpiredOrCompleted(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var deleted int64
	for id, rec := range r.records {
		if rec.IsExpired(now) || rec.Status == domain.StatusCompleted {
			delete(r.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// seed installs a record directly, bypassing the service. Tests use it to
// plant expired rows.
func (r *inMemoryRequestRepo) seed(rec *domain.RequestRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.records[rec.ID] = &cp
}

func (r *inMemoryRequestRepo) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// --- In-Memory Identity Repo ---

type inMemoryIdentityRepo struct {
	mu         sync.RWMutex
	identities map[uuid.UUID]*domain.Identity
}

func newInMemoryIdentityRepo() *inMemoryIdentityRepo {
	return &inMemoryIdentityRepo{identities: make(map[uuid.UUID]*domain.Identity)}
}

func (r *inMemoryIdentityRepo) Create(ctx context.Context, identity *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.identities {
		if existing.Username == identity.Username {
			return domain.ErrDuplicateUsername
		}
	}
	cp := *identity
	r.identities[identity.ID] = &cp
	return nil
}

func (r *inMemoryIdentityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.identities[id]
	if !ok {
		return nil, nil
	}
	cp := *identity
	return &cp, nil
}

func (r *inMemoryIdentityRepo) GetByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, identity := range r.identities {
		if identity.Username == username {
			cp := *identity
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryIdentityRepo) TouchLogin(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	identity, ok := r.identities[id]
	if !ok {
		return fmt.Errorf("identity not found")
	}
	now := time.Now().UTC()
	identity.LastLoginAt = &now
	return nil
}

func (r *inMemoryIdentityRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	identity, ok := r.identities[id]
	if !ok {
		return fmt.Errorf("identity not found")
	}
	identity.Active = false
	return nil
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu      sync.RWMutex
	entries []domain.AuditEntry
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *inMemoryAuditRepo) Record(ctx context.Context, entry *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *inMemoryAuditRepo) byAction(action domain.AuditAction) []domain.AuditEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.AuditEntry
	for _, e := range r.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// --- In-Memory Transactor ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
