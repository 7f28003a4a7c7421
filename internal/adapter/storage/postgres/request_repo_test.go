package postgres

import (
	"context"
	"testing"
	"time"

	"barangay-request-api/internal/core/domain"
	"barangay-request-api/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord() *domain.RequestRecord {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.RequestRecord{
		ID:           uuid.New(),
		DocumentType: domain.DocBarangayClearance,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.Add(domain.RequestTTL),
	}
}

func requestColumnNames() []string {
	return []string{"request_id", "document_type", "request_status", "created_at", "updated_at", "expires_at"}
}

func requestRow(rec *domain.RequestRecord) *pgxmock.Rows {
	return pgxmock.NewRows(requestColumnNames()).AddRow(
		rec.ID, rec.DocumentType, rec.Status, rec.CreatedAt, rec.UpdatedAt, rec.ExpiresAt,
	)
}

func TestRequestRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepo(mock)
	rec := newTestRecord()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO document_requests").
		WithArgs(rec.ID, rec.DocumentType, rec.Status, rec.CreatedAt, rec.UpdatedAt, rec.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, rec)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepo_GetActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepo(mock)
	rec := newTestRecord()

	mock.ExpectQuery("SELECT .+ FROM document_requests WHERE request_id = .+ AND expires_at > now()").
		WithArgs(rec.ID).
		WillReturnRows(requestRow(rec))

	result, err := repo.GetActive(context.Background(), rec.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, rec.ID, result.ID)
	assert.Equal(t, rec.Status, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepo_GetActive_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepo(mock)
	id := uuid.New()

	// Expired rows hit the same branch: the WHERE clause filters them out
	// and the query returns no rows.
	mock.ExpectQuery("SELECT .+ FROM document_requests").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(requestColumnNames()))

	result, err := repo.GetActive(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepo_List_NoFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepo(mock)
	a, b := newTestRecord(), newTestRecord()

	mock.ExpectQuery("SELECT .+ FROM document_requests WHERE expires_at > now().+ORDER BY created_at DESC LIMIT 100").
		WillReturnRows(pgxmock.NewRows(requestColumnNames()).
			AddRow(a.ID, a.DocumentType, a.Status, a.CreatedAt, a.UpdatedAt, a.ExpiresAt).
			AddRow(b.ID, b.DocumentType, b.Status, b.CreatedAt, b.UpdatedAt, b.ExpiresAt))

	recs, err := repo.List(context.Background(), ports.RequestListParams{})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepo_List_StatusFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepo(mock)
	status := domain.StatusProcessing

	mock.ExpectQuery(`SELECT .+ FROM document_requests WHERE expires_at > now\(\) AND request_status`).
		WithArgs(status).
		WillReturnRows(pgxmock.NewRows(requestColumnNames()))

	recs, err := repo.List(context.Background(), ports.RequestListParams{Status: &status})
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepo_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepo(mock)
	rec := newTestRecord()
	rec.Status = domain.StatusApproved

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE document_requests SET request_status = .+ WHERE request_id = .+ AND expires_at > now.+RETURNING").
		WithArgs(domain.StatusApproved, rec.ID).
		WillReturnRows(requestRow(rec))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(context.Background(), dbTx, rec.ID, domain.StatusApproved)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.StatusApproved, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepo_UpdateStatus_NotFoundOrExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE document_requests").
		WithArgs(domain.StatusCompleted, id).
		WillReturnRows(pgxmock.NewRows(requestColumnNames()))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(context.Background(), dbTx, id, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepo_PurgeExpiredOrCompleted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepo(mock)

	mock.ExpectExec(`DELETE FROM document_requests WHERE expires_at < now\(\) OR request_status`).
		WithArgs(domain.StatusCompleted).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	count, err := repo.PurgeExpiredOrCompleted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepo_PurgeExpiredOrCompleted_NothingToDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepo(mock)

	mock.ExpectExec("DELETE FROM document_requests").
		WithArgs(domain.StatusCompleted).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	count, err := repo.PurgeExpiredOrCompleted(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
