package postgres

import (
	"context"
	"errors"
	"fmt"

	"barangay-request-api/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrUniqueViolation = "23505"

// IdentityRepo implements ports.IdentityRepository.
type IdentityRepo struct {
	pool Pool
}

// NewIdentityRepo creates a new IdentityRepo.
func NewIdentityRepo(pool Pool) *IdentityRepo {
	return &IdentityRepo{pool: pool}
}

const identityColumns = `user_id, username, password_hash, role, is_active, created_at, last_login_at`

// Create inserts a new operator account.
func (r *IdentityRepo) Create(ctx context.Context, i *domain.Identity) error {
	query := `INSERT INTO api_users (user_id, username, password_hash, role, is_active, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		i.ID, i.Username, i.PasswordHash, i.Role, i.Active, i.CreatedAt, i.LastLoginAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

// GetByID fetches an operator account by its UUID.
func (r *IdentityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM api_users WHERE user_id = $1`
	return scanIdentity(r.pool.QueryRow(ctx, query, id))
}

// GetByUsername fetches an operator account by username. The lookup is
// case-sensitive; usernames differing only in case are distinct accounts.
func (r *IdentityRepo) GetByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM api_users WHERE username = $1`
	return scanIdentity(r.pool.QueryRow(ctx, query, username))
}

// TouchLogin stamps last_login_at with the current time.
func (r *IdentityRepo) TouchLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE api_users SET last_login_at = now() WHERE user_id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("touch login: %w", err)
	}
	return nil
}

// Deactivate clears the active flag. The row is kept so audit references
// stay resolvable.
func (r *IdentityRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE api_users SET is_active = false WHERE user_id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("identity not found: %s", id)
	}
	return nil
}

func scanIdentity(row pgx.Row) (*domain.Identity, error) {
	i := &domain.Identity{}
	err := row.Scan(
		&i.ID, &i.Username, &i.PasswordHash, &i.Role, &i.Active, &i.CreatedAt, &i.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan identity: %w", err)
	}
	return i, nil
}
