package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barangay-request-api/internal/core/domain"
	"barangay-request-api/internal/core/ports"
	"barangay-request-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const minPasswordLength = 8

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	identityRepo ports.IdentityRepository
	auditRepo    ports.AuditRepository
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
	log          zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	identityRepo ports.IdentityRepository,
	auditRepo ports.AuditRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		identityRepo: identityRepo,
		auditRepo:    auditRepo,
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
		log:          log,
	}
}

// Register creates a new operator account. Unknown roles collapse to staff.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*domain.Identity, error) {
	if len(req.Password) < minPasswordLength {
		return nil, apperror.ErrWeakPassword()
	}

	existing, err := s.identityRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("check username: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrUsernameExists()
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	identity := &domain.Identity{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         domain.NormalizeRole(req.Role),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.identityRepo.Create(ctx, identity); err != nil {
		// A concurrent registration can slip past the username check; the
		// unique constraint is the authority.
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, apperror.ErrUsernameExists()
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create identity: %w", err))
	}

	s.recordAudit(ctx, domain.NewAuditEntry(domain.AuditUserRegistered, &identity.ID, nil, req.Origin))

	s.log.Info().
		Str("user_id", identity.ID.String()).
		Str("username", identity.Username).
		Str("role", string(identity.Role)).
		Msg("operator account registered")

	return identity, nil
}

// Login validates credentials and returns a bearer token for the account.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password, origin string) (*ports.LoginResult, error) {
	identity, err := s.identityRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("find identity: %w", err))
	}
	if identity == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, identity.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return nil, apperror.ErrInvalidCredentials()
	}

	if !identity.IsActive() {
		return nil, apperror.ErrAccountInactive()
	}

	if err := s.identityRepo.TouchLogin(ctx, identity.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", identity.ID.String()).Msg("failed to stamp last login")
	}

	token, expiresAt, err := s.tokenSvc.Generate(identity)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.recordAudit(ctx, domain.NewAuditEntry(domain.AuditUserLogin, &identity.ID, nil, origin))

	return &ports.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Identity:  identity,
	}, nil
}

// CurrentUser loads the account behind a validated token.
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	identity, err := s.identityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("find identity: %w", err))
	}
	if identity == nil {
		return nil, apperror.ErrIdentityNotFound()
	}
	return identity, nil
}

// recordAudit writes a standalone audit entry. Account events are logged
// best-effort; only ledger mutations demand an atomic audit write.
func (s *AuthServiceImpl) recordAudit(ctx context.Context, entry *domain.AuditEntry) {
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to record audit entry")
	}
}
