package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicateUsername is returned by identity stores when an insert loses
// the race against another registration of the same username.
var ErrDuplicateUsername = errors.New("username already exists")

// Role is the access level of an operator account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// NormalizeRole maps arbitrary input to a recognized role.
// Anything that is not exactly "admin" becomes staff.
func NormalizeRole(raw string) Role {
	if raw == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleStaff
}

// Identity is an operator account (barangay staff or admin).
// PasswordHash never crosses the API boundary.
type Identity struct {
	ID           uuid.UUID  `json:"user_id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Active       bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// IsActive reports whether the account may authenticate.
func (i *Identity) IsActive() bool {
	return i.Active
}

// HasAnyRole reports whether the identity holds one of the given roles.
func (i *Identity) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
