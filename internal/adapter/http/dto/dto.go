package dto

import (
	"time"

	"barangay-request-api/internal/core/domain"
)

// RequesterInfo is the personal portion of a submission. It is validated and
// then discarded; no view type echoes any of these fields back.
type RequesterInfo struct {
	FullName      string `json:"fullName" binding:"required"`
	Address       string `json:"address" binding:"required"`
	ContactNumber string `json:"contactNumber" binding:"required,ph_mobile"`
	BirthDate     string `json:"birthDate,omitempty"` // YYYY-MM-DD
}

// SubmitRequestBody is the request body for a public document request.
type SubmitRequestBody struct {
	DocumentType string        `json:"documentType" binding:"required"`
	Requester    RequesterInfo `json:"requester" binding:"required"`
}

// UpdateStatusBody is the request body for a staff status update.
// Notes are accepted for forward compatibility but never stored.
type UpdateStatusBody struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes,omitempty"`
}

// RegisterBody is the request body for operator account creation.
type RegisterBody struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role,omitempty"`
}

// LoginBody is the request body for operator login.
type LoginBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SubmitNote reminds the requester that the tracking id is the only handle
// they will ever get; nothing personal is kept server-side.
const SubmitNote = "Please save this Request ID. Personal data is not stored in our system."

// SubmitView is the response body for a fresh submission.
type SubmitView struct {
	RequestID    string `json:"requestId"`
	DocumentType string `json:"documentType"`
	Status       string `json:"status"`
	SubmittedAt  string `json:"submittedAt"`
	ExpiresAt    string `json:"expiresAt"`
	Note         string `json:"note"`
}

// NewSubmitView projects a freshly created tracking record.
func NewSubmitView(rec *domain.RequestRecord) SubmitView {
	return SubmitView{
		RequestID:    rec.ID.String(),
		DocumentType: string(rec.DocumentType),
		Status:       string(rec.Status),
		SubmittedAt:  rec.CreatedAt.Format(time.RFC3339),
		ExpiresAt:    rec.ExpiresAt.Format(time.RFC3339),
		Note:         SubmitNote,
	}
}

// RequestView is the public projection of a tracking record.
type RequestView struct {
	RequestID    string `json:"requestId"`
	DocumentType string `json:"documentType"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
	ExpiresAt    string `json:"expiresAt"`
}

// NewRequestView projects a tracking record for API responses.
func NewRequestView(rec *domain.RequestRecord) RequestView {
	return RequestView{
		RequestID:    rec.ID.String(),
		DocumentType: string(rec.DocumentType),
		Status:       string(rec.Status),
		CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    rec.UpdatedAt.Format(time.RFC3339),
		ExpiresAt:    rec.ExpiresAt.Format(time.RFC3339),
	}
}

// NewRequestViews projects a slice of tracking records.
func NewRequestViews(recs []domain.RequestRecord) []RequestView {
	views := make([]RequestView, len(recs))
	for i := range recs {
		views[i] = NewRequestView(&recs[i])
	}
	return views
}

// IdentityView is the API projection of an operator account.
type IdentityView struct {
	UserID      string  `json:"userId"`
	Username    string  `json:"username"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"isActive"`
	CreatedAt   string  `json:"createdAt"`
	LastLoginAt *string `json:"lastLoginAt,omitempty"`
}

// NewIdentityView projects an operator account for API responses.
func NewIdentityView(identity *domain.Identity) IdentityView {
	view := IdentityView{
		UserID:    identity.ID.String(),
		Username:  identity.Username,
		Role:      string(identity.Role),
		IsActive:  identity.Active,
		CreatedAt: identity.CreatedAt.Format(time.RFC3339),
	}
	if identity.LastLoginAt != nil {
		s := identity.LastLoginAt.Format(time.RFC3339)
		view.LastLoginAt = &s
	}
	return view
}

// LoginView is the response body for a successful login.
type LoginView struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
	User      IdentityView `json:"user"`
}

// CleanupView is the response body for a manual cleanup run.
type CleanupView struct {
	DeletedCount int64 `json:"deletedCount"`
}
