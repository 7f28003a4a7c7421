package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuditAction names a sensitive action for the append-only audit trail.
type AuditAction string

const (
	AuditRequestSubmitted AuditAction = "REQUEST_SUBMITTED"
	AuditUserRegistered   AuditAction = "USER_REGISTERED"
	AuditUserLogin        AuditAction = "USER_LOGIN"
	AuditRequestsCleaned  AuditAction = "REQUESTS_CLEANED"

	statusUpdatePrefix = "STATUS_UPDATED_TO_"
)

// StatusUpdateAction builds the audit action name for a status change,
// e.g. STATUS_UPDATED_TO_APPROVED.
func StatusUpdateAction(status RequestStatus) AuditAction {
	return AuditAction(statusUpdatePrefix + strings.ToUpper(string(status)))
}

// AuditEntry records one audited action. Actor and request references are
// weak: entries survive deletion of the rows they point at, so the trail
// outlives both purged requests and deactivated accounts. No field may ever
// carry requester personal data.
type AuditEntry struct {
	ID        uuid.UUID   `json:"log_id"`
	Action    AuditAction `json:"action"`
	ActorID   *uuid.UUID  `json:"actor_id,omitempty"`
	RequestID *uuid.UUID  `json:"request_id,omitempty"`
	Origin    string      `json:"ip_address,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewAuditEntry creates an audit entry stamped with the current time.
func NewAuditEntry(action AuditAction, actorID, requestID *uuid.UUID, origin string) *AuditEntry {
	return &AuditEntry{
		ID:        uuid.New(),
		Action:    action,
		ActorID:   actorID,
		RequestID: requestID,
		Origin:    origin,
		CreatedAt: time.Now().UTC(),
	}
}
