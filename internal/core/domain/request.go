package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestTTL is how long a tracking record stays retrievable after
// submission. Past this horizon the record is invisible to readers and
// eligible for physical purge.
const RequestTTL = 7 * 24 * time.Hour

// RequestStatus is the processing state of a document request.
// The set is flat: staff may move a request between any two statuses.
// Completed only matters in that it makes the row purge-eligible.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusProcessing RequestStatus = "processing"
	StatusApproved   RequestStatus = "approved"
	StatusRejected   RequestStatus = "rejected"
	StatusCompleted  RequestStatus = "completed"
)

// AllStatuses lists every recognized status, in display order.
func AllStatuses() []RequestStatus {
	return []RequestStatus{StatusPending, StatusProcessing, StatusApproved, StatusRejected, StatusCompleted}
}

// StatusNames returns the comma-joined status names for error messages.
func StatusNames() string {
	all := AllStatuses()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// ParseStatus validates a raw status string against the closed set.
func ParseStatus(raw string) (RequestStatus, bool) {
	s := RequestStatus(raw)
	for _, known := range AllStatuses() {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// DocumentType identifies which civic document is being requested.
type DocumentType string

const (
	DocBarangayClearance      DocumentType = "barangay_clearance"
	DocCertificateOfResidency DocumentType = "certificate_of_residency"
	DocCertificateOfIndigency DocumentType = "certificate_of_indigency"
	DocBusinessPermit         DocumentType = "business_permit"
	DocCertificateOfGoodMoral DocumentType = "certificate_of_good_moral"
)

// AllDocumentTypes lists every document type a request may name.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocBarangayClearance,
		DocCertificateOfResidency,
		DocCertificateOfIndigency,
		DocBusinessPermit,
		DocCertificateOfGoodMoral,
	}
}

// DocumentTypeNames returns the comma-joined type names for error messages.
func DocumentTypeNames() string {
	all := AllDocumentTypes()
	names := make([]string, len(all))
	for i, d := range all {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

// ParseDocumentType validates a raw document type against the closed set.
func ParseDocumentType(raw string) (DocumentType, bool) {
	d := DocumentType(raw)
	for _, known := range AllDocumentTypes() {
		if d == known {
			return d, true
		}
	}
	return "", false
}

// RequestRecord is a tracking row in the request ledger. It carries status
// and timestamps only; nothing about the requester is ever stored here.
type RequestRecord struct {
	ID           uuid.UUID     `json:"request_id"`
	DocumentType DocumentType  `json:"document_type"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	ExpiresAt    time.Time     `json:"expires_at"`
}

// NewRequestRecord creates a pending tracking record with a server-generated
// id and the standard retention horizon.
func NewRequestRecord(docType DocumentType, now time.Time) *RequestRecord {
	return &RequestRecord{
		ID:           uuid.New(),
		DocumentType: docType,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.Add(RequestTTL),
	}
}

// IsExpired reports whether the record is past its retention horizon.
// Readers must treat expired rows as absent even before the sweeper
// physically removes them.
func (r *RequestRecord) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
