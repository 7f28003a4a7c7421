package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		got, ok := ParseStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}

	_, ok := ParseStatus("archived")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
	_, ok = ParseStatus("Pending") // case-sensitive
	assert.False(t, ok)
}

func TestParseDocumentType(t *testing.T) {
	got, ok := ParseDocumentType("barangay_clearance")
	assert.True(t, ok)
	assert.Equal(t, DocBarangayClearance, got)

	_, ok = ParseDocumentType("passport")
	assert.False(t, ok)
}

func TestDocumentTypeNames(t *testing.T) {
	names := DocumentTypeNames()
	assert.Contains(t, names, "barangay_clearance")
	assert.Contains(t, names, "certificate_of_good_moral")
}

func TestNewRequestRecord(t *testing.T) {
	now := time.Now().UTC()
	rec := NewRequestRecord(DocBusinessPermit, now)

	assert.NotEqual(t, [16]byte{}, [16]byte(rec.ID))
	assert.Equal(t, StatusPending, rec.Status)
	assert.Equal(t, now, rec.CreatedAt)
	assert.Equal(t, now, rec.UpdatedAt)
	assert.Equal(t, now.Add(7*24*time.Hour), rec.ExpiresAt)
}

func TestRequestRecord_IsExpired(t *testing.T) {
	now := time.Now().UTC()
	rec := NewRequestRecord(DocBarangayClearance, now)

	assert.False(t, rec.IsExpired(now))
	assert.False(t, rec.IsExpired(now.Add(RequestTTL-time.Second)))
	assert.True(t, rec.IsExpired(now.Add(RequestTTL)))
	assert.True(t, rec.IsExpired(now.Add(RequestTTL+time.Hour)))
}

func TestStatusUpdateAction(t *testing.T) {
	assert.Equal(t, AuditAction("STATUS_UPDATED_TO_APPROVED"), StatusUpdateAction(StatusApproved))
	assert.Equal(t, AuditAction("STATUS_UPDATED_TO_PENDING"), StatusUpdateAction(StatusPending))
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, RoleStaff, NormalizeRole("staff"))
	assert.Equal(t, RoleStaff, NormalizeRole(""))
	assert.Equal(t, RoleStaff, NormalizeRole("superuser"))
}

func TestIdentity_HasAnyRole(t *testing.T) {
	staff := &Identity{Role: RoleStaff}
	assert.True(t, staff.HasAnyRole(RoleStaff, RoleAdmin))
	assert.False(t, staff.HasAnyRole(RoleAdmin))
}

func birthDate(t *testing.T, value string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &d
}

func TestRequesterPayload_Validate(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	valid := RequesterPayload{
		FullName:      "Juan Dela Cruz",
		Address:       "123 Rizal St, Brgy San Jose, Quezon City",
		ContactNumber: "09171234567",
		BirthDate:     birthDate(t, "1990-01-01"),
	}
	assert.NoError(t, valid.Validate(now))

	shortName := valid
	shortName.FullName = "Jo"
	err := shortName.Validate(now)
	require.Error(t, err)
	assert.True(t, IsValidationFailure(err))
	assert.Equal(t, "Full name must be at least 3 characters", err.Error())

	shortAddr := valid
	shortAddr.Address = "Manila"
	err = shortAddr.Validate(now)
	require.Error(t, err)
	assert.Equal(t, "Please provide complete address", err.Error())

	underage := valid
	underage.BirthDate = birthDate(t, "2009-01-01") // 17 by year arithmetic
	err = underage.Validate(now)
	require.Error(t, err)
	assert.Equal(t, "Requester must be at least 18 years old", err.Error())

	// Exactly 18 by year arithmetic passes, regardless of month.
	exactly18 := valid
	exactly18.BirthDate = birthDate(t, "2008-12-31")
	assert.NoError(t, exactly18.Validate(now))

	// Birth date is optional.
	noBirth := valid
	noBirth.BirthDate = nil
	assert.NoError(t, noBirth.Validate(now))
}

func TestRequesterPayload_ValidationOrder(t *testing.T) {
	// Name failure wins over address failure.
	p := RequesterPayload{FullName: "X", Address: "Y"}
	err := p.Validate(time.Now())
	require.Error(t, err)
	assert.Equal(t, "Full name must be at least 3 characters", err.Error())
}
