package domain

import "time"

// RequesterPayload is the personal data supplied with a submission. It lives
// only for the duration of the submit call: validated in memory, then
// dropped. The type deliberately carries no serialization tags and is not
// accepted by any repository, logger field, or audit entry, so persisting it
// is a type error rather than a code-review catch.
type RequesterPayload struct {
	FullName      string
	Address       string
	ContactNumber string
	BirthDate     *time.Time
}

// Validate applies the submission rules in order; the first failure wins.
func (p RequesterPayload) Validate(now time.Time) error {
	if len(p.FullName) < 3 {
		return errFullNameTooShort
	}
	if len(p.Address) < 10 {
		return errAddressTooShort
	}
	if p.BirthDate != nil {
		// Calendar-naive age: current year minus birth year.
		if now.Year()-p.BirthDate.Year() < 18 {
			return errUnderage
		}
	}
	return nil
}

// Sentinel validation failures. The lifecycle service maps these to client
// errors; the payload package itself stays free of HTTP concerns.
var (
	errFullNameTooShort = validationFailure("Full name must be at least 3 characters")
	errAddressTooShort  = validationFailure("Please provide complete address")
	errUnderage         = validationFailure("Requester must be at least 18 years old")
)

type validationFailure string

func (v validationFailure) Error() string { return string(v) }

// IsValidationFailure reports whether err is a payload validation failure.
func IsValidationFailure(err error) bool {
	_, ok := err.(validationFailure)
	return ok
}

// IsUnderage reports whether err is the age-gate failure specifically.
func IsUnderage(err error) bool {
	return err == errUnderage
}
