package dto

import (
	"fmt"
	"html"
	"reflect"
	"regexp"
	"strings"
	"time"

	"barangay-request-api/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)
	phMobileRe   = regexp.MustCompile(`^(09|\+639)\d{9}$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("ph_mobile", validatePHMobile)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validatePHMobile accepts Philippine mobile numbers in 09XXXXXXXXX or
// +639XXXXXXXXX form, ignoring spaces and dashes.
func validatePHMobile(fl validator.FieldLevel) bool {
	raw := strings.NewReplacer(" ", "", "-", "").Replace(fl.Field().String())
	return phMobileRe.MatchString(raw)
}

// Payload converts the bound requester info into its transient domain form.
func (r RequesterInfo) Payload() (domain.RequesterPayload, error) {
	p := domain.RequesterPayload{
		FullName:      r.FullName,
		Address:       r.Address,
		ContactNumber: r.ContactNumber,
	}
	if r.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", r.BirthDate)
		if err != nil {
			return domain.RequesterPayload{}, fmt.Errorf("birth date must be YYYY-MM-DD")
		}
		p.BirthDate = &birth
	}
	return p, nil
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field of a struct pointer, descending into nested structs.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Struct:
			sanitizeFields(f)
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
