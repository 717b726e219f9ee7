package validation

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// IDSuffixPattern is the numeric or random suffix that follows an entity prefix
	IDSuffixPattern = `^[A-Za-z0-9_-]+$`

	// DateLayout is the calendar date format used by every stored record
	DateLayout = "2006-01-02"
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	IDSuffix *regexp.Regexp
}{
	IDSuffix: regexp.MustCompile(IDSuffixPattern),
}

// IsEntityID reports whether id starts with prefix followed by a non-empty suffix
func IsEntityID(id, prefix string) bool {
	if !strings.HasPrefix(id, prefix) {
		return false
	}
	suffix := strings.TrimPrefix(id, prefix)
	return suffix != "" && CompiledPatterns.IDSuffix.MatchString(suffix)
}

// IsISODate accepts YYYY-MM-DD and full RFC3339 timestamps
func IsISODate(value string) bool {
	if _, err := time.Parse(DateLayout, value); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, value)
	return err == nil
}

// New returns a validator with the entity tags registered and JSON field names
// reported in errors.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// entityid=STU checks the client-generated id scheme
	_ = v.RegisterValidation("entityid", func(fl validator.FieldLevel) bool {
		return IsEntityID(fl.Field().String(), fl.Param())
	})

	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return IsISODate(fl.Field().String())
	})

	return v
}

// Messages renders validator field errors as field -> human readable message
func Messages(err error) map[string]string {
	out := map[string]string{}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return out
	}
	for _, fe := range fieldErrs {
		field, msg := Describe(fe)
		out[field] = msg
	}
	return out
}

// Describe returns the JSON field path and message of one field error
func Describe(fe validator.FieldError) (field, message string) {
	return fieldPath(fe), formatFieldError(fe)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min", "gte":
		return e.Field() + " must be at least " + e.Param()
	case "max", "lte":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "ltefield":
		return e.Field() + " must not exceed " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "entityid":
		return e.Field() + " must start with " + e.Param()
	case "isodate":
		return e.Field() + " must be a date in YYYY-MM-DD format"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
