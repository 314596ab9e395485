package errors

import (
	"math"
	"net/mail"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// MaxNameLength bounds design, user and company names.
const MaxNameLength = 200

// ValidateName validates a display name such as a design or company name.
// Surrounding whitespace is ignored; the trimmed name must be non-empty,
// printable and at most MaxNameLength characters.
func ValidateName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", field)
	}

	if len([]rune(name)) > MaxNameLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", field, MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}

	return nil
}

// ValidateEmail validates a bare email address (no display name).
func ValidateEmail(email string) error {
	if email == "" {
		return New(ErrCodeInvalidInput, "email cannot be empty")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return New(ErrCodeInvalidInput, "invalid email address: %q", email)
	}

	return nil
}

// ValidateMin checks that v is a finite number not below lo.
func ValidateMin(field string, v, lo float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidParams, "%s must be a finite number", field)
	}
	if v < lo {
		return New(ErrCodeInvalidParams, "%s must be at least %g", field, lo)
	}
	return nil
}

// ValidateIntRange checks that v is a whole number within [lo, hi].
func ValidateIntRange(field string, v float64, lo, hi int) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return New(ErrCodeInvalidParams, "%s must be a whole number", field)
	}
	if v < float64(lo) || v > float64(hi) {
		return New(ErrCodeInvalidParams, "%s must be between %d and %d", field, lo, hi)
	}
	return nil
}

// idRegex matches identifiers accepted in URLs and storage keys.
var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidateID validates a resource identifier.
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid %s id: %q", kind, id)
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
