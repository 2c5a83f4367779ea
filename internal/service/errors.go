package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrForbidden is returned when the requested change is not allowed in the
// document's current state. It is always wrapped with the reason.
var ErrForbidden = errors.New("forbidden")

// ErrConfirmationRequired is returned when approval is requested without an
// explicit confirmation.
var ErrConfirmationRequired = errors.New("confirmation required")

// ErrInvalidStatus is returned for an unknown target status.
var ErrInvalidStatus = errors.New("invalid status")

// ValidationError lists the fields that failed schema validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
