package event

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned for unknown event ids.
var ErrNotFound = errors.New("event not found")

// FieldError is one invalid or missing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid event: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ConflictError is returned when a write would double-book a room and the
// caller did not set Override. Nothing has been persisted.
type ConflictError struct {
	Conflicts []Event `json:"conflicts"`
}

func (e *ConflictError) Error() string {
	names := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		names = append(names, fmt.Sprintf("%q (%s)", c.Name, c.Window()))
	}
	return fmt.Sprintf("room already booked: %s", strings.Join(names, ", "))
}
