package wkt

import (
	"errors"
	"fmt"
	"strings"
)

// Well-known type codec errors
var (
	// ErrRange indicates a Duration/Timestamp component outside its defined bounds.
	ErrRange = errors.New("value out of range")
	// ErrMalformed indicates input text or JSON that does not match the expected shape.
	ErrMalformed = errors.New("malformed input")
)

// FieldError represents an encoding/decoding error with a field path.
type FieldError struct {
	FieldPath []string // e.g., ["config", "retries"] or a list index like ["items", "2"]
	Err       error    // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}

	return fmt.Sprintf("error at field %s: %v", strings.Join(e.FieldPath, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// wrapWithField wraps an error with a field name or list index
func wrapWithField(err error, fieldName string) error {
	if err == nil {
		return nil
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{
			FieldPath: append([]string{fieldName}, fe.FieldPath...),
			Err:       fe.Err,
		}
	}

	return &FieldError{
		FieldPath: []string{fieldName},
		Err:       err,
	}
}
