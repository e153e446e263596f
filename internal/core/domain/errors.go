package domain

import (
	"errors"
	"fmt"

	"github.com/kamal-hamza/neo-cli/pkg/physics"
)

// ErrMalformedRecord is returned when a feed record lacks a required field
// or carries a value that cannot be converted to the expected type.
var ErrMalformedRecord = errors.New("malformed record")

// ErrInvalidParameter is returned when a physical quantity is out of range
var ErrInvalidParameter = physics.ErrInvalidParameter

// malformed wraps ErrMalformedRecord with the offending field path
func malformed(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedRecord, field, fmt.Sprintf(format, args...))
}

// RecordError describes a feed record that could not be turned into an asteroid
type RecordError struct {
	Index int
	ID    string
	Name  string
	Err   error
}

func (e RecordError) Error() string {
	label := e.Name
	if label == "" {
		label = e.ID
	}
	if label == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("record %d (%s): %v", e.Index, label, e.Err)
}

func (e RecordError) Unwrap() error {
	return e.Err
}
