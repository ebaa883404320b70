package sim

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. Each typed error below matches
// exactly one of these.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrState      = errors.New("invalid state")
	ErrIO         = errors.New("io failure")
)

// ValidationError reports a malformed input: out-of-range ratio, negative
// size or budget, unknown enum value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a reference to an unknown platform, audience,
// campaign or grouping unit.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StateError reports an operation that is not allowed in the current
// lifecycle state, e.g. mutating a sealed campaign.
type StateError struct {
	ID     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.ID, e.Reason)
}

func (e *StateError) Is(target error) bool { return target == ErrState }

// IOError wraps a filesystem failure during export or import.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func notFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}
