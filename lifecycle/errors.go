package lifecycle

import (
	"errors"
	"fmt"
)

// Sentinel failures surfaced by the engine and its callers.
var (
	// ErrNotFound reports an unknown incident id.
	ErrNotFound = errors.New("incident not found")
	// ErrConflict reports a concurrent-write violation surfaced by the
	// persistence layer.
	ErrConflict = errors.New("incident was modified concurrently")
)

// ValidationError reports a missing or out-of-range field. The engine raises
// it before any mutation is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthorizationError reports a role or ownership violation.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}
