package model

import (
	"errors"
	"fmt"
)

// ErrNotFound — the referenced entity does not exist. A normal outcome of
// lookups, mapped to 404 at the HTTP boundary.
var ErrNotFound = errors.New("not found")

// ErrDuplicateName — plant name uniqueness violated at the persistence
// boundary.
var ErrDuplicateName = errors.New("plant name already exists")

// ValidationError — malformed or missing input. Mapped to 400 and never
// retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
