package services

import (
	"errors"
	"fmt"
)

// ValidationError reports a field that failed write-time validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var (
	// ErrNotFound signals a well-formed identifier with no matching entity.
	ErrNotFound = errors.New("not found")

	// ErrMalformedID signals an identifier that failed the syntactic
	// pre-check. Returned before any store access.
	ErrMalformedID = errors.New("malformed identifier")
)
