package types

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. Recoverable degradations (extractor fallback,
// generator template fallback) are flagged on results rather than raised;
// only terminal failures surface as errors.
var (
	// ErrValidationFailed is returned when generation was rejected twice,
	// template fallback included. Rendered as "could not build a query".
	ErrValidationFailed = errors.New("could not build a valid query for this question")
)

// StoreErrorKind classifies graph store failures.
type StoreErrorKind string

const (
	// StoreErrorConnection covers unreachable or refused connections.
	StoreErrorConnection StoreErrorKind = "connection"
	// StoreErrorSyntax covers queries the store rejected as malformed.
	StoreErrorSyntax StoreErrorKind = "syntax"
	// StoreErrorTimeout covers deadline-exceeded executions.
	StoreErrorTimeout StoreErrorKind = "timeout"
)

// StoreError is a typed failure from the graph store boundary. The client
// performs no retries; the pipeline owns the retry policy.
type StoreError struct {
	Kind StoreErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("graph store %s error", e.Kind)
	}
	return fmt.Sprintf("graph store %s error: %v", e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is matches any *StoreError regardless of kind, so callers can write
// errors.Is(err, &StoreError{}).
func (e *StoreError) Is(target error) bool {
	_, ok := target.(*StoreError)
	return ok
}

// Retryable reports whether the failure is worth retrying with the same
// query. Syntax errors are not: re-running identical text cannot succeed.
func (e *StoreError) Retryable() bool {
	return e.Kind == StoreErrorConnection || e.Kind == StoreErrorTimeout
}

// NewStoreError wraps err with a store failure classification.
func NewStoreError(kind StoreErrorKind, err error) *StoreError {
	return &StoreError{Kind: kind, Err: err}
}

// ValidationError reports the structural checks a generated query failed.
type ValidationError struct {
	Missing []string // required return fields absent from the query
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("query validation failed: missing required return fields %v", e.Missing)
	}
	return fmt.Sprintf("query validation failed: %s", e.Reason)
}

// Is matches any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}
