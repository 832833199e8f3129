package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("invalid request parameter")
	ErrNoData     = errors.New("no data")
	ErrConnection = errors.New("store is not connected")
	ErrPrepare    = errors.New("statement could not be prepared")
	ErrExecution  = errors.New("statement execution failed")
)

// ValidationError reports a malformed, missing or unrecognised parameter.
type ValidationError struct {
	Param  string
	Value  string
	Reason string
}

func NewValidationError(param, value, reason string) *ValidationError {
	return &ValidationError{Param: param, Value: value, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("%s=%q: %s", e.Param, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// QueryError wraps a store failure. Statement is kept for logs only and is
// not part of Error().
type QueryError struct {
	Kind      error
	Query     string
	Statement string
	Err       error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Query, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Query, e.Kind, e.Err)
}

func (e *QueryError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NoDataError is returned when a single-row aggregate has nothing to report.
type NoDataError struct {
	Query string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("%s: %v", e.Query, ErrNoData)
}

func (e *NoDataError) Is(target error) bool {
	return target == ErrNoData
}
