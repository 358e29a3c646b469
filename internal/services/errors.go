package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrUpstream    = errors.New("upstream failure")
	ErrUnavailable = errors.New("service unavailable")
	ErrStorage     = errors.New("storage failure")
	ErrConflict    = errors.New("conflict")
)

// ValidationError names the offending field. errors.Is(err, ErrValidation) matches it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
