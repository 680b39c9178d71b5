package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across repositories, services and handlers.
// Handlers translate these into HTTP statuses in middlewares.WriteError.
var (
	ErrNotFound               = errors.New("record not found")
	ErrDuplicateEntity        = errors.New("entity already exists")
	ErrSlotUnavailable        = errors.New("appointment time slot is already booked")
	ErrInvalidStateTransition = errors.New("invalid appointment state transition")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrAccountLocked          = errors.New("account is temporarily locked due to too many failed login attempts")
	ErrAccountInactive        = errors.New("account is not active")
	ErrForbidden              = errors.New("insufficient permissions")
	ErrUnauthorized           = errors.New("authentication required")
)

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// DependencyError wraps a failure of a backing service (database, redis, SMTP).
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
