package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates that an operation is not allowed from the entity's current state.
var ErrInvalidState = errors.New("invalid state transition")

// ErrConflict indicates an optimistic concurrency mismatch. Callers should reload and retry.
var ErrConflict = errors.New("concurrency conflict")

// ErrInternal indicates an unexpected failure in the store or in the core itself.
var ErrInternal = errors.New("internal error")

// Stable error kind identifiers. Collaborators translate these into localized messages.
const (
	KindValidation   = "VALIDATION_ERROR"
	KindNotFound     = "NOT_FOUND"
	KindInvalidState = "INVALID_STATE_TRANSITION"
	KindConflict     = "CONCURRENCY_CONFLICT"
	KindDuplicate    = "DUPLICATE"
	KindInternal     = "INTERNAL"
)

// AppError wraps a lower level error with a status-like code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Message)
}

func (e ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, format string, args ...any) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidationErrors collects every violation found in one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Field + ": " + ve.Message
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(msgs, "; "))
}

func (e ValidationErrors) Unwrap() error {
	return ErrValidation
}

// OrNil returns nil when no violations were collected.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// StateTransitionError names the current state and the transition that was refused.
type StateTransitionError struct {
	Entity    string
	ID        string
	From      string
	Attempted string
	Reason    string
}

// NewStateTransitionError creates a StateTransitionError.
func NewStateTransitionError(entity, id, from, attempted string) *StateTransitionError {
	return &StateTransitionError{Entity: entity, ID: id, From: from, Attempted: attempted}
}

// WithReason attaches a short explanation, e.g. "reconciliation is not balanced".
func (e *StateTransitionError) WithReason(reason string) *StateTransitionError {
	e.Reason = reason
	return e
}

func (e *StateTransitionError) Error() string {
	msg := fmt.Sprintf("%s: cannot %s %s %s from state %s", ErrInvalidState.Error(), e.Attempted, e.Entity, e.ID, e.From)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *StateTransitionError) Unwrap() error {
	return ErrInvalidState
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsInvalidState reports whether err is a refused state transition.
func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }

// IsConflict reports whether err is an optimistic concurrency conflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// Kind maps err to its stable identifier.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	default:
		return KindInternal
	}
}
