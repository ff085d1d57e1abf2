package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrNodeNotFound        = errors.New("node not found")
	ErrNotFoundOrForbidden = errors.New("not found")
	ErrAlreadyCompleted    = errors.New("session already completed")
	ErrDuplicateEntity     = errors.New("duplicate entity")
	ErrPrerequisite        = errors.New("prerequisite missing")
	ErrUnauthorized        = errors.New("invalid credentials")
)

// Reasons behind a NotFoundOrForbiddenError. Only ever logged.
const (
	ReasonMissing  = "missing"
	ReasonNotOwner = "not_owner"
)

// NotFoundOrForbiddenError keeps the real cause for logs while matching
// ErrNotFoundOrForbidden for callers.
type NotFoundOrForbiddenError struct {
	Entity string
	Reason string
}

func (e *NotFoundOrForbiddenError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundOrForbiddenError) Is(target error) bool {
	return target == ErrNotFoundOrForbidden
}

func NotFound(entity string) error {
	return &NotFoundOrForbiddenError{Entity: entity, Reason: ReasonMissing}
}

func Forbidden(entity string) error {
	return &NotFoundOrForbiddenError{Entity: entity, Reason: ReasonNotOwner}
}

// Validationf builds an error matching ErrValidation with a caller-facing message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Prerequisitef builds an error matching ErrPrerequisite.
func Prerequisitef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPrerequisite, fmt.Sprintf(format, args...))
}
