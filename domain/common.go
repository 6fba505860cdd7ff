package domain

import (
	"errors"
	"fmt"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageNoAction             = "No action specified"
	MessageUnknownAction        = "Unknown action"
	MessagePong                 = "ReimbursementTracker API is working!"

	ErrValidation           = errors.New("validation error")
	ErrDuplicateDetected    = errors.New("duplicate claim detected")
	ErrDuplicateEntry       = errors.New("duplicate entry")
	ErrNotFound             = errors.New("not found")
	ErrNotInitialized       = errors.New("not initialized")
	ErrConfigurationMissing = errors.New("configuration missing")
)

// Error carries a caller-facing message and the kind it belongs to.
// errors.Is(err, ErrValidation) and friends match on Kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NewError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return NewError(ErrValidation, format, args...)
}

func NotFound(format string, args ...any) error {
	return NewError(ErrNotFound, format, args...)
}
