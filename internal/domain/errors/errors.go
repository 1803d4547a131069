package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyProcessing = errors.New("an order is already being processed")
	ErrIncompleteCart    = errors.New("cart must contain customer and payment information")
	ErrNotFound          = errors.New("not found")
)

// ValidationError reports the first malformed field of an inbound request.
// It is returned to the caller and never mutates any state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidation constructs a ValidationError for a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PaymentRejectedError carries the gateway's decline message. No order is
// created when it is returned.
type PaymentRejectedError struct {
	Message string
}

func (e *PaymentRejectedError) Error() string {
	return fmt.Sprintf("payment rejected: %s", e.Message)
}

// PersistenceError wraps a failure to durably commit an order after payment
// was already captured. It must be surfaced loudly, never retried silently.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order persistence failed after captured payment: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
