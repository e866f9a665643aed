package providers

import (
	"errors"
	"fmt"

	"github.com/waveforge/generator-api/internal/models"
)

// ErrorKind classifies a provider failure so callers can decide between
// retrying, escalating, or resubmitting.
type ErrorKind string

const (
	// KindInvalidRequest means the provider rejected the request as malformed.
	// Never retried; the caller must fix the input and resubmit.
	KindInvalidRequest ErrorKind = "invalid_request"

	// KindUnavailable means a network failure or 5xx from the provider.
	// Retried up to the poller's transient sub-budget before escalating.
	KindUnavailable ErrorKind = "provider_unavailable"

	// KindNotFound means the provider does not recognize the task ID.
	// Escalated immediately.
	KindNotFound ErrorKind = "not_found"

	// KindMapping means the response shape did not match expectations for a
	// required field. The partially mapped record is still persisted.
	KindMapping ErrorKind = "mapping_error"
)

// Error is the error type returned from provider adapters
type Error struct {
	Kind     ErrorKind
	Provider models.Provider
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Provider, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable returns true if the failure is transient
func (e *Error) Retryable() bool {
	return e.Kind == KindUnavailable
}

// NewInvalidRequest creates a non-retryable bad-input error
func NewInvalidRequest(provider models.Provider, message string, cause error) *Error {
	return &Error{Kind: KindInvalidRequest, Provider: provider, Message: message, Cause: cause}
}

// NewUnavailable creates a retryable transient error
func NewUnavailable(provider models.Provider, message string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Provider: provider, Message: message, Cause: cause}
}

// NewNotFound creates an unknown-task error
func NewNotFound(provider models.Provider, taskID string) *Error {
	return &Error{Kind: KindNotFound, Provider: provider, Message: fmt.Sprintf("task %s not found", taskID)}
}

// NewMappingError creates a response-shape error
func NewMappingError(provider models.Provider, message string, cause error) *Error {
	return &Error{Kind: KindMapping, Provider: provider, Message: message, Cause: cause}
}

// KindOf extracts the error kind from any error in the chain. Errors that
// did not originate from an adapter are treated as transient so the poller's
// retry budget applies to unexpected failures too.
func KindOf(err error) ErrorKind {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr.Kind
	}
	return KindUnavailable
}

// IsRetryable returns true if the error should consume the transient retry
// sub-budget rather than escalate immediately
func IsRetryable(err error) bool {
	return KindOf(err) == KindUnavailable
}
