package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionRequired    = errors.New("authenticated session required")
	ErrKeyNotFound        = errors.New("storage key not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrConflict           = errors.New("resource already exists")
	ErrOperationRejected  = errors.New("operation rejected by remote service")
	ErrStaleResponse      = errors.New("response superseded by a newer request")
	ErrInvalidRetryPolicy = errors.New("invalid retry policy")
	ErrNothingToUpdate    = errors.New("no changed fields to update")
	ErrInvalidInput       = errors.New("invalid input")
)

// TransportError is a network failure or a non-2xx reply. Read paths may
// retry it.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("transport status %d: %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return "transport: " + e.Err.Error()
	default:
		return fmt.Sprintf("transport status %d", e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError carries the messages of a non-empty GraphQL errors array.
// It is never retried.
type ApplicationError struct {
	Messages []string
}

func (e *ApplicationError) Error() string {
	if len(e.Messages) == 0 {
		return "remote service reported an error"
	}
	return strings.Join(e.Messages, ", ")
}

// RejectedError is a well-formed reply whose status field is not the one
// the operation expects.
type RejectedError struct {
	Operation string
	Result    OperationResult
}

func (e *RejectedError) Error() string {
	message := e.Result.Message
	if message == "" {
		message = e.Result.Error
	}
	if message == "" {
		return fmt.Sprintf("%s: status %d", e.Operation, e.Result.Status)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Operation, message, e.Result.Status)
}

func (e *RejectedError) Unwrap() error {
	return ErrOperationRejected
}

// IsRetryable reports whether err is worth another attempt on a read path.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// A per-request timeout surfaces as a TransportError wrapping
	// DeadlineExceeded; only the caller's own context ending stops retries.
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return false
	}
	if errors.Is(err, ErrSessionRequired) || errors.Is(err, ErrStaleResponse) || errors.Is(err, ErrInvalidInput) {
		return false
	}

	return true
}
