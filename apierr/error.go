package apierr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common SDK error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMalformedResponse indicates the backend returned a response that
	// failed validation and was not committed to any SDK state.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrBackendUnavailable indicates the backend could not be reached or the
	// circuit breaker is open.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrNotFound indicates the requested resource does not exist on the backend.
	ErrNotFound = errors.New("resource not found")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a resource was not found.
	KindNotFound = "not_found"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindNetwork represents errors related to network operations.
	KindNetwork = "network"

	// KindBackend represents non-2xx responses from the AEGIS backend,
	// carrying the server's human-readable message.
	KindBackend = "backend"

	// KindMalformedResponse represents 2xx responses whose body could not be
	// decoded or failed schema validation.
	KindMalformedResponse = "malformed_response"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindTimeout represents errors related to operation timeouts.
	KindTimeout = "timeout"

	// KindInternal represents internal SDK errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of
// error.
//
// Error implements the error interface and supports error unwrapping, making
// it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &apierr.Error{
//		Op:   "Temporal.PointInTime",
//		Kind: apierr.KindMalformedResponse,
//		Err:  apierr.ErrMalformedResponse,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "Temporal.PointInTime", "Graph.Search").
	Op string

	// Kind categorizes the error (e.g., KindNetwork, KindMalformedResponse).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include request dates, HTTP status codes, or other debugging
	// information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("aegis: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("aegis: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("aegis: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on the
// underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is an Error with matching Kind
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new Error with the provided context added.
// This is useful for adding debugging information to errors.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NotFound creates a new Error with KindNotFound.
func NotFound(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// Validation creates a new Error with KindValidation.
func Validation(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// Network creates a new Error with KindNetwork.
func Network(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindNetwork,
		Err:  err,
	}
}

// Backend creates a new Error with KindBackend. The status code and the
// server's message are recorded in the error context so they can be surfaced
// verbatim to users.
func Backend(op string, status int, message string) *Error {
	return &Error{
		Op:   op,
		Kind: KindBackend,
		Err:  fmt.Errorf("%w: %s", ErrBackendUnavailable, message),
		Context: map[string]any{
			"status":  status,
			"message": message,
		},
	}
}

// MalformedResponse creates a new Error with KindMalformedResponse.
func MalformedResponse(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindMalformedResponse,
		Err:  fmt.Errorf("%w: %w", ErrMalformedResponse, err),
	}
}

// Configuration creates a new Error with KindConfiguration.
func Configuration(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// Timeout creates a new Error with KindTimeout.
func Timeout(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindTimeout,
		Err:  err,
	}
}

// Internal creates a new Error with KindInternal.
func Internal(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}
