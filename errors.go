package sdk

import (
	"io"
	"log/slog"

	"github.com/aegis-rag/sdk/apierr"
)

// SDKError is the structured error type returned by every SDK operation.
// It is an alias for apierr.Error so callers can match errors without
// importing the apierr package directly.
type SDKError = apierr.Error

// Sentinel errors re-exported from apierr for convenient errors.Is checks.
var (
	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = apierr.ErrInvalidConfig

	// ErrMalformedResponse indicates the backend returned a response that
	// failed validation and was not committed to any SDK state.
	ErrMalformedResponse = apierr.ErrMalformedResponse

	// ErrBackendUnavailable indicates the backend could not be reached or the
	// circuit breaker is open.
	ErrBackendUnavailable = apierr.ErrBackendUnavailable

	// ErrNotFound indicates the requested resource does not exist on the backend.
	ErrNotFound = apierr.ErrNotFound
)

// Error kinds re-exported from apierr.
const (
	KindNotFound          = apierr.KindNotFound
	KindValidation        = apierr.KindValidation
	KindNetwork           = apierr.KindNetwork
	KindBackend           = apierr.KindBackend
	KindMalformedResponse = apierr.KindMalformedResponse
	KindConfiguration     = apierr.KindConfiguration
	KindTimeout           = apierr.KindTimeout
	KindInternal          = apierr.KindInternal
)

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g.,
// "response body", "event stream"). If logger is nil, slog.Default() is used.
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
