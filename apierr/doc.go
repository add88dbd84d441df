// Package apierr defines the structured error type shared by every AEGIS SDK
// client. Errors carry the failing operation, an error kind for programmatic
// matching, the underlying cause, and optional debugging context.
//
// The package is a leaf dependency so that service packages (temporal, graph,
// chat, health) and the transport layer can share one error vocabulary
// without importing the root sdk package.
package apierr
