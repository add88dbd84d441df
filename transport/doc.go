// Package transport implements the HTTP layer shared by every AEGIS SDK
// service client. It owns request construction, JSON encoding and decoding,
// the mapping from HTTP failures to structured errors, OpenTelemetry spans,
// and optional circuit breaking.
//
// Service clients never touch net/http directly; they describe requests and
// let the transport execute them. Non-2xx responses become KindBackend errors
// carrying the server's human-readable message, undecodable 2xx bodies become
// KindMalformedResponse errors, and connection failures become KindNetwork or
// KindTimeout errors.
package transport
