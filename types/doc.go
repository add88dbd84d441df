// Package types defines the shared data model for the AEGIS RAG SDK: the
// force-graph representation (nodes and links), knowledge-graph entities
// returned by temporal queries, and health status reporting.
//
// These types mirror the wire format of the AEGIS backend REST API and are
// consumed by every service client in the SDK.
package types
