// Package sdk provides the official Go client SDK for the AEGIS RAG platform.
//
// The SDK wraps the AEGIS backend REST and SSE APIs with typed clients for
// chat, knowledge-graph access, backend health, and temporal "time travel"
// point-in-time queries. It owns the request lifecycle that callers would
// otherwise hand-roll: structured errors, response validation, tracing,
// optional snapshot caching, and circuit breaking.
//
// # Core Concepts
//
//   - Client: the entry point aggregating per-service clients
//   - Temporal sessions: staged/committed date state for point-in-time queries
//   - Snapshots: immutable results of one point-in-time query
//   - Graph data: the canonical force-graph representation (nodes + links)
//
// # Getting Started
//
// Create a client and query the graph as it existed at a past date:
//
//	import "github.com/aegis-rag/sdk"
//
//	client, err := sdk.NewClient(
//		sdk.WithBaseURL("https://aegis.example.com"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	session := client.Temporal().NewSession()
//	session.Jump(temporal.WeekAgo)
//	if err := session.Apply(ctx); err != nil {
//		log.Fatal(err)
//	}
//	snapshot := session.Snapshot()
//
// # Error Handling
//
// All SDK operations return structured errors that can be inspected with
// errors.Is and errors.As:
//
//	if errors.Is(err, sdk.ErrMalformedResponse) {
//		// the backend returned a response the SDK refused to trust
//	}
//
// # Observability
//
// The SDK integrates with OpenTelemetry for distributed tracing. Pass a
// tracer with sdk.WithTracer to record one span per backend request.
package sdk
