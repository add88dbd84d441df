// Package temporal implements "time travel" point-in-time queries against
// the AEGIS knowledge graph: retrieving the state of the graph as it existed
// at a specified past timestamp.
//
// The package has two layers. Client is the thin API wrapper around
// POST /api/v1/temporal/point-in-time, with response validation and an
// optional snapshot cache. Session is the stateful layer on top: it models
// the staged/committed date pair (the date a user is picking versus the date
// a query was actually run against) as explicit state, guards against
// out-of-order responses with a request generation counter, and exports
// loaded snapshots as JSON files.
//
// A Snapshot is immutable once received and is replaced wholesale on each
// successful query; there is no incremental merging.
package temporal
