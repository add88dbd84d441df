// Package graph provides the knowledge-graph API client plus the
// client-side graph utilities the AEGIS UI layer relies on: node search,
// composable display filters, and community groupings derived from the
// backend's community detection.
//
// The backend computes the graph (entity extraction, community detection,
// degrees); this package only fetches and reshapes it for consumers.
package graph
