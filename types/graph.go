package types

import (
	"encoding/json"
	"time"
)

// GraphData is the canonical force-graph representation returned by the
// AEGIS backend: a flat node list plus the links between them. It is owned
// transiently by whichever client fetched it; the SDK never merges graph
// payloads incrementally, each response replaces the previous one wholesale.
type GraphData struct {
	// Nodes contains every entity currently visible in the graph.
	Nodes []Node `json:"nodes"`

	// Links contains the relationships between nodes, referencing them by ID.
	Links []Link `json:"links"`
}

// Node is a single entity in the knowledge graph.
type Node struct {
	// ID is the unique node identifier.
	ID string `json:"id"`

	// Label is the human-readable display name.
	Label string `json:"label"`

	// Type is the entity type (e.g., "Person", "Document", "Concept").
	Type string `json:"type"`

	// Degree is the number of links attached to this node.
	Degree int `json:"degree"`

	// Community is the community the node was assigned to by the backend's
	// community detection, if any.
	Community *int `json:"community,omitempty"`

	// Metadata carries arbitrary backend-provided attributes. The
	// "created_at" key, when present, drives temporal date-range derivation.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Link is a relationship between two nodes, referencing them by ID.
type Link struct {
	// Source is the ID of the originating node.
	Source string `json:"source"`

	// Target is the ID of the destination node.
	Target string `json:"target"`

	// Type is the relationship type (e.g., "MENTIONS", "RELATES_TO").
	Type string `json:"type,omitempty"`

	// Weight is the relationship strength assigned by the backend.
	Weight float64 `json:"weight,omitempty"`
}

// CreatedAt returns the node's creation timestamp parsed from the
// "created_at" metadata key. The backend is inconsistent about the encoding,
// so RFC 3339 strings, date-only strings, and epoch-millisecond numbers are
// all accepted. The second return value reports whether a timestamp was
// present and parseable.
func (n Node) CreatedAt() (time.Time, bool) {
	if n.Metadata == nil {
		return time.Time{}, false
	}

	raw, ok := n.Metadata["created_at"]
	if !ok {
		return time.Time{}, false
	}

	switch v := raw.(type) {
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	case float64:
		// JSON numbers decode as float64; treat as epoch milliseconds.
		return time.UnixMilli(int64(v)), true
	case int64:
		return time.UnixMilli(v), true
	case json.Number:
		if ms, err := v.Int64(); err == nil {
			return time.UnixMilli(ms), true
		}
	case time.Time:
		return v, true
	}

	return time.Time{}, false
}

// IsEmpty returns true if the graph has no nodes.
func (g GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// NodeByID returns the node with the given ID, if present.
func (g GraphData) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
