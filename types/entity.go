package types

import "time"

// Entity is a knowledge-graph entity as returned by temporal point-in-time
// queries. Unlike Node, which is shaped for force-graph rendering, Entity
// carries the full extracted record.
type Entity struct {
	// ID is the unique entity identifier.
	ID string `json:"id"`

	// Name is the canonical entity name.
	Name string `json:"name"`

	// Type is the entity type assigned during extraction.
	Type string `json:"type"`

	// Description is the backend-generated entity summary, if any.
	Description string `json:"description,omitempty"`

	// CreatedAt is when the entity first entered the graph.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the entity was last modified, if tracked.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Properties carries arbitrary extracted attributes.
	Properties map[string]any `json:"properties,omitempty"`
}
