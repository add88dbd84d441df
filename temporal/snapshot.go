package temporal

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aegis-rag/sdk/types"
)

// Snapshot is the immutable result of one point-in-time query: the entities
// that existed at the as-of date, the derived change statistics, and an
// optional force-graph payload for rendering.
type Snapshot struct {
	// Entities are the entities that existed in the graph at AsOf.
	Entities []types.Entity `json:"entities"`

	// AsOf is the timestamp the backend evaluated the query against.
	AsOf time.Time `json:"as_of" validate:"required"`

	// TotalCount is the number of entities that existed at AsOf. This can
	// exceed len(Entities) when the backend truncates the entity list.
	TotalCount int `json:"total_count" validate:"gte=0"`

	// ChangedCount is the number of entities modified since AsOf.
	ChangedCount int `json:"changed_count" validate:"gte=0"`

	// NewCount is the number of entities created since AsOf.
	NewCount int `json:"new_count" validate:"gte=0"`

	// GraphData is the renderable graph at AsOf, when the backend includes it.
	GraphData *types.GraphData `json:"graphData,omitempty"`
}

// snapshotValidator performs struct-tag validation of decoded snapshots.
// A single instance is safe for concurrent use.
var snapshotValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that a decoded snapshot is structurally sound before it is
// trusted. The backend response shape is an implicit contract; rather than
// surfacing zero values for fields the server forgot, validation failures are
// reported so callers receive a KindMalformedResponse error.
func (s *Snapshot) Validate() error {
	if s == nil {
		return errors.New("snapshot is nil")
	}

	if err := snapshotValidator.Struct(s); err != nil {
		return fmt.Errorf("snapshot failed validation: %w", err)
	}

	if s.TotalCount < len(s.Entities) {
		return fmt.Errorf("total_count %d is less than the %d entities returned", s.TotalCount, len(s.Entities))
	}

	for i, e := range s.Entities {
		if e.ID == "" {
			return fmt.Errorf("entity at index %d has no id", i)
		}
	}

	if s.GraphData != nil {
		for i, n := range s.GraphData.Nodes {
			if n.ID == "" {
				return fmt.Errorf("graph node at index %d has no id", i)
			}
		}
	}

	return nil
}

// EntityCount returns the number of entities present in the snapshot payload.
func (s *Snapshot) EntityCount() int {
	if s == nil {
		return 0
	}
	return len(s.Entities)
}
