package graph

import (
	"strings"

	"github.com/aegis-rag/sdk/types"
)

// Filter is a composable, client-side predicate over graph nodes. Filters
// narrow an already-fetched graph for display; they never trigger a backend
// call. The zero value matches every node.
type Filter struct {
	// NodeTypes keeps only nodes whose type is in the set. Empty means all types.
	NodeTypes []string

	// Communities keeps only nodes assigned to one of these communities.
	// Empty means all communities; nodes without a community assignment are
	// excluded when the set is non-empty.
	Communities []int

	// MinDegree keeps only nodes with at least this many links.
	MinDegree int

	// LabelContains keeps only nodes whose label contains the substring,
	// case-insensitively.
	LabelContains string
}

// NewFilter creates an empty filter that matches every node.
func NewFilter() Filter {
	return Filter{}
}

// WithNodeTypes returns a copy of the filter restricted to the given types.
func (f Filter) WithNodeTypes(nodeTypes ...string) Filter {
	f.NodeTypes = nodeTypes
	return f
}

// WithCommunities returns a copy of the filter restricted to the given communities.
func (f Filter) WithCommunities(communities ...int) Filter {
	f.Communities = communities
	return f
}

// WithMinDegree returns a copy of the filter with a minimum degree bound.
func (f Filter) WithMinDegree(minDegree int) Filter {
	f.MinDegree = minDegree
	return f
}

// WithLabelContains returns a copy of the filter with a label substring match.
func (f Filter) WithLabelContains(substring string) Filter {
	f.LabelContains = substring
	return f
}

// Matches reports whether a node passes the filter.
func (f Filter) Matches(n types.Node) bool {
	if len(f.NodeTypes) > 0 && !containsString(f.NodeTypes, n.Type) {
		return false
	}

	if len(f.Communities) > 0 {
		if n.Community == nil || !containsInt(f.Communities, *n.Community) {
			return false
		}
	}

	if n.Degree < f.MinDegree {
		return false
	}

	if f.LabelContains != "" &&
		!strings.Contains(strings.ToLower(n.Label), strings.ToLower(f.LabelContains)) {
		return false
	}

	return true
}

// Apply returns a new graph containing only matching nodes and the links
// whose both endpoints survive. Node degrees are left as the backend
// computed them; they describe the full graph, not the filtered view.
func (f Filter) Apply(g types.GraphData) types.GraphData {
	kept := make(map[string]bool, len(g.Nodes))
	filtered := types.GraphData{}

	for _, n := range g.Nodes {
		if f.Matches(n) {
			filtered.Nodes = append(filtered.Nodes, n)
			kept[n.ID] = true
		}
	}

	for _, l := range g.Links {
		if kept[l.Source] && kept[l.Target] {
			filtered.Links = append(filtered.Links, l)
		}
	}

	return filtered
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
