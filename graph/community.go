package graph

import (
	"sort"

	"github.com/aegis-rag/sdk/types"
)

// Community is one community detected by the backend, with the nodes
// assigned to it.
type Community struct {
	// ID is the backend-assigned community identifier.
	ID int

	// Nodes are the member nodes, in graph order.
	Nodes []types.Node
}

// Size returns the number of member nodes.
func (c Community) Size() int {
	return len(c.Nodes)
}

// Communities groups a graph's nodes by their community assignment,
// returning communities sorted by size descending (ties broken by ID).
// Nodes without a community assignment are omitted.
func Communities(g types.GraphData) []Community {
	byID := make(map[int][]types.Node)
	for _, n := range g.Nodes {
		if n.Community == nil {
			continue
		}
		byID[*n.Community] = append(byID[*n.Community], n)
	}

	communities := make([]Community, 0, len(byID))
	for id, nodes := range byID {
		communities = append(communities, Community{ID: id, Nodes: nodes})
	}

	sort.Slice(communities, func(i, j int) bool {
		if communities[i].Size() != communities[j].Size() {
			return communities[i].Size() > communities[j].Size()
		}
		return communities[i].ID < communities[j].ID
	})

	return communities
}

// Members returns the IDs of every node in the community with the given ID,
// for highlighting a community in a rendered graph.
func Members(g types.GraphData, communityID int) []string {
	var ids []string
	for _, n := range g.Nodes {
		if n.Community != nil && *n.Community == communityID {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// DegreeDistribution returns a histogram of node degrees, keyed by degree.
func DegreeDistribution(g types.GraphData) map[int]int {
	dist := make(map[int]int)
	for _, n := range g.Nodes {
		dist[n.Degree]++
	}
	return dist
}
