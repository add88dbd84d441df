package graph

import (
	"testing"

	"github.com/aegis-rag/sdk/types"
)

func communityGraph() types.GraphData {
	return types.GraphData{
		Nodes: []types.Node{
			{ID: "a", Degree: 1, Community: intPtr(1)},
			{ID: "b", Degree: 2, Community: intPtr(0)},
			{ID: "c", Degree: 2, Community: intPtr(0)},
			{ID: "d", Degree: 1, Community: intPtr(0)},
			{ID: "e", Degree: 1, Community: intPtr(1)},
			{ID: "f", Degree: 3}, // unassigned
		},
	}
}

func TestCommunities_GroupsAndSorts(t *testing.T) {
	communities := Communities(communityGraph())

	if len(communities) != 2 {
		t.Fatalf("expected 2 communities, got %d", len(communities))
	}

	// Sorted by size descending: community 0 (3 nodes) before 1 (2 nodes).
	if communities[0].ID != 0 || communities[0].Size() != 3 {
		t.Errorf("expected community 0 with 3 members first, got %+v", communities[0])
	}
	if communities[1].ID != 1 || communities[1].Size() != 2 {
		t.Errorf("expected community 1 with 2 members second, got %+v", communities[1])
	}
}

func TestCommunities_TieBreakByID(t *testing.T) {
	g := types.GraphData{
		Nodes: []types.Node{
			{ID: "a", Community: intPtr(5)},
			{ID: "b", Community: intPtr(2)},
		},
	}

	communities := Communities(g)
	if len(communities) != 2 || communities[0].ID != 2 {
		t.Errorf("expected equal-size communities ordered by id, got %+v", communities)
	}
}

func TestCommunities_EmptyGraph(t *testing.T) {
	if got := Communities(types.GraphData{}); len(got) != 0 {
		t.Errorf("expected no communities, got %d", len(got))
	}
}

func TestMembers(t *testing.T) {
	ids := Members(communityGraph(), 0)

	if len(ids) != 3 {
		t.Fatalf("expected 3 members, got %d", len(ids))
	}

	want := map[string]bool{"b": true, "c": true, "d": true}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected member %q", id)
		}
	}
}

func TestMembers_UnknownCommunity(t *testing.T) {
	if got := Members(communityGraph(), 42); len(got) != 0 {
		t.Errorf("expected no members, got %v", got)
	}
}

func TestDegreeDistribution(t *testing.T) {
	dist := DegreeDistribution(communityGraph())

	if dist[1] != 3 {
		t.Errorf("expected 3 nodes of degree 1, got %d", dist[1])
	}
	if dist[2] != 2 {
		t.Errorf("expected 2 nodes of degree 2, got %d", dist[2])
	}
	if dist[3] != 1 {
		t.Errorf("expected 1 node of degree 3, got %d", dist[3])
	}
}
