package graph

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/aegis-rag/sdk/apierr"
	"github.com/aegis-rag/sdk/transport"
	"github.com/aegis-rag/sdk/types"
)

// Backend endpoints served by the graph API.
const (
	dataPath   = "/api/v1/graph/data"
	searchPath = "/api/v1/graph/search"
	statsPath  = "/api/v1/graph/stats"
)

// DefaultSearchLimit caps search results when the caller does not specify a limit.
const DefaultSearchLimit = 25

// Stats summarizes the graph as reported by the backend.
type Stats struct {
	// NodeCount is the total number of nodes in the graph.
	NodeCount int `json:"node_count"`

	// LinkCount is the total number of relationships.
	LinkCount int `json:"link_count"`

	// CommunityCount is the number of detected communities.
	CommunityCount int `json:"community_count"`

	// DocumentCount is the number of ingested source documents.
	DocumentCount int `json:"document_count,omitempty"`
}

// Client is the API client for the knowledge graph.
type Client struct {
	transport *transport.Transport
}

// NewClient creates a graph client over the given transport.
func NewClient(t *transport.Transport) *Client {
	return &Client{transport: t}
}

// Data fetches the full force-graph representation. Each call replaces any
// previously fetched graph; the SDK never merges graph payloads.
func (c *Client) Data(ctx context.Context) (types.GraphData, error) {
	const op = "Graph.Data"

	var data types.GraphData
	if err := c.transport.GetJSON(ctx, op, dataPath, &data); err != nil {
		return types.GraphData{}, err
	}

	for i, n := range data.Nodes {
		if n.ID == "" {
			return types.GraphData{}, apierr.MalformedResponse(op,
				fmt.Errorf("graph node at index %d has no id", i))
		}
	}

	return data, nil
}

// Search finds nodes matching the query string. A non-positive limit uses
// DefaultSearchLimit.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]types.Node, error) {
	const op = "Graph.Search"

	if query == "" {
		return nil, apierr.Validation(op, fmt.Errorf("search query is required"))
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var result struct {
		Nodes []types.Node `json:"nodes"`
	}
	if err := c.transport.GetJSON(ctx, op, searchPath+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	return result.Nodes, nil
}

// Stats fetches the backend's graph summary statistics.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	const op = "Graph.Stats"

	var stats Stats
	if err := c.transport.GetJSON(ctx, op, statsPath, &stats); err != nil {
		return Stats{}, err
	}

	if stats.NodeCount < 0 || stats.LinkCount < 0 || stats.CommunityCount < 0 {
		return Stats{}, apierr.MalformedResponse(op, fmt.Errorf("negative counts in stats response"))
	}

	return stats, nil
}
