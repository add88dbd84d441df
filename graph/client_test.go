package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-rag/sdk/apierr"
	"github.com/aegis-rag/sdk/transport"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tr, err := transport.New(transport.Options{BaseURL: server.URL})
	require.NoError(t, err)

	return NewClient(tr)
}

func TestClient_Data(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/graph/data", r.URL.Path)
		w.Write([]byte(`{
			"nodes": [
				{"id": "n1", "label": "Ada", "type": "Person", "degree": 2, "community": 0},
				{"id": "n2", "label": "Engine", "type": "Concept", "degree": 1}
			],
			"links": [
				{"source": "n1", "target": "n2", "type": "INVENTED"}
			]
		}`))
	})

	client := newTestClient(t, handler)

	data, err := client.Data(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Nodes, 2)
	assert.Len(t, data.Links, 1)
	require.NotNil(t, data.Nodes[0].Community)
	assert.Equal(t, 0, *data.Nodes[0].Community)
	assert.Nil(t, data.Nodes[1].Community)
}

func TestClient_Data_RejectsNodesWithoutID(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"nodes": [{"label": "anonymous"}], "links": []}`))
	})

	client := newTestClient(t, handler)

	_, err := client.Data(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrMalformedResponse)
}

func TestClient_Search(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/graph/search", r.URL.Path)
		assert.Equal(t, "lovelace", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Write([]byte(`{"nodes": [{"id": "n1", "label": "Ada Lovelace", "type": "Person"}]}`))
	})

	client := newTestClient(t, handler)

	nodes, err := client.Search(context.Background(), "lovelace", 10)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Ada Lovelace", nodes[0].Label)
}

func TestClient_Search_RequiresQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty query")
	}))

	_, err := client.Search(context.Background(), "", 10)
	require.Error(t, err)

	var structured *apierr.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, apierr.KindValidation, structured.Kind)
}

func TestClient_Search_DefaultLimit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"nodes": []}`))
	})

	client := newTestClient(t, handler)

	_, err := client.Search(context.Background(), "anything", 0)
	require.NoError(t, err)
}

func TestClient_Stats(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"node_count": 120, "link_count": 340, "community_count": 7, "document_count": 15}`))
	})

	client := newTestClient(t, handler)

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, stats.NodeCount)
	assert.Equal(t, 340, stats.LinkCount)
	assert.Equal(t, 7, stats.CommunityCount)
	assert.Equal(t, 15, stats.DocumentCount)
}

func TestClient_Stats_RejectsNegativeCounts(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"node_count": -1, "link_count": 0, "community_count": 0}`))
	})

	client := newTestClient(t, handler)

	_, err := client.Stats(context.Background())
	assert.ErrorIs(t, err, apierr.ErrMalformedResponse)
}
