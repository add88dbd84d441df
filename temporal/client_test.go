package temporal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-rag/sdk/apierr"
	"github.com/aegis-rag/sdk/transport"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...ClientOption) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tr, err := transport.New(transport.Options{BaseURL: server.URL})
	require.NoError(t, err)

	return NewClient(tr, opts...), server
}

func snapshotHandler(requests *atomic.Int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}

		var req struct {
			AsOf string `json:"as_of"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"detail": "bad request"}`, http.StatusBadRequest)
			return
		}

		asOf, err := time.Parse(time.RFC3339, req.AsOf)
		if err != nil {
			http.Error(w, `{"detail": "unparseable as_of"}`, http.StatusBadRequest)
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"entities": []map[string]any{
				{"id": "e1", "name": "Ada Lovelace", "type": "Person", "created_at": "2024-01-01T00:00:00Z"},
			},
			"as_of":         asOf.Format(time.RFC3339),
			"total_count":   42,
			"changed_count": 5,
			"new_count":     7,
		})
	})
}

func TestClient_PointInTime(t *testing.T) {
	client, _ := newTestClient(t, snapshotHandler(nil))

	asOf := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	snapshot, err := client.PointInTime(context.Background(), asOf)
	require.NoError(t, err)

	assert.Equal(t, 42, snapshot.TotalCount)
	assert.Equal(t, 5, snapshot.ChangedCount)
	assert.Equal(t, 7, snapshot.NewCount)
	require.Len(t, snapshot.Entities, 1)
	assert.Equal(t, "Ada Lovelace", snapshot.Entities[0].Name)
	assert.True(t, snapshot.AsOf.Equal(asOf))
}

func TestClient_PointInTime_SendsRFC3339(t *testing.T) {
	var gotAsOf string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AsOf string `json:"as_of"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotAsOf = req.AsOf

		json.NewEncoder(w).Encode(map[string]any{
			"entities":    []any{},
			"as_of":       req.AsOf,
			"total_count": 0,
		})
	})

	client, _ := newTestClient(t, handler)

	asOf := time.Date(2024, 11, 1, 15, 4, 5, 0, time.UTC)
	_, err := client.PointInTime(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, "2024-11-01T15:04:05Z", gotAsOf)
}

func TestClient_PointInTime_BackendError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "temporal index rebuild in progress"}`))
	})

	client, _ := newTestClient(t, handler)

	_, err := client.PointInTime(context.Background(), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrBackendUnavailable)

	var structured *apierr.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, "temporal index rebuild in progress", structured.Context["message"])
}

func TestClient_PointInTime_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing as_of", body: `{"entities": [], "total_count": 3}`},
		{name: "negative count", body: `{"entities": [], "as_of": "2024-11-01T00:00:00Z", "total_count": -1}`},
		{name: "entity without id", body: `{"entities": [{"name": "x"}], "as_of": "2024-11-01T00:00:00Z", "total_count": 1}`},
		{name: "not json", body: `<html>502 Bad Gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			client, _ := newTestClient(t, handler)

			snapshot, err := client.PointInTime(context.Background(), time.Now())
			require.Error(t, err)
			assert.Nil(t, snapshot, "malformed responses must never partially surface")
			assert.ErrorIs(t, err, apierr.ErrMalformedResponse)
		})
	}
}

func TestClient_PointInTime_NoCacheByDefault(t *testing.T) {
	var requests atomic.Int64
	client, _ := newTestClient(t, snapshotHandler(&requests))

	asOf := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		_, err := client.PointInTime(context.Background(), asOf)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(2), requests.Load(), "without a cache every query must hit the backend")
}

func TestClient_PointInTime_CacheHitSkipsBackend(t *testing.T) {
	var requests atomic.Int64
	client, _ := newTestClient(t, snapshotHandler(&requests), WithCache(NewMemoryCache(8)))

	asOf := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)

	first, err := client.PointInTime(context.Background(), asOf)
	require.NoError(t, err)

	second, err := client.PointInTime(context.Background(), asOf)
	require.NoError(t, err)

	assert.Equal(t, int64(1), requests.Load(), "second query should be served from cache")
	assert.Equal(t, first.TotalCount, second.TotalCount)
}

func TestDateKey(t *testing.T) {
	// Keys normalize to UTC date precision.
	est := time.FixedZone("EST", -5*3600)
	asOf := time.Date(2024, 10, 31, 23, 30, 0, 0, est)
	assert.Equal(t, "2024-11-01", dateKey(asOf))
}
