package temporal

import (
	"context"
	"log/slog"
	"time"

	"github.com/aegis-rag/sdk/apierr"
	"github.com/aegis-rag/sdk/transport"
)

// pointInTimePath is the backend endpoint for temporal queries.
const pointInTimePath = "/api/v1/temporal/point-in-time"

// pointInTimeRequest is the wire format of a temporal query.
type pointInTimeRequest struct {
	AsOf string `json:"as_of"`
}

// Client is the API client for temporal point-in-time queries.
type Client struct {
	transport *transport.Transport
	cache     SnapshotCache
	logger    *slog.Logger
}

// ClientOption configures a temporal Client.
type ClientOption func(*Client)

// WithCache attaches a snapshot cache keyed by as-of date. Without a cache
// every query hits the backend, including repeat queries for the same date.
func WithCache(cache SnapshotCache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// NewClient creates a temporal query client over the given transport.
func NewClient(t *transport.Transport, opts ...ClientOption) *Client {
	c := &Client{
		transport: t,
		logger:    t.Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PointInTime retrieves the state of the knowledge graph as it existed at
// the given timestamp. The response is validated before being returned;
// responses that fail validation produce a KindMalformedResponse error and
// are never partially surfaced.
//
// When a cache is configured, queries are served from it by as-of date and
// backend responses are written back to it. Cache failures are logged and
// treated as misses; they never fail the query.
func (c *Client) PointInTime(ctx context.Context, asOf time.Time) (*Snapshot, error) {
	const op = "Temporal.PointInTime"

	if c.cache != nil {
		snapshot, ok, err := c.cache.Get(ctx, asOf)
		if err != nil {
			c.logger.Debug("snapshot cache read failed",
				slog.String("as_of", dateKey(asOf)),
				slog.String("error", err.Error()))
		} else if ok {
			c.logger.Debug("snapshot cache hit", slog.String("as_of", dateKey(asOf)))
			return snapshot, nil
		}
	}

	req := pointInTimeRequest{AsOf: asOf.UTC().Format(time.RFC3339)}

	var snapshot Snapshot
	if err := c.transport.PostJSON(ctx, op, pointInTimePath, req, &snapshot); err != nil {
		return nil, err
	}

	if err := snapshot.Validate(); err != nil {
		return nil, apierr.MalformedResponse(op, err).WithContext(map[string]any{
			"as_of": req.AsOf,
		})
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, asOf, &snapshot); err != nil {
			c.logger.Warn("snapshot cache write failed",
				slog.String("as_of", dateKey(asOf)),
				slog.String("error", err.Error()))
		}
	}

	return &snapshot, nil
}

// NewSession creates a time-travel session over this client with the
// provided options.
func (c *Client) NewSession(opts ...SessionOption) *Session {
	return newSession(c, opts...)
}

// dateKey normalizes a timestamp to the date-precision cache key used for
// snapshot lookups. Temporal queries are date-granular in practice: the UI
// stages dates, not instants.
func dateKey(asOf time.Time) string {
	return asOf.UTC().Format("2006-01-02")
}
