package sdk

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/trace"

	"github.com/aegis-rag/sdk/temporal"
)

// Option configures a Client.
type Option func(*clientConfig)

// clientConfig holds configuration for the Client instance.
type clientConfig struct {
	baseURL       string
	httpClient    *http.Client
	logger        *slog.Logger
	tracer        trace.Tracer
	userAgent     string
	timeout       time.Duration
	snapshotCache temporal.SnapshotCache
	breaker       *gobreaker.CircuitBreaker
}

// WithBaseURL sets the root URL of the AEGIS backend API.
// Required unless the client is built from a config file.
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom underlying HTTP client. Use this to supply
// custom TLS settings, proxies, or transports. When set, WithTimeout is
// ignored in favor of the client's own timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger for the client.
// If not provided, a JSON logger writing to stdout is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for distributed tracing.
// The client records one client span per backend request.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *clientConfig) {
		c.tracer = tracer
	}
}

// WithUserAgent overrides the User-Agent header sent on every request.
func WithUserAgent(userAgent string) Option {
	return func(c *clientConfig) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout. Defaults to 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithSnapshotCache attaches a cache for temporal point-in-time snapshots,
// keyed by as-of date. Without a cache every apply re-fetches, including
// repeat queries for an already-seen date.
func WithSnapshotCache(cache temporal.SnapshotCache) Option {
	return func(c *clientConfig) {
		c.snapshotCache = cache
	}
}

// WithCircuitBreaker wraps every backend request in the given circuit
// breaker. When the breaker is open, requests fail fast with
// ErrBackendUnavailable instead of piling up against a failing backend.
func WithCircuitBreaker(breaker *gobreaker.CircuitBreaker) Option {
	return func(c *clientConfig) {
		c.breaker = breaker
	}
}

// NewDefaultBreaker creates a circuit breaker with sensible defaults for
// the AEGIS backend: it opens after maxFailures consecutive failures and
// probes again after openTimeout.
func NewDefaultBreaker(maxFailures uint32, openTimeout time.Duration) *gobreaker.CircuitBreaker {
	if maxFailures == 0 {
		maxFailures = 5
	}
	if openTimeout == 0 {
		openTimeout = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "aegis-backend",
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	})
}
