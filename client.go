package sdk

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/aegis-rag/sdk/apierr"
	"github.com/aegis-rag/sdk/chat"
	"github.com/aegis-rag/sdk/config"
	"github.com/aegis-rag/sdk/graph"
	"github.com/aegis-rag/sdk/health"
	"github.com/aegis-rag/sdk/temporal"
	"github.com/aegis-rag/sdk/transport"
)

// Client is the entry point of the AEGIS RAG SDK. It aggregates the
// per-service API clients behind one configured transport so that base URL,
// logging, tracing, and circuit breaking are set up exactly once.
//
// A Client is safe for concurrent use.
type Client struct {
	transport *transport.Transport
	logger    *slog.Logger

	temporal *temporal.Client
	graph    *graph.Client
	health   *health.Client
	chat     *chat.Client
}

// NewClient creates a new SDK client with the provided options.
// WithBaseURL is required.
//
// Example:
//
//	client, err := sdk.NewClient(
//	    sdk.WithBaseURL("https://aegis.example.com"),
//	    sdk.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewClient(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		timeout := cfg.timeout
		if timeout == 0 {
			timeout = transport.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	t, err := transport.New(transport.Options{
		BaseURL:    cfg.baseURL,
		HTTPClient: httpClient,
		Logger:     cfg.logger,
		Tracer:     cfg.tracer,
		UserAgent:  cfg.userAgent,
		Breaker:    cfg.breaker,
	})
	if err != nil {
		return nil, err
	}

	var temporalOpts []temporal.ClientOption
	if cfg.snapshotCache != nil {
		temporalOpts = append(temporalOpts, temporal.WithCache(cfg.snapshotCache))
	}

	c := &Client{
		transport: t,
		logger:    cfg.logger,
		temporal:  temporal.NewClient(t, temporalOpts...),
		graph:     graph.NewClient(t),
		health:    health.NewClient(t),
		chat:      chat.NewClient(t),
	}

	c.logger.Info("aegis client created",
		slog.String("base_url", t.BaseURL()),
	)

	return c, nil
}

// NewClientFromConfig creates a client from an aegis.yaml configuration
// file, wiring the cache mode and circuit breaker the file selects.
func NewClientFromConfig(path string, opts ...Option) (*Client, error) {
	const op = "sdk.NewClientFromConfig"

	fileCfg, err := config.Load(path)
	if err != nil {
		return nil, apierr.Configuration(op, err)
	}

	base := []Option{
		WithBaseURL(fileCfg.BaseURL),
		WithTimeout(fileCfg.GetTimeout()),
	}

	if fileCfg.UserAgent != "" {
		base = append(base, WithUserAgent(fileCfg.UserAgent))
	}

	if fileCfg.Cache != nil {
		switch fileCfg.Cache.Mode {
		case config.CacheModeMemory:
			base = append(base, WithSnapshotCache(temporal.NewMemoryCache(fileCfg.Cache.Capacity)))
		case config.CacheModeRedis:
			cache, err := temporal.NewRedisCache(temporal.RedisOptions{
				URL: fileCfg.Cache.RedisURL,
				TTL: fileCfg.Cache.GetCacheTTL(),
			})
			if err != nil {
				return nil, apierr.Configuration(op, err)
			}
			base = append(base, WithSnapshotCache(cache))
		}
	}

	if fileCfg.Breaker != nil && fileCfg.Breaker.Enabled {
		breaker := NewDefaultBreaker(uint32(fileCfg.Breaker.MaxFailures), fileCfg.Breaker.GetOpenTimeout())
		base = append(base, WithCircuitBreaker(breaker))
	}

	// Explicit options win over file settings.
	return NewClient(append(base, opts...)...)
}

// Temporal returns the time-travel query client.
func (c *Client) Temporal() *temporal.Client {
	return c.temporal
}

// Graph returns the knowledge-graph client.
func (c *Client) Graph() *graph.Client {
	return c.graph
}

// Health returns the backend health client.
func (c *Client) Health() *health.Client {
	return c.health
}

// Chat returns the conversation client.
func (c *Client) Chat() *chat.Client {
	return c.chat
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.transport.BaseURL()
}
