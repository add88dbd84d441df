package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/aegis-rag/sdk/apierr"
)

// DefaultTimeout is the per-request timeout applied when the caller does not
// supply an http.Client with its own timeout.
const DefaultTimeout = 30 * time.Second

// requestIDHeader carries a per-request UUID so backend logs can be
// correlated with SDK traces.
const requestIDHeader = "X-Request-ID"

// Options configures a Transport.
type Options struct {
	// BaseURL is the root of the AEGIS backend API, e.g. "https://aegis.example.com".
	// Required.
	BaseURL string

	// HTTPClient is the underlying client. Defaults to one with DefaultTimeout.
	HTTPClient *http.Client

	// Logger receives request-level debug logging. Defaults to slog.Default().
	Logger *slog.Logger

	// Tracer records one client span per request. Defaults to a no-op tracer.
	Tracer trace.Tracer

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Breaker, when non-nil, wraps every request in a circuit breaker.
	// When the breaker is open requests fail fast with ErrBackendUnavailable.
	Breaker *gobreaker.CircuitBreaker
}

// Transport executes HTTP requests against the AEGIS backend on behalf of
// the service clients. It is safe for concurrent use.
type Transport struct {
	baseURL   string
	client    *http.Client
	logger    *slog.Logger
	tracer    trace.Tracer
	userAgent string
	breaker   *gobreaker.CircuitBreaker
}

// New creates a Transport from the provided options.
func New(opts Options) (*Transport, error) {
	if opts.BaseURL == "" {
		return nil, apierr.Configuration("transport.New", fmt.Errorf("%w: base URL is required", apierr.ErrInvalidConfig))
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("github.com/aegis-rag/sdk")
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "aegis-sdk-go"
	}

	return &Transport{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		client:    client,
		logger:    logger,
		tracer:    tracer,
		userAgent: userAgent,
		breaker:   opts.Breaker,
	}, nil
}

// BaseURL returns the configured backend root.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Logger returns the transport's logger for use by service clients.
func (t *Transport) Logger() *slog.Logger {
	return t.logger
}

// GetJSON issues a GET request and decodes the JSON response into out.
func (t *Transport) GetJSON(ctx context.Context, op, path string, out any) error {
	return t.roundTripJSON(ctx, op, http.MethodGet, path, nil, out)
}

// PostJSON issues a POST request with a JSON body and decodes the JSON
// response into out. A nil body sends an empty request body; a nil out
// discards the response body.
func (t *Transport) PostJSON(ctx context.Context, op, path string, body, out any) error {
	return t.roundTripJSON(ctx, op, http.MethodPost, path, body, out)
}

// Stream issues a POST request expecting a text/event-stream response and
// returns the raw response for incremental consumption. The caller owns the
// response body and must close it.
func (t *Transport) Stream(ctx context.Context, op, path string, body any) (*http.Response, error) {
	req, err := t.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, apierr.Internal(op, err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	ctx, span := t.startSpan(ctx, op, req)
	resp, err := t.execute(req.WithContext(ctx))
	if err != nil {
		mapped := t.mapTransportError(op, err)
		span.SetStatus(codes.Error, mapped.Error())
		span.End()
		return nil, mapped
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer span.End()
		defer resp.Body.Close()
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		backendErr := t.backendError(op, resp)
		span.SetStatus(codes.Error, backendErr.Error())
		return nil, backendErr
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	span.End()
	return resp, nil
}

func (t *Transport) roundTripJSON(ctx context.Context, op, method, path string, body, out any) error {
	req, err := t.newRequest(ctx, method, path, body)
	if err != nil {
		return apierr.Internal(op, err)
	}

	ctx, span := t.startSpan(ctx, op, req)
	defer span.End()

	start := time.Now()
	resp, err := t.execute(req.WithContext(ctx))
	if err != nil {
		mapped := t.mapTransportError(op, err)
		span.SetStatus(codes.Error, mapped.Error())
		return mapped
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	t.logger.Debug("backend request completed",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		backendErr := t.backendError(op, resp)
		span.SetStatus(codes.Error, backendErr.Error())
		return backendErr
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		malformed := apierr.MalformedResponse(op, fmt.Errorf("decoding response body: %w", err))
		span.SetStatus(codes.Error, malformed.Error())
		return malformed
	}

	return nil
}

func (t *Transport) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set(requestIDHeader, uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (t *Transport) execute(req *http.Request) (*http.Response, error) {
	if t.breaker == nil {
		return t.client.Do(req)
	}

	result, err := t.breaker.Execute(func() (any, error) {
		resp, err := t.client.Do(req)
		if err != nil {
			return nil, err
		}
		// Server errors count as breaker failures; client errors do not.
		if resp.StatusCode >= 500 {
			return resp, fmt.Errorf("server error: %d", resp.StatusCode)
		}
		return resp, nil
	})

	if resp, ok := result.(*http.Response); ok {
		return resp, nil
	}
	return nil, err
}

func (t *Transport) startSpan(ctx context.Context, op string, req *http.Request) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("url.path", req.URL.Path),
		),
	)
}

// mapTransportError converts a connection-level failure into a structured error.
func (t *Transport) mapTransportError(op string, err error) *apierr.Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apierr.Timeout(op, err)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &apierr.Error{
			Op:   op,
			Kind: apierr.KindBackend,
			Err:  fmt.Errorf("%w: circuit breaker open", apierr.ErrBackendUnavailable),
		}
	default:
		return apierr.Network(op, err)
	}
}

// backendError converts a non-2xx response into a structured error carrying
// the server's human-readable message.
func (t *Transport) backendError(op string, resp *http.Response) *apierr.Error {
	message := extractMessage(resp.Body)
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	if resp.StatusCode == http.StatusNotFound {
		return apierr.NotFound(op, fmt.Errorf("%w: %s", apierr.ErrNotFound, message)).
			WithContext(map[string]any{"status": resp.StatusCode})
	}

	return apierr.Backend(op, resp.StatusCode, message)
}

// extractMessage pulls a human-readable error message out of a backend error
// body. The backend uses "detail" (FastAPI convention) but "error" and
// "message" keys are accepted as well. Non-JSON bodies are returned verbatim,
// truncated.
func extractMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		switch {
		case payload.Detail != "":
			return payload.Detail
		case payload.Error != "":
			return payload.Error
		case payload.Message != "":
			return payload.Message
		}
	}

	return strings.TrimSpace(string(raw))
}
