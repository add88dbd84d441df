package health

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aegis-rag/sdk/transport"
	"github.com/aegis-rag/sdk/types"
)

// healthPath is the backend's aggregate health endpoint.
const healthPath = "/api/v1/health"

// checkTimeout bounds standalone connectivity checks when the caller's
// context carries no deadline.
const checkTimeout = 5 * time.Second

// Client is the API client for backend health reporting.
type Client struct {
	transport *transport.Transport
}

// NewClient creates a health client over the given transport.
func NewClient(t *transport.Transport) *Client {
	return &Client{transport: t}
}

// Check fetches the backend's aggregate health report: the overall status
// plus the per-service breakdown (graph store, vector store, LLM provider,
// ingestion pipeline).
func (c *Client) Check(ctx context.Context) (types.SystemHealth, error) {
	const op = "Health.Check"

	var report types.SystemHealth
	if err := c.transport.GetJSON(ctx, op, healthPath, &report); err != nil {
		return types.SystemHealth{}, err
	}

	if report.Overall.Status == "" {
		// Backends that predate the aggregate report return a bare status.
		report.Overall = types.NewDegradedStatus("backend returned no overall status", nil)
	}

	return report, nil
}

// EndpointCheck verifies TCP connectivity to a host and port. It returns a
// healthy status if the endpoint accepts connections, unhealthy otherwise.
//
// Example:
//
//	status := health.EndpointCheck(ctx, "neo4j.internal", 7687)
//	if status.IsUnhealthy() {
//	    log.Println("graph store unreachable")
//	}
func EndpointCheck(ctx context.Context, host string, port int) types.HealthStatus {
	if host == "" {
		return types.NewUnhealthyStatus("host cannot be empty", nil)
	}

	if port <= 0 || port > 65535 {
		return types.NewUnhealthyStatus(
			fmt.Sprintf("invalid port number: %d", port),
			map[string]any{"port": port},
		)
	}

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
	}

	address := net.JoinHostPort(host, strconv.Itoa(port))
	var dialer net.Dialer

	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return types.NewUnhealthyStatus(
			fmt.Sprintf("failed to connect to %s", address),
			map[string]any{
				"host":  host,
				"port":  port,
				"error": err.Error(),
			},
		)
	}

	conn.Close()

	return types.NewHealthyStatus(
		fmt.Sprintf("successfully connected to %s", address),
	)
}

// URLCheck verifies that an HTTP endpoint responds with a non-5xx status.
// 2xx and 3xx responses are healthy; 4xx responses are degraded since the
// server is up but rejecting the probe; 5xx and connection failures are
// unhealthy.
func URLCheck(ctx context.Context, rawURL string) types.HealthStatus {
	if rawURL == "" {
		return types.NewUnhealthyStatus("url cannot be empty", nil)
	}

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return types.NewUnhealthyStatus(
			fmt.Sprintf("invalid url '%s'", rawURL),
			map[string]any{"error": err.Error()},
		)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return types.NewUnhealthyStatus(
			fmt.Sprintf("failed to reach %s", rawURL),
			map[string]any{"error": err.Error()},
		)
	}
	defer resp.Body.Close()

	details := map[string]any{"status_code": resp.StatusCode}

	switch {
	case resp.StatusCode >= 500:
		return types.NewUnhealthyStatus(
			fmt.Sprintf("%s returned server error %d", rawURL, resp.StatusCode), details)
	case resp.StatusCode >= 400:
		return types.NewDegradedStatus(
			fmt.Sprintf("%s returned client error %d", rawURL, resp.StatusCode), details)
	default:
		return types.NewHealthyStatus(
			fmt.Sprintf("%s is reachable", rawURL))
	}
}

// Combine aggregates multiple health checks into a single status.
// The result follows this priority:
//   - If any check is unhealthy, the result is unhealthy
//   - If any check is degraded (and none unhealthy), the result is degraded
//   - If all checks are healthy, the result is healthy
func Combine(checks ...types.HealthStatus) types.HealthStatus {
	if len(checks) == 0 {
		return types.NewHealthyStatus("no checks provided")
	}

	var unhealthyChecks []string
	var degradedChecks []string
	var healthyCount int

	for _, check := range checks {
		switch check.Status {
		case types.StatusUnhealthy:
			msg := check.Message
			if msg == "" {
				msg = "unnamed check"
			}
			unhealthyChecks = append(unhealthyChecks, msg)
		case types.StatusDegraded:
			msg := check.Message
			if msg == "" {
				msg = "unnamed check"
			}
			degradedChecks = append(degradedChecks, msg)
		case types.StatusHealthy:
			healthyCount++
		}
	}

	if len(unhealthyChecks) > 0 {
		return types.NewUnhealthyStatus(
			fmt.Sprintf("%d check(s) failed", len(unhealthyChecks)),
			map[string]any{
				"total":         len(checks),
				"unhealthy":     len(unhealthyChecks),
				"degraded":      len(degradedChecks),
				"healthy":       healthyCount,
				"failed_checks": unhealthyChecks,
			},
		)
	}

	if len(degradedChecks) > 0 {
		return types.NewDegradedStatus(
			fmt.Sprintf("%d check(s) degraded", len(degradedChecks)),
			map[string]any{
				"total":           len(checks),
				"degraded":        len(degradedChecks),
				"healthy":         healthyCount,
				"degraded_checks": degradedChecks,
			},
		)
	}

	return types.NewHealthyStatus(
		fmt.Sprintf("all %d check(s) passed", len(checks)),
	)
}
