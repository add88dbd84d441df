package types

import "time"

// Health status constants represent the operational state of a backend service.
const (
	// StatusHealthy indicates the service is fully operational.
	StatusHealthy = "healthy"

	// StatusDegraded indicates the service is operational but experiencing issues.
	StatusDegraded = "degraded"

	// StatusUnhealthy indicates the service is not operational.
	StatusUnhealthy = "unhealthy"
)

// HealthStatus represents the health state of one backend service.
// It provides detailed information about operational status, issues, and context.
type HealthStatus struct {
	// Status is the current health state (healthy, degraded, or unhealthy).
	Status string `json:"status"`

	// Message provides a human-readable description of the health status.
	Message string `json:"message,omitempty"`

	// Details contains additional context and diagnostic information, such
	// as latency figures or dependency errors.
	Details map[string]any `json:"details,omitempty"`
}

// SystemHealth is the aggregate health report returned by the AEGIS backend:
// an overall status plus the per-service breakdown rendered on the health
// dashboard.
type SystemHealth struct {
	// Overall is the aggregate status across all services.
	Overall HealthStatus `json:"overall"`

	// Services maps service name (e.g., "neo4j", "qdrant", "llm") to its status.
	Services map[string]HealthStatus `json:"services,omitempty"`

	// CheckedAt is when the backend evaluated the report.
	CheckedAt time.Time `json:"checked_at,omitempty"`
}

// IsHealthy returns true if the status is StatusHealthy.
func (h HealthStatus) IsHealthy() bool {
	return h.Status == StatusHealthy
}

// IsDegraded returns true if the status is StatusDegraded.
func (h HealthStatus) IsDegraded() bool {
	return h.Status == StatusDegraded
}

// IsUnhealthy returns true if the status is StatusUnhealthy.
func (h HealthStatus) IsUnhealthy() bool {
	return h.Status == StatusUnhealthy
}

// NewHealthyStatus creates a new healthy status with an optional message.
func NewHealthyStatus(message string) HealthStatus {
	return HealthStatus{
		Status:  StatusHealthy,
		Message: message,
	}
}

// NewDegradedStatus creates a new degraded status with a message and optional details.
func NewDegradedStatus(message string, details map[string]any) HealthStatus {
	return HealthStatus{
		Status:  StatusDegraded,
		Message: message,
		Details: details,
	}
}

// NewUnhealthyStatus creates a new unhealthy status with a message and optional details.
func NewUnhealthyStatus(message string, details map[string]any) HealthStatus {
	return HealthStatus{
		Status:  StatusUnhealthy,
		Message: message,
		Details: details,
	}
}

// Degraded returns true if any service in the report is degraded or
// unhealthy while the overall status is still serving.
func (s SystemHealth) Degraded() bool {
	if s.Overall.IsUnhealthy() {
		return false
	}
	for _, svc := range s.Services {
		if !svc.IsHealthy() {
			return true
		}
	}
	return s.Overall.IsDegraded()
}
