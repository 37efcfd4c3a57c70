package monitoring

import "time"

// Pagination describes one page of a count-aware list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Response wraps a single-record result.
type Response[T any] struct {
	Data      T      `json:"data"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
}

// PaginatedResponse wraps a filtered list result together with its window.
type PaginatedResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Success    bool       `json:"success"`
}

func newResponse[T any](data T) *Response[T] {
	return &Response[T]{
		Data:      data,
		Success:   true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// TimeSeriesPoint is one sample of a metric projected to its three columns.
type TimeSeriesPoint struct {
	Timestamp time.Time         `json:"timestamp"`
	Value     float64           `json:"value"`
	Labels    map[string]string `json:"labels"`
}

// LogStats summarizes log volume by level and service over a time range.
type LogStats struct {
	Total     int64            `json:"total"`
	ByLevel   map[string]int64 `json:"by_level"`
	ByService map[string]int64 `json:"by_service"`
}

type MetricsSummary struct {
	TotalRequests       float64 `json:"total_requests"`
	ErrorRate           float64 `json:"error_rate"`
	AverageResponseTime float64 `json:"average_response_time"`
	ActiveUsers         float64 `json:"active_users"`
}

type AlertsSummary struct {
	Active        int `json:"active"`
	Critical      int `json:"critical"`
	ResolvedToday int `json:"resolved_today"`
}

type HealthChecksSummary struct {
	HealthyServices  int `json:"healthy_services"`
	TotalServices    int `json:"total_services"`
	DegradedServices int `json:"degraded_services"`
}

type LogsSummary struct {
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	InfoCount    int `json:"info_count"`
}

// DashboardSummary is the fixed-shape roll-up returned by Store.Dashboard.
type DashboardSummary struct {
	Metrics      MetricsSummary      `json:"metrics"`
	Alerts       AlertsSummary       `json:"alerts"`
	HealthChecks HealthChecksSummary `json:"health_checks"`
	Logs         LogsSummary         `json:"logs"`
}

// MetricUpdate carries the mutable fields of a metric. Nil fields are left
// untouched.
type MetricUpdate struct {
	MetricValue *float64           `json:"metric_value"`
	Labels      *map[string]string `json:"labels"`
}

// AlertUpdate carries the mutable fields of an alert.
type AlertUpdate struct {
	Status       *string    `json:"status"`
	CurrentValue *float64   `json:"current_value"`
	ResolvedAt   *time.Time `json:"resolved_at"`
}

// HealthCheckUpdate carries the mutable fields of a health check.
type HealthCheckUpdate struct {
	Status       *string        `json:"status"`
	ResponseTime *int           `json:"response_time"`
	LastCheck    *time.Time     `json:"last_check"`
	ErrorMessage *string        `json:"error_message"`
	Metadata     map[string]any `json:"metadata"`
}
