package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldMetrics(t *testing.T) {
	rows := []metricSample{
		{MetricName: "total_requests", MetricValue: 120},
		{MetricName: "error_rate", MetricValue: 1.5},
		{MetricName: "avg_response_time", MetricValue: 230},
		{MetricName: "active_users", MetricValue: 12},
	}

	summary := foldMetrics(rows)

	assert.Equal(t, 120.0, summary.TotalRequests)
	assert.Equal(t, 1.5, summary.ErrorRate)
	assert.Equal(t, 230.0, summary.AverageResponseTime)
	assert.Equal(t, 12.0, summary.ActiveUsers)
}

func TestFoldMetrics_LastWriteWins(t *testing.T) {
	rows := []metricSample{
		{MetricName: "total_requests", MetricValue: 100},
		{MetricName: "total_requests", MetricValue: 250},
	}

	summary := foldMetrics(rows)

	assert.Equal(t, 250.0, summary.TotalRequests)
}

func TestFoldMetrics_MissingMetricsStayZero(t *testing.T) {
	summary := foldMetrics(nil)

	assert.Equal(t, 0.0, summary.TotalRequests)
	assert.Equal(t, 0.0, summary.ErrorRate)
	assert.Equal(t, 0.0, summary.AverageResponseTime)
	assert.Equal(t, 0.0, summary.ActiveUsers)
}

func TestFoldAlerts(t *testing.T) {
	rows := []alertSample{
		{Status: "active", Severity: "critical"},
		{Status: "active", Severity: "low"},
		{Status: "resolved", Severity: "high"},
		{Status: "suppressed", Severity: "critical"},
	}

	summary := foldAlerts(rows)

	assert.Equal(t, 2, summary.Active)
	assert.Equal(t, 1, summary.Critical)
	assert.Equal(t, 1, summary.ResolvedToday)
}

func TestFoldAlerts_CriticalCountsActiveOnly(t *testing.T) {
	rows := []alertSample{
		{Status: "resolved", Severity: "critical"},
		{Status: "suppressed", Severity: "critical"},
	}

	summary := foldAlerts(rows)

	assert.Equal(t, 0, summary.Active)
	assert.Equal(t, 0, summary.Critical)
	assert.Equal(t, 1, summary.ResolvedToday)
}

func TestFoldHealthChecks(t *testing.T) {
	rows := []healthCheckSample{
		{Status: "healthy"},
		{Status: "healthy"},
		{Status: "healthy"},
		{Status: "degraded"},
	}

	summary := foldHealthChecks(rows)

	assert.Equal(t, 3, summary.HealthyServices)
	assert.Equal(t, 1, summary.DegradedServices)
	assert.Equal(t, 4, summary.TotalServices)
}

func TestFoldHealthChecks_UnhealthyCountsTowardTotalOnly(t *testing.T) {
	rows := []healthCheckSample{
		{Status: "healthy"},
		{Status: "unhealthy"},
	}

	summary := foldHealthChecks(rows)

	assert.Equal(t, 1, summary.HealthyServices)
	assert.Equal(t, 0, summary.DegradedServices)
	assert.Equal(t, 2, summary.TotalServices)
}

func TestFoldLogs(t *testing.T) {
	rows := []logSample{
		{Level: "error"},
		{Level: "fatal"},
		{Level: "warn"},
		{Level: "info"},
		{Level: "info"},
		{Level: "debug"},
	}

	summary := foldLogs(rows)

	assert.Equal(t, 2, summary.ErrorCount)
	assert.Equal(t, 1, summary.WarningCount)
	assert.Equal(t, 2, summary.InfoCount)
}
