package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"golang.org/x/sync/errgroup"
)

// dashboardMetricNames is the fixed whitelist of metrics the overview reads.
var dashboardMetricNames = []string{"total_requests", "error_rate", "avg_response_time", "active_users"}

type metricSample struct {
	MetricName  string
	MetricValue float64
}

type alertSample struct {
	Status   string
	Severity string
}

type healthCheckSample struct {
	Status string
}

type logSample struct {
	Level string
}

// Dashboard issues the four overview reads concurrently and folds them into
// one fixed-shape summary. The join is all-or-nothing: if any sub-read fails
// the whole aggregation fails and no partial dashboard is produced.
func (s *Store) Dashboard(ctx context.Context, userID uint) (*Response[DashboardSummary], error) {
	now := time.Now().UTC()
	oneHourAgo := now.Add(-time.Hour)
	oneDayAgo := now.Add(-24 * time.Hour)

	var (
		metricRows []metricSample
		alertRows  []alertSample
		healthRows []healthCheckSample
		logRows    []logSample
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Metric{}).
			Select("metric_name", "metric_value").
			Where("user_id = ?", userID).
			Where("timestamp >= ?", oneHourAgo).
			Where("metric_name IN ?", dashboardMetricNames).
			Find(&metricRows).Error
	})

	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Alert{}).
			Select("status", "severity").
			Where("user_id = ?", userID).
			Where("triggered_at >= ?", oneDayAgo).
			Find(&alertRows).Error
	})

	g.Go(func() error {
		// Health checks carry current state, not events, so no time window.
		return s.db.WithContext(gctx).Model(&models.HealthCheck{}).
			Select("status").
			Where("user_id = ?", userID).
			Find(&healthRows).Error
	})

	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.LogEntry{}).
			Select("level").
			Where("user_id = ?", userID).
			Where("timestamp >= ?", oneHourAgo).
			Find(&logRows).Error
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard data: %w", err)
	}

	summary := DashboardSummary{
		Metrics:      foldMetrics(metricRows),
		Alerts:       foldAlerts(alertRows),
		HealthChecks: foldHealthChecks(healthRows),
		Logs:         foldLogs(logRows),
	}

	return newResponse(summary), nil
}

// foldMetrics starts every whitelisted counter at 0 and overwrites it with
// each matching sample's value. Multiple samples in the window mean
// last-write-wins; there is no averaging.
func foldMetrics(rows []metricSample) MetricsSummary {
	var out MetricsSummary

	for _, row := range rows {
		switch row.MetricName {
		case "total_requests":
			out.TotalRequests = row.MetricValue
		case "error_rate":
			out.ErrorRate = row.MetricValue
		case "avg_response_time":
			out.AverageResponseTime = row.MetricValue
		case "active_users":
			out.ActiveUsers = row.MetricValue
		}
	}

	return out
}

// foldAlerts counts active and critical-active alerts, plus resolved ones.
// resolved_today is bounded by the one-day window on triggered_at, not on
// resolved_at.
func foldAlerts(rows []alertSample) AlertsSummary {
	var out AlertsSummary

	for _, row := range rows {
		switch row.Status {
		case "active":
			out.Active++
			if row.Severity == "critical" {
				out.Critical++
			}
		case "resolved":
			out.ResolvedToday++
		}
	}

	return out
}

// foldHealthChecks buckets services by status. Unhealthy rows count toward
// the total only.
func foldHealthChecks(rows []healthCheckSample) HealthChecksSummary {
	var out HealthChecksSummary

	for _, row := range rows {
		out.TotalServices++

		switch row.Status {
		case "healthy":
			out.HealthyServices++
		case "degraded":
			out.DegradedServices++
		}
	}

	return out
}

// foldLogs buckets recent log rows by level. Debug rows fall into no bucket.
func foldLogs(rows []logSample) LogsSummary {
	var out LogsSummary

	for _, row := range rows {
		switch row.Level {
		case "error", "fatal":
			out.ErrorCount++
		case "warn":
			out.WarningCount++
		case "info":
			out.InfoCount++
		}
	}

	return out
}
