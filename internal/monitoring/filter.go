package monitoring

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

// MetricFilter narrows a metric query. Zero-valued fields add no constraint.
type MetricFilter struct {
	MetricName string
	MetricType string
	StartTime  *time.Time
	EndTime    *time.Time
	Labels     map[string]string
}

func (f MetricFilter) apply(q *gorm.DB) *gorm.DB {
	if f.MetricName != "" {
		q = q.Where("metric_name = ?", f.MetricName)
	}

	if f.MetricType != "" {
		q = q.Where("metric_type = ?", f.MetricType)
	}

	if f.StartTime != nil {
		q = q.Where("timestamp >= ?", *f.StartTime)
	}

	if f.EndTime != nil {
		q = q.Where("timestamp <= ?", *f.EndTime)
	}

	return whereLabelsContain(q, f.Labels)
}

// LogFilter narrows a log query.
type LogFilter struct {
	Level     string
	Service   string
	StartTime *time.Time
	EndTime   *time.Time
	Search    string
}

func (f LogFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Level != "" {
		q = q.Where("level = ?", f.Level)
	}

	if f.Service != "" {
		q = q.Where("service = ?", f.Service)
	}

	if f.StartTime != nil {
		q = q.Where("timestamp >= ?", *f.StartTime)
	}

	if f.EndTime != nil {
		q = q.Where("timestamp <= ?", *f.EndTime)
	}

	if f.Search != "" {
		q = q.Where("message ILIKE ?", "%"+f.Search+"%")
	}

	return q
}

// AlertFilter narrows an alert query. The time range applies to triggered_at.
type AlertFilter struct {
	Status    string
	Severity  string
	StartTime *time.Time
	EndTime   *time.Time
}

func (f AlertFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	if f.Severity != "" {
		q = q.Where("severity = ?", f.Severity)
	}

	if f.StartTime != nil {
		q = q.Where("triggered_at >= ?", *f.StartTime)
	}

	if f.EndTime != nil {
		q = q.Where("triggered_at <= ?", *f.EndTime)
	}

	return q
}

// HealthCheckFilter narrows a health-check query.
type HealthCheckFilter struct {
	Status      string
	ServiceName string
}

func (f HealthCheckFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	if f.ServiceName != "" {
		q = q.Where("service_name = ?", f.ServiceName)
	}

	return q
}

// whereLabelsContain adds one jsonb containment constraint per label pair,
// ANDed together. A row matches only if its labels hold the exact pair.
func whereLabelsContain(q *gorm.DB, labels map[string]string) *gorm.DB {
	for key, value := range labels {
		pair, _ := json.Marshal(map[string]string{key: value})
		q = q.Where("labels @> ?", string(pair))
	}

	return q
}

// window translates a 1-based page and a positive limit into a row offset.
func window(page, limit int) (int, error) {
	if page < 1 {
		return 0, fmt.Errorf("invalid page %d: must be >= 1", page)
	}

	if limit <= 0 {
		return 0, fmt.Errorf("invalid limit %d: must be positive", limit)
	}

	return (page - 1) * limit, nil
}

func pageCount(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
