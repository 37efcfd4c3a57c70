package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the record-store client for the four monitoring collections. All
// reads and writes are scoped to one user, take a context and run as a single
// round trip; failures are wrapped with the operation name and propagated
// without retries.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func paginate[T any](q *gorm.DB, orderBy string, page, limit int, op string) (*PaginatedResponse[T], error) {
	offset, err := window(page, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows := make([]T, 0, limit)
	if err := q.Order(orderBy).Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PaginatedResponse[T]{
		Data: rows,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pageCount(total, limit),
		},
		Success: true,
	}, nil
}

// Metrics

func (s *Store) ListMetrics(ctx context.Context, userID uint, filter MetricFilter, page, limit int) (*PaginatedResponse[models.Metric], error) {
	q := s.db.WithContext(ctx).Model(&models.Metric{}).Where("user_id = ?", userID)
	q = filter.apply(q)

	return paginate[models.Metric](q, "timestamp DESC", page, limit, "failed to fetch metrics")
}

// MetricTimeSeries projects metrics matching the name, range and label
// constraints to an ascending (timestamp, value, labels) sequence. Gaps are
// preserved; no resampling happens here.
func (s *Store) MetricTimeSeries(ctx context.Context, userID uint, metricName string, start, end time.Time, labels map[string]string) ([]TimeSeriesPoint, error) {
	q := s.db.WithContext(ctx).Model(&models.Metric{}).
		Select("timestamp", "metric_value", "labels").
		Where("user_id = ?", userID).
		Where("metric_name = ?", metricName).
		Where("timestamp >= ?", start).
		Where("timestamp <= ?", end)
	q = whereLabelsContain(q, labels)

	var rows []models.Metric
	if err := q.Order("timestamp ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch metric time series: %w", err)
	}

	points := make([]TimeSeriesPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, TimeSeriesPoint{
			Timestamp: row.Timestamp,
			Value:     row.MetricValue,
			Labels:    row.Labels.Data(),
		})
	}

	return points, nil
}

func (s *Store) CreateMetric(ctx context.Context, metric *models.Metric) (*Response[*models.Metric], error) {
	if err := s.db.WithContext(ctx).Create(metric).Error; err != nil {
		return nil, fmt.Errorf("failed to create metric: %w", err)
	}

	return newResponse(metric), nil
}

func (s *Store) UpdateMetric(ctx context.Context, userID uint, id string, update MetricUpdate) (*Response[*models.Metric], error) {
	updates := map[string]interface{}{}

	if update.MetricValue != nil {
		updates["metric_value"] = *update.MetricValue
	}

	if update.Labels != nil {
		updates["labels"] = datatypes.NewJSONType(*update.Labels)
	}

	if len(updates) > 0 {
		tx := s.db.WithContext(ctx).Model(&models.Metric{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)

		if tx.Error != nil {
			return nil, fmt.Errorf("failed to update metric: %w", tx.Error)
		}

		if tx.RowsAffected == 0 {
			return nil, fmt.Errorf("failed to update metric: %w", gorm.ErrRecordNotFound)
		}
	}

	var metric models.Metric
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&metric, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to update metric: %w", err)
	}

	return newResponse(&metric), nil
}

func (s *Store) DeleteMetric(ctx context.Context, userID uint, id string) (*Response[any], error) {
	tx := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Metric{}, "id = ?", id)

	if tx.Error != nil {
		return nil, fmt.Errorf("failed to delete metric: %w", tx.Error)
	}

	if tx.RowsAffected == 0 {
		return nil, fmt.Errorf("failed to delete metric: %w", gorm.ErrRecordNotFound)
	}

	return newResponse[any](nil), nil
}

// Logs

func (s *Store) ListLogs(ctx context.Context, userID uint, filter LogFilter, page, limit int) (*PaginatedResponse[models.LogEntry], error) {
	q := s.db.WithContext(ctx).Model(&models.LogEntry{}).Where("user_id = ?", userID)
	q = filter.apply(q)

	return paginate[models.LogEntry](q, "timestamp DESC", page, limit, "failed to fetch logs")
}

func (s *Store) CreateLog(ctx context.Context, entry *models.LogEntry) (*Response[*models.LogEntry], error) {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}

	return newResponse(entry), nil
}

func (s *Store) GetLogStats(ctx context.Context, userID uint, start, end time.Time) (*LogStats, error) {
	var rows []struct {
		Level   string
		Service string
	}

	err := s.db.WithContext(ctx).Model(&models.LogEntry{}).
		Select("level", "service").
		Where("user_id = ?", userID).
		Where("timestamp >= ?", start).
		Where("timestamp <= ?", end).
		Find(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch log stats: %w", err)
	}

	stats := &LogStats{
		ByLevel:   make(map[string]int64),
		ByService: make(map[string]int64),
	}

	for _, row := range rows {
		stats.Total++
		stats.ByLevel[row.Level]++
		stats.ByService[row.Service]++
	}

	return stats, nil
}

// Alerts

func (s *Store) ListAlerts(ctx context.Context, userID uint, filter AlertFilter, page, limit int) (*PaginatedResponse[models.Alert], error) {
	q := s.db.WithContext(ctx).Model(&models.Alert{}).Where("user_id = ?", userID)
	q = filter.apply(q)

	return paginate[models.Alert](q, "triggered_at DESC", page, limit, "failed to fetch alerts")
}

func (s *Store) CreateAlert(ctx context.Context, alert *models.Alert) (*Response[*models.Alert], error) {
	if err := s.db.WithContext(ctx).Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	return newResponse(alert), nil
}

func (s *Store) UpdateAlert(ctx context.Context, userID uint, id string, update AlertUpdate) (*Response[*models.Alert], error) {
	updates := map[string]interface{}{}

	if update.Status != nil {
		updates["status"] = *update.Status
	}

	if update.CurrentValue != nil {
		updates["current_value"] = *update.CurrentValue
	}

	if update.ResolvedAt != nil {
		updates["resolved_at"] = *update.ResolvedAt
	}

	return s.applyAlertUpdate(ctx, userID, id, updates, "failed to update alert")
}

// ResolveAlert transitions an active alert to resolved and stamps
// resolved_at. The transition is not reversible at this layer.
func (s *Store) ResolveAlert(ctx context.Context, userID uint, id string) (*Response[*models.Alert], error) {
	updates := map[string]interface{}{
		"status":      "resolved",
		"resolved_at": time.Now().UTC(),
	}

	return s.applyAlertUpdate(ctx, userID, id, updates, "failed to resolve alert")
}

// SuppressAlert silences an alert for notification purposes. resolved_at is
// left unset.
func (s *Store) SuppressAlert(ctx context.Context, userID uint, id string) (*Response[*models.Alert], error) {
	updates := map[string]interface{}{"status": "suppressed"}

	return s.applyAlertUpdate(ctx, userID, id, updates, "failed to suppress alert")
}

func (s *Store) applyAlertUpdate(ctx context.Context, userID uint, id string, updates map[string]interface{}, op string) (*Response[*models.Alert], error) {
	if len(updates) > 0 {
		tx := s.db.WithContext(ctx).Model(&models.Alert{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)

		if tx.Error != nil {
			return nil, fmt.Errorf("%s: %w", op, tx.Error)
		}

		if tx.RowsAffected == 0 {
			return nil, fmt.Errorf("%s: %w", op, gorm.ErrRecordNotFound)
		}
	}

	var alert models.Alert
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&alert, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return newResponse(&alert), nil
}

func (s *Store) DeleteAlert(ctx context.Context, userID uint, id string) (*Response[any], error) {
	tx := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Alert{}, "id = ?", id)

	if tx.Error != nil {
		return nil, fmt.Errorf("failed to delete alert: %w", tx.Error)
	}

	if tx.RowsAffected == 0 {
		return nil, fmt.Errorf("failed to delete alert: %w", gorm.ErrRecordNotFound)
	}

	return newResponse[any](nil), nil
}

// Health checks

func (s *Store) ListHealthChecks(ctx context.Context, userID uint, filter HealthCheckFilter, page, limit int) (*PaginatedResponse[models.HealthCheck], error) {
	q := s.db.WithContext(ctx).Model(&models.HealthCheck{}).Where("user_id = ?", userID)
	q = filter.apply(q)

	return paginate[models.HealthCheck](q, "last_check DESC", page, limit, "failed to fetch health checks")
}

// UpsertHealthCheck inserts the row or, when one already exists for
// (service_name, user_id), overwrites its mutable fields. This is a single
// conditional write; atomicity comes from the store, not from a
// read-check-then-write.
func (s *Store) UpsertHealthCheck(ctx context.Context, check *models.HealthCheck) (*Response[*models.HealthCheck], error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "service_name"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"endpoint", "status", "response_time", "last_check", "error_message", "metadata", "updated_at",
		}),
	}).Create(check).Error

	if err != nil {
		return nil, fmt.Errorf("failed to upsert health check: %w", err)
	}

	// On conflict the pre-existing row's id wins, so read the surviving row
	// back by its natural key.
	var saved models.HealthCheck
	if err := s.db.WithContext(ctx).
		Where("service_name = ? AND user_id = ?", check.ServiceName, check.UserID).
		First(&saved).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert health check: %w", err)
	}

	return newResponse(&saved), nil
}

func (s *Store) UpdateHealthCheck(ctx context.Context, userID uint, id string, update HealthCheckUpdate) (*Response[*models.HealthCheck], error) {
	updates := map[string]interface{}{}

	if update.Status != nil {
		updates["status"] = *update.Status
	}

	if update.ResponseTime != nil {
		updates["response_time"] = *update.ResponseTime
	}

	if update.LastCheck != nil {
		updates["last_check"] = *update.LastCheck
	}

	if update.ErrorMessage != nil {
		updates["error_message"] = *update.ErrorMessage
	}

	if update.Metadata != nil {
		updates["metadata"] = datatypes.JSONMap(update.Metadata)
	}

	if len(updates) > 0 {
		tx := s.db.WithContext(ctx).Model(&models.HealthCheck{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)

		if tx.Error != nil {
			return nil, fmt.Errorf("failed to update health check: %w", tx.Error)
		}

		if tx.RowsAffected == 0 {
			return nil, fmt.Errorf("failed to update health check: %w", gorm.ErrRecordNotFound)
		}
	}

	var check models.HealthCheck
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&check, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to update health check: %w", err)
	}

	return newResponse(&check), nil
}

func (s *Store) DeleteHealthCheck(ctx context.Context, userID uint, id string) (*Response[any], error) {
	tx := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.HealthCheck{}, "id = ?", id)

	if tx.Error != nil {
		return nil, fmt.Errorf("failed to delete health check: %w", tx.Error)
	}

	if tx.RowsAffected == 0 {
		return nil, fmt.Errorf("failed to delete health check: %w", gorm.ErrRecordNotFound)
	}

	return newResponse[any](nil), nil
}
