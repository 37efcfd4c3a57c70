package monitoring

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) (sqlmock.Sqlmock, *Store, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	cleanup := func() { db.Close() }

	return mock, NewStore(gdb, zap.NewNop()), cleanup
}

func TestListMetrics_PaginationEnvelope(t *testing.T) {
	mock, store, cleanup := setupStore(t)
	defer cleanup()

	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "monitoring_metrics"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "monitoring_metrics"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "metric_name", "metric_value", "metric_type", "labels", "timestamp"}).
			AddRow("a1", 7, "cpu_usage", 81.5, "gauge", []byte(`{}`), now).
			AddRow("a2", 7, "cpu_usage", 79.1, "gauge", []byte(`{}`), now.Add(-time.Minute)))

	response, err := store.ListMetrics(context.Background(), 7, MetricFilter{MetricName: "cpu_usage"}, 1, 2)

	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Len(t, response.Data, 2)
	assert.Equal(t, 1, response.Pagination.Page)
	assert.Equal(t, 2, response.Pagination.Limit)
	assert.Equal(t, int64(3), response.Pagination.Total)
	assert.Equal(t, 2, response.Pagination.Pages)
	assert.Equal(t, "cpu_usage", response.Data[0].MetricName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMetrics_InvalidPage(t *testing.T) {
	_, store, cleanup := setupStore(t)
	defer cleanup()

	_, err := store.ListMetrics(context.Background(), 7, MetricFilter{}, 0, 100)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid page")
}

func TestListMetrics_LabelsContainment(t *testing.T) {
	mock, store, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "monitoring_metrics"`)).
		WithArgs(int64(7), `{"region":"us-east"}`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "monitoring_metrics"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	response, err := store.ListMetrics(context.Background(), 7, MetricFilter{
		Labels: map[string]string{"region": "us-east"},
	}, 1, 100)

	require.NoError(t, err)
	assert.Empty(t, response.Data)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMetric_NotFound(t *testing.T) {
	mock, store, cleanup := setupStore(t)
	defer cleanup()

	value := 42.0

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "monitoring_metrics" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := store.UpdateMetric(context.Background(), 7, "missing-id", MetricUpdate{MetricValue: &value})

	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMetric(t *testing.T) {
	mock, store, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "monitoring_metrics"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	response, err := store.DeleteMetric(context.Background(), 7, "a1")

	require.NoError(t, err)
	assert.True(t, response.Success)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLogStats(t *testing.T) {
	mock, store, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "level","service" FROM "monitoring_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"level", "service"}).
			AddRow("error", "api").
			AddRow("error", "worker").
			AddRow("info", "api"))

	end := time.Now().UTC()
	stats, err := store.GetLogStats(context.Background(), 7, end.Add(-time.Hour), end)

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByLevel["error"])
	assert.Equal(t, int64(1), stats.ByLevel["info"])
	assert.Equal(t, int64(2), stats.ByService["api"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAlert_NotFound(t *testing.T) {
	mock, store, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "monitoring_alerts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := store.ResolveAlert(context.Background(), 7, "missing-id")

	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAlert(t *testing.T) {
	mock, store, cleanup := setupStore(t)
	defer cleanup()

	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "monitoring_alerts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "monitoring_alerts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "alert_name", "severity", "status", "triggered_at", "resolved_at"}).
			AddRow("b1", 7, "High error rate", "critical", "resolved", now.Add(-time.Hour), now))

	response, err := store.ResolveAlert(context.Background(), 7, "b1")

	require.NoError(t, err)
	assert.Equal(t, "resolved", response.Data.Status)
	assert.NotNil(t, response.Data.ResolvedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAlert(t *testing.T) {
	mock, store, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "monitoring_alerts"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	response, err := store.DeleteAlert(context.Background(), 7, "b1")

	require.NoError(t, err)
	assert.True(t, response.Success)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertHealthCheck(t *testing.T) {
	mock, store, cleanup := setupStore(t)
	defer cleanup()

	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO "monitoring_health_checks" .* ON CONFLICT \("service_name","user_id"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "monitoring_health_checks"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "service_name", "endpoint", "status", "response_time", "last_check"}).
			AddRow("c1", 7, "payments-api", "https://payments.internal/health", "healthy", 120, now))

	check := models.HealthCheck{
		UserID:       7,
		ServiceName:  "payments-api",
		Endpoint:     "https://payments.internal/health",
		Status:       "healthy",
		ResponseTime: 120,
	}

	response, err := store.UpsertHealthCheck(context.Background(), &check)

	require.NoError(t, err)
	assert.Equal(t, "c1", response.Data.ID)
	assert.Equal(t, "healthy", response.Data.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboard(t *testing.T) {
	mock, store, cleanup := setupStore(t)
	defer cleanup()

	// The four overview reads run concurrently, so their arrival order at
	// the connection is not fixed.
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "metric_name","metric_value" FROM "monitoring_metrics"`)).
		WillReturnRows(sqlmock.NewRows([]string{"metric_name", "metric_value"}).
			AddRow("total_requests", 120.0).
			AddRow("error_rate", 1.5))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "status","severity" FROM "monitoring_alerts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "severity"}))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "status" FROM "monitoring_health_checks"`)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).
			AddRow("healthy").
			AddRow("healthy").
			AddRow("healthy").
			AddRow("degraded"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "level" FROM "monitoring_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"level"}).
			AddRow("error").
			AddRow("fatal"))

	response, err := store.Dashboard(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 120.0, response.Data.Metrics.TotalRequests)
	assert.Equal(t, 1.5, response.Data.Metrics.ErrorRate)
	assert.Zero(t, response.Data.Metrics.AverageResponseTime)
	assert.Zero(t, response.Data.Metrics.ActiveUsers)
	assert.Equal(t, 0, response.Data.Alerts.Active)
	assert.Equal(t, 3, response.Data.HealthChecks.HealthyServices)
	assert.Equal(t, 1, response.Data.HealthChecks.DegradedServices)
	assert.Equal(t, 4, response.Data.HealthChecks.TotalServices)
	assert.Equal(t, 2, response.Data.Logs.ErrorCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboard_SubReadFailure(t *testing.T) {
	mock, store, cleanup := setupStore(t)
	defer cleanup()

	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "metric_name","metric_value" FROM "monitoring_metrics"`)).
		WillReturnRows(sqlmock.NewRows([]string{"metric_name", "metric_value"}))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "status","severity" FROM "monitoring_alerts"`)).
		WillReturnError(errors.New("connection reset"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "status" FROM "monitoring_health_checks"`)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "level" FROM "monitoring_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"level"}))

	response, err := store.Dashboard(context.Background(), 7)

	require.Error(t, err)
	assert.Nil(t, response)
	assert.Contains(t, err.Error(), "failed to fetch dashboard data")
}
