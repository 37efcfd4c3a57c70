package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"github.com/guilhermetechmakers/autopilot-studio/internal/monitoring"
	"github.com/guilhermetechmakers/autopilot-studio/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MetricsHandler struct {
	Store *monitoring.Store
}

func NewMetricsHandler(store *monitoring.Store) *MetricsHandler {
	return &MetricsHandler{Store: store}
}

type CreateMetricRequest struct {
	MetricName  string            `json:"metric_name" binding:"required"`
	MetricValue float64           `json:"metric_value"`
	MetricType  string            `json:"metric_type" binding:"omitempty,oneof=counter gauge histogram summary"`
	Labels      map[string]string `json:"labels"`
	Timestamp   *time.Time        `json:"timestamp"`
}

func (h *MetricsHandler) ListMetrics(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	filter, ok := h.metricFilter(ctx)
	if !ok {
		return
	}

	page, limit, err := parsePagination(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.Store.ListMetrics(ctx.Request.Context(), userID, filter, page, limit)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve metrics"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *MetricsHandler) GetMetricTimeSeries(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	metricName := ctx.Query("metric_name")

	if metricName == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "metric_name is required"})
		return
	}

	start, err := parseTime(ctx, "start_time")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	end, err := parseTime(ctx, "end_time")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	labels, err := parseLabels(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Default to the trailing 24 hours.
	endTime := time.Now().UTC()
	if end != nil {
		endTime = *end
	}

	startTime := endTime.Add(-24 * time.Hour)
	if start != nil {
		startTime = *start
	}

	points, err := h.Store.MetricTimeSeries(ctx.Request.Context(), userID, metricName, startTime, endTime, labels)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time series"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": points, "success": true})
}

func (h *MetricsHandler) CreateMetric(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateMetricRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metric := models.Metric{
		UserID:      userID,
		MetricName:  req.MetricName,
		MetricValue: req.MetricValue,
		MetricType:  req.MetricType,
		Labels:      datatypes.NewJSONType(req.Labels),
	}

	if req.Timestamp != nil {
		metric.Timestamp = *req.Timestamp
	}

	response, err := h.Store.CreateMetric(ctx.Request.Context(), &metric)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create metric"})
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

func (h *MetricsHandler) UpdateMetric(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var update monitoring.MetricUpdate

	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.Store.UpdateMetric(ctx.Request.Context(), userID, ctx.Param("id"), update)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Metric not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update metric"})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *MetricsHandler) DeleteMetric(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := h.Store.DeleteMetric(ctx.Request.Context(), userID, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Metric not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete metric"})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *MetricsHandler) metricFilter(ctx *gin.Context) (monitoring.MetricFilter, bool) {
	start, err := parseTime(ctx, "start_time")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return monitoring.MetricFilter{}, false
	}

	end, err := parseTime(ctx, "end_time")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return monitoring.MetricFilter{}, false
	}

	labels, err := parseLabels(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return monitoring.MetricFilter{}, false
	}

	return monitoring.MetricFilter{
		MetricName: ctx.Query("metric_name"),
		MetricType: ctx.Query("metric_type"),
		StartTime:  start,
		EndTime:    end,
		Labels:     labels,
	}, true
}
