package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"github.com/guilhermetechmakers/autopilot-studio/internal/monitoring"
	"github.com/guilhermetechmakers/autopilot-studio/internal/utils"
	"gorm.io/datatypes"
)

type LogsHandler struct {
	Store *monitoring.Store
}

func NewLogsHandler(store *monitoring.Store) *LogsHandler {
	return &LogsHandler{Store: store}
}

type CreateLogRequest struct {
	Level     string         `json:"level" binding:"required,oneof=debug info warn error fatal"`
	Message   string         `json:"message" binding:"required"`
	Service   string         `json:"service" binding:"required"`
	Context   map[string]any `json:"context"`
	TraceID   string         `json:"trace_id"`
	SpanID    string         `json:"span_id"`
	Timestamp *time.Time     `json:"timestamp"`
}

func (h *LogsHandler) ListLogs(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
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

	filter := monitoring.LogFilter{
		Level:     ctx.Query("level"),
		Service:   ctx.Query("service"),
		StartTime: start,
		EndTime:   end,
		Search:    ctx.Query("search"),
	}

	page, limit, err := parsePagination(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.Store.ListLogs(ctx.Request.Context(), userID, filter, page, limit)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve logs"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *LogsHandler) CreateLog(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateLogRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.LogEntry{
		UserID:  userID,
		Level:   req.Level,
		Message: req.Message,
		Service: req.Service,
		Context: datatypes.JSONMap(req.Context),
		TraceID: req.TraceID,
		SpanID:  req.SpanID,
	}

	if req.Timestamp != nil {
		entry.Timestamp = *req.Timestamp
	}

	response, err := h.Store.CreateLog(ctx.Request.Context(), &entry)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create log entry"})
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

func (h *LogsHandler) GetLogStats(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
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

	endTime := time.Now().UTC()
	if end != nil {
		endTime = *end
	}

	startTime := endTime.Add(-24 * time.Hour)
	if start != nil {
		startTime = *start
	}

	stats, err := h.Store.GetLogStats(ctx.Request.Context(), userID, startTime, endTime)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve log stats"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": stats, "success": true})
}
