package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"github.com/guilhermetechmakers/autopilot-studio/internal/monitoring"
	"github.com/guilhermetechmakers/autopilot-studio/internal/services"
	"github.com/guilhermetechmakers/autopilot-studio/internal/utils"
	"github.com/guilhermetechmakers/autopilot-studio/internal/ws"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AlertsHandler struct {
	Store    *monitoring.Store
	Notifier *services.Notifier
	Hub      *ws.Hub
}

func NewAlertsHandler(store *monitoring.Store, notifier *services.Notifier, hub *ws.Hub) *AlertsHandler {
	return &AlertsHandler{Store: store, Notifier: notifier, Hub: hub}
}

type CreateAlertRequest struct {
	AlertName            string         `json:"alert_name" binding:"required"`
	Description          string         `json:"description"`
	Severity             string         `json:"severity" binding:"required,oneof=low medium high critical"`
	Condition            map[string]any `json:"condition"`
	ThresholdValue       float64        `json:"threshold_value"`
	CurrentValue         float64        `json:"current_value"`
	NotificationChannels []string       `json:"notification_channels"`
}

func (h *AlertsHandler) ListAlerts(ctx *gin.Context) {
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

	filter := monitoring.AlertFilter{
		Status:    ctx.Query("status"),
		Severity:  ctx.Query("severity"),
		StartTime: start,
		EndTime:   end,
	}

	page, limit, err := parsePagination(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.Store.ListAlerts(ctx.Request.Context(), userID, filter, page, limit)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve alerts"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *AlertsHandler) CreateAlert(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateAlertRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert := models.Alert{
		UserID:               userID,
		AlertName:            req.AlertName,
		Description:          req.Description,
		Severity:             req.Severity,
		Condition:            datatypes.JSONMap(req.Condition),
		ThresholdValue:       req.ThresholdValue,
		CurrentValue:         req.CurrentValue,
		NotificationChannels: req.NotificationChannels,
	}

	response, err := h.Store.CreateAlert(ctx.Request.Context(), &alert)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alert"})
		return
	}

	h.Notifier.NotifyAlertTriggered(alert)
	h.Hub.BroadcastRefresh(userID, "alerts")

	ctx.JSON(http.StatusCreated, response)
}

func (h *AlertsHandler) UpdateAlert(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var update monitoring.AlertUpdate

	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.Store.UpdateAlert(ctx.Request.Context(), userID, ctx.Param("id"), update)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update alert"})
		}
		return
	}

	h.Hub.BroadcastRefresh(userID, "alerts")

	ctx.JSON(http.StatusOK, response)
}

func (h *AlertsHandler) ResolveAlert(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := h.Store.ResolveAlert(ctx.Request.Context(), userID, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve alert"})
		}
		return
	}

	if response.Data != nil {
		h.Notifier.NotifyAlertResolved(*response.Data)
	}

	h.Hub.BroadcastRefresh(userID, "alerts")

	ctx.JSON(http.StatusOK, response)
}

func (h *AlertsHandler) SuppressAlert(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := h.Store.SuppressAlert(ctx.Request.Context(), userID, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suppress alert"})
		}
		return
	}

	h.Hub.BroadcastRefresh(userID, "alerts")

	ctx.JSON(http.StatusOK, response)
}

func (h *AlertsHandler) DeleteAlert(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := h.Store.DeleteAlert(ctx.Request.Context(), userID, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete alert"})
		}
		return
	}

	h.Hub.BroadcastRefresh(userID, "alerts")

	ctx.JSON(http.StatusOK, response)
}
