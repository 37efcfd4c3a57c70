package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"github.com/guilhermetechmakers/autopilot-studio/internal/monitoring"
	"github.com/guilhermetechmakers/autopilot-studio/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HealthChecksHandler struct {
	Store *monitoring.Store
}

func NewHealthChecksHandler(store *monitoring.Store) *HealthChecksHandler {
	return &HealthChecksHandler{Store: store}
}

type UpsertHealthCheckRequest struct {
	ServiceName  string         `json:"service_name" binding:"required"`
	Endpoint     string         `json:"endpoint"`
	Status       string         `json:"status" binding:"required,oneof=healthy degraded unhealthy"`
	ResponseTime int            `json:"response_time"`
	ErrorMessage string         `json:"error_message"`
	Metadata     map[string]any `json:"metadata"`
}

func (h *HealthChecksHandler) ListHealthChecks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	filter := monitoring.HealthCheckFilter{
		Status:      ctx.Query("status"),
		ServiceName: ctx.Query("service_name"),
	}

	page, limit, err := parsePagination(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.Store.ListHealthChecks(ctx.Request.Context(), userID, filter, page, limit)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve health checks"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *HealthChecksHandler) UpsertHealthCheck(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpsertHealthCheckRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check := models.HealthCheck{
		UserID:       userID,
		ServiceName:  req.ServiceName,
		Endpoint:     req.Endpoint,
		Status:       req.Status,
		ResponseTime: req.ResponseTime,
		ErrorMessage: req.ErrorMessage,
		Metadata:     datatypes.JSONMap(req.Metadata),
	}

	response, err := h.Store.UpsertHealthCheck(ctx.Request.Context(), &check)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record health check"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *HealthChecksHandler) UpdateHealthCheck(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var update monitoring.HealthCheckUpdate

	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.Store.UpdateHealthCheck(ctx.Request.Context(), userID, ctx.Param("id"), update)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Health check not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update health check"})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *HealthChecksHandler) DeleteHealthCheck(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := h.Store.DeleteHealthCheck(ctx.Request.Context(), userID, ctx.Param("id"))

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Health check not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete health check"})
		}
		return
	}

	ctx.JSON(http.StatusOK, response)
}
