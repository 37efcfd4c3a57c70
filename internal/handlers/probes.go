package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"github.com/guilhermetechmakers/autopilot-studio/internal/scheduler"
	"github.com/guilhermetechmakers/autopilot-studio/internal/utils"
	"gorm.io/gorm"
)

type ProbesHandler struct {
	DB        *gorm.DB
	Scheduler *scheduler.Scheduler
}

func NewProbesHandler(database *gorm.DB, sched *scheduler.Scheduler) *ProbesHandler {
	return &ProbesHandler{DB: database, Scheduler: sched}
}

type CreateProbeRequest struct {
	ServiceName string                 `json:"service_name" binding:"required"`
	Type        string                 `json:"type" binding:"required,oneof=http dns database"`
	Interval    int                    `json:"interval" binding:"required,min=10"`
	Config      map[string]interface{} `json:"config" binding:"required"`
}

type UpdateProbeRequest struct {
	ServiceName string                 `json:"service_name" binding:"required"`
	Type        string                 `json:"type" binding:"required,oneof=http dns database"`
	Status      string                 `json:"status" binding:"omitempty,oneof=active paused"`
	Interval    int                    `json:"interval" binding:"required,min=10"`
	Config      map[string]interface{} `json:"config" binding:"required"`
}

func (h *ProbesHandler) CreateProbe(ctx *gin.Context) {
	var req CreateProbeRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	configJSON, ok := cleanProbeConfig(ctx, req.Type, req.Config)
	if !ok {
		return
	}

	probe := models.Probe{
		UserID:      userID,
		ServiceName: req.ServiceName,
		Type:        req.Type,
		Status:      "active",
		Interval:    req.Interval,
		Config:      configJSON,
	}

	if err := h.DB.Create(&probe).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create probe"})
		return
	}

	h.Scheduler.AddProbe(probe)
	ctx.JSON(http.StatusCreated, gin.H{"message": "Probe created successfully", "probe_id": probe.ID})
}

func (h *ProbesHandler) ListProbes(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var probes []models.Probe

	if err := h.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&probes).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve probes"})
		return
	}

	ctx.JSON(http.StatusOK, probes)
}

func (h *ProbesHandler) UpdateProbe(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateProbeRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var probe models.Probe

	if err := h.DB.Where("id = ? AND user_id = ?", ctx.Param("probe_id"), userID).First(&probe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Probe not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve probe"})
		}
		return
	}

	configJSON, ok := cleanProbeConfig(ctx, req.Type, req.Config)
	if !ok {
		return
	}

	probe.ServiceName = req.ServiceName
	probe.Type = req.Type
	probe.Interval = req.Interval
	probe.Config = configJSON

	if req.Status != "" {
		probe.Status = req.Status
	}

	if err := h.DB.Save(&probe).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update probe"})
		return
	}

	if probe.Status == "active" {
		h.Scheduler.UpdateProbe(probe)
	} else {
		h.Scheduler.RemoveProbe(probe.ID)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Probe updated successfully", "probe_id": probe.ID})
}

func (h *ProbesHandler) DeleteProbe(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var probe models.Probe

	if err := h.DB.Where("id = ? AND user_id = ?", ctx.Param("probe_id"), userID).First(&probe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Probe not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve probe"})
		}
		return
	}

	if err := h.DB.Delete(&probe).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete probe"})
		return
	}

	h.Scheduler.RemoveProbe(probe.ID)

	ctx.Status(http.StatusNoContent)
}

// cleanProbeConfig marshals the config and, for DNS probes, normalizes the
// domain so "https://example.com/path" and "example.com" store the same value.
func cleanProbeConfig(ctx *gin.Context, probeType string, config map[string]interface{}) ([]byte, bool) {
	if probeType == "dns" {
		if domainValue, exists := config["domain"]; exists {
			if domainStr, ok := domainValue.(string); ok {
				cleanDomain, err := utils.ExtractRawDomain(domainStr)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid domain: " + err.Error()})
					return nil, false
				}
				config["domain"] = cleanDomain
			}
		}
	}

	configJSON, err := json.Marshal(config)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid config format"})
		return nil, false
	}

	return configJSON, true
}
