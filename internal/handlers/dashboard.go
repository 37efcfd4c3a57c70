package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guilhermetechmakers/autopilot-studio/internal/monitoring"
	"github.com/guilhermetechmakers/autopilot-studio/internal/utils"
)

type DashboardHandler struct {
	Store *monitoring.Store
}

func NewDashboardHandler(store *monitoring.Store) *DashboardHandler {
	return &DashboardHandler{Store: store}
}

func (h *DashboardHandler) GetDashboard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := h.Store.Dashboard(ctx.Request.Context(), userID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
