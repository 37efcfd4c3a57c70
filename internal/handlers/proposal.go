package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"github.com/guilhermetechmakers/autopilot-studio/internal/utils"
	"gorm.io/gorm"
)

type ProposalsHandler struct {
	DB *gorm.DB
}

func NewProposalsHandler(database *gorm.DB) *ProposalsHandler {
	return &ProposalsHandler{DB: database}
}

type CreateProposalRequest struct {
	Title       string     `json:"title" binding:"required"`
	Content     string     `json:"content"`
	TotalAmount float64    `json:"total_amount"`
	Currency    string     `json:"currency"`
	ValidUntil  *time.Time `json:"valid_until"`
}

type UpdateProposalRequest struct {
	Title       string     `json:"title" binding:"required"`
	Content     string     `json:"content"`
	Status      string     `json:"status" binding:"omitempty,oneof=draft sent viewed accepted rejected"`
	TotalAmount float64    `json:"total_amount"`
	Currency    string     `json:"currency"`
	ValidUntil  *time.Time `json:"valid_until"`
}

func (h *ProposalsHandler) CreateProposal(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateProposalRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	currency := body.Currency
	if currency == "" {
		currency = "USD"
	}

	proposal := models.Proposal{
		ProjectID:   project.ID,
		Title:       body.Title,
		Content:     body.Content,
		Status:      "draft",
		Version:     1,
		TotalAmount: body.TotalAmount,
		Currency:    currency,
		ValidUntil:  body.ValidUntil,
	}

	if err := h.DB.Create(&proposal).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create proposal"})
		return
	}

	ctx.JSON(http.StatusCreated, proposal)
}

func (h *ProposalsHandler) ListProposals(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	var proposals []models.Proposal

	if err := h.DB.Where("project_id = ?", project.ID).Order("created_at DESC").Find(&proposals).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve proposals"})
		return
	}

	ctx.JSON(http.StatusOK, proposals)
}

// UpdateProposal bumps the version whenever the content changes so that
// sent copies can be told apart from later drafts.
func (h *ProposalsHandler) UpdateProposal(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateProposalRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	var proposal models.Proposal

	if err := h.DB.Where("id = ? AND project_id = ?", ctx.Param("proposal_id"), project.ID).First(&proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve proposal"})
		}
		return
	}

	if body.Content != proposal.Content {
		proposal.Version++
	}

	proposal.Title = body.Title
	proposal.Content = body.Content
	proposal.TotalAmount = body.TotalAmount
	proposal.ValidUntil = body.ValidUntil

	if body.Currency != "" {
		proposal.Currency = body.Currency
	}

	if body.Status != "" {
		proposal.Status = body.Status
	}

	if err := h.DB.Save(&proposal).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update proposal"})
		return
	}

	ctx.JSON(http.StatusOK, proposal)
}

func (h *ProposalsHandler) DeleteProposal(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	tx := h.DB.Where("project_id = ?", project.ID).Delete(&models.Proposal{}, "id = ?", ctx.Param("proposal_id"))

	if tx.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete proposal"})
		return
	}

	if tx.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

